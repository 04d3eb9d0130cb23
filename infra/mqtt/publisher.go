package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/tripathik9559/railops/core/model"
	"github.com/tripathik9559/railops/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT publisher.
type Config struct {
	Enabled        bool   `json:"enabled"`
	Broker         string `json:"broker"`
	ClientID       string `json:"client_id"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	Topic          string `json:"topic"`
	QoS            byte   `json:"qos"`
	Retain         bool   `json:"retain"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults applies the default topic and publish timeout.
func (c *Config) SetDefaults() {
	if c.Topic == "" {
		c.Topic = "railops/schedule/updates"
	}
	if c.ClientID == "" {
		c.ClientID = "railops-scheduler"
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 5
	}
}

// pahoClient is the subset of the Paho client used by the publisher. It can
// be swapped in tests.
type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Publisher pushes schedule updates to an MQTT topic, feeding the live
// dashboard channel.
type Publisher struct {
	cli     pahoClient
	topic   string
	qos     byte
	retain  bool
	timeout time.Duration
	log     logger.Logger
}

// NewPublisher connects to the broker and returns a ready publisher.
func NewPublisher(cfg Config) (*Publisher, error) {
	cfg.SetDefaults()
	if cfg.Broker == "" {
		return nil, fmt.Errorf("mqtt broker address is required")
	}
	log := logger.New("mqtt-publisher")
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnect = func(paho.Client) { log.Infof("MQTT connected") }
	opts.OnConnectionLost = func(_ paho.Client, err error) { log.Errorf("connection lost: %v", err) }
	opts.OnReconnecting = func(paho.Client, *paho.ClientOptions) { log.Warnf("reconnecting to MQTT broker") }

	cli := newMQTTClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &Publisher{
		cli:     cli,
		topic:   cfg.Topic,
		qos:     cfg.QoS,
		retain:  cfg.Retain,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		log:     log,
	}, nil
}

// PublishScheduleUpdate sends the solve result as a JSON payload.
func (p *Publisher) PublishScheduleUpdate(res model.ScheduleResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return err
	}
	token := p.cli.Publish(p.topic, p.qos, p.retain, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("publish timed out after %s", p.timeout)
	}
	return token.Error()
}

// Close disconnects from the broker.
func (p *Publisher) Close() error {
	p.cli.Disconnect(250)
	return nil
}
