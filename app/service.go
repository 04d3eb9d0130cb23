package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tripathik9559/railops/api/conflicts"
	"github.com/tripathik9559/railops/api/kpis"
	"github.com/tripathik9559/railops/api/schedules"
	"github.com/tripathik9559/railops/api/trains"
	"github.com/tripathik9559/railops/config"
	coremetrics "github.com/tripathik9559/railops/core/metrics"
	"github.com/tripathik9559/railops/core/model"
	"github.com/tripathik9559/railops/core/schedule"
	"github.com/tripathik9559/railops/core/schedule/history"
	"github.com/tripathik9559/railops/core/status"
	"github.com/tripathik9559/railops/core/trainstore"
	"github.com/tripathik9559/railops/infra/logger"
	"github.com/tripathik9559/railops/infra/metrics"
	"github.com/tripathik9559/railops/infra/mqtt"
	"github.com/tripathik9559/railops/internal/eventbus"
)

// Service wires the planner, stores, metrics sinks and the HTTP API.
type Service struct {
	Planner *schedule.Planner
	Store   *trainstore.Store

	history     history.Store
	bus         *eventbus.TypedBus[model.ScheduleResult]
	publisher   status.Publisher
	conflictRec coremetrics.ConflictRecorder
	log         logger.Logger
	apiAddr     string
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	var conflictRec coremetrics.ConflictRecorder
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
		conflictRec = sink
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	hist, err := history.New(cfg.History)
	if err != nil {
		return nil, fmt.Errorf("history store: %w", err)
	}

	bus := eventbus.NewTyped[model.ScheduleResult]()
	planner, err := schedule.NewPlanner(cfg.Schedule, nil, nil, sink, hist, bus, logg)
	if err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}

	var publisher status.Publisher = status.NopPublisher{}
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		publisher = pub
	}

	return &Service{
		Planner:     planner,
		Store:       trainstore.New(cfg.Station.Trains, cfg.Station.Platforms),
		history:     hist,
		bus:         bus,
		publisher:   publisher,
		conflictRec: conflictRec,
		log:         logg,
		apiAddr:     cfg.API.Addr,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// Run starts the HTTP API and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	go s.forwardUpdates(ctx)
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	mux.Handle("/api/trains", trains.NewHandler(s.Store))
	mux.Handle("/api/schedule/optimize", schedules.NewOptimizeHandler(s.Planner, s.Store))
	mux.Handle("/api/schedule/current", schedules.NewCurrentHandler(s.Store))
	mux.Handle("/api/schedule/history", schedules.NewHistoryHandler(s.history))
	mux.Handle("/api/conflicts/check", conflicts.NewCheckHandler(s.conflictRec))
	mux.Handle("/api/kpis", kpis.NewHandler(s.Store))

	srv := &http.Server{Addr: s.apiAddr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api server shutdown: %v", err)
		}
		cancel()
	}()
	s.log.Infof("API listening on %s", s.apiAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// forwardUpdates bridges solve events from the bus to the status publisher.
func (s *Service) forwardUpdates(ctx context.Context) {
	updates := s.bus.Subscribe()
	defer s.bus.Unsubscribe(updates)
	for {
		select {
		case res, ok := <-updates:
			if !ok {
				return
			}
			if err := s.publisher.PublishScheduleUpdate(res); err != nil {
				s.log.Errorf("status publish: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if err := s.publisher.Close(); err != nil {
		return err
	}
	return s.history.Close()
}
