package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/tripathik9559/railops/core/metrics"
	"github.com/tripathik9559/railops/core/model"
	"github.com/tripathik9559/railops/infra/logger"
)

// InfluxSink writes solve records to an InfluxDB instance using the official
// client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	client := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordSolve writes the solve outcome as a line protocol point.
func (s *InfluxSink) RecordSolve(rec coremetrics.SolveRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("schedule_solve").
		AddTag("run_id", rec.RunID).
		AddTag("engine", rec.Engine).
		AddTag("status", rec.Status.String()).
		AddTag("fallback", strconv.FormatBool(rec.Fallback)).
		AddTag("scenario", rec.Scenario).
		AddField("train_count", rec.TrainCount).
		AddField("total_delay_minutes", rec.TotalDelay).
		AddField("average_delay_minutes", round3(rec.AverageDelay)).
		AddField("on_time_trains", rec.OnTime).
		AddField("delayed_trains", rec.Delayed).
		AddField("horizon_overflows", rec.Overflows).
		AddField("solve_seconds", round3(rec.SolveTime.Seconds())).
		SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordPlatformUtilization writes one point per platform.
func (s *InfluxSink) RecordPlatformUtilization(runID string, util []model.PlatformUtilization) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	now := time.Now()
	for _, u := range util {
		p := write.NewPointWithMeasurement("platform_utilization").
			AddTag("run_id", runID).
			AddTag("platform", strconv.Itoa(u.Platform)).
			AddField("percent", round3(u.Percent)).
			SetTime(now)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
