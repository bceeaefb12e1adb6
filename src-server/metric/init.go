package metric

import (
	"context"
	"log/slog"
	"time"

	"gridcal/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func eventsStored(as *utils.AppState, tickerInterval *time.Duration) {
	eventsStored := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gridcal_events_stored",
		Help: "The number of base event records in the store",
	})
	good := true
	if err := prometheus.Register(eventsStored); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register gridcal_events_stored metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("gridcal_events_stored metric registered")
		eventsStored.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(eventsStored) {
				case true:
					slog.Debug("gridcal_events_stored metric unregistered")
				case false:
					slog.Warn("gridcal_events_stored metric not registered")
				}
				return
			case <-ticker.C:
				events, err := as.EventRepo.List(context.Background())
				if err != nil {
					slog.Error("can't count stored events", "error", err)
					continue
				}
				eventsStored.Set(float64(len(events)))
			}
		}
	}()
}

func httpRequestLatency(as *utils.AppState, clearTickerInterval *time.Duration) {
	httpRequestLatency := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gridcal_http_request_microsec",
		Help: "The latency of the last HTTP request in microseconds",
	})
	good := true
	if err := prometheus.Register(httpRequestLatency); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register gridcal_http_request_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("gridcal_http_request_microsec metric registered")
		httpRequestLatency.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(httpRequestLatency) {
				case true:
					slog.Debug("gridcal_http_request_microsec metric unregistered")
				case false:
					slog.Warn("gridcal_http_request_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.HTTPRequest:
				httpRequestLatency.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				httpRequestLatency.Set(0)
			}
		}
	}()
}

func expansionLatency(as *utils.AppState, clearTickerInterval *time.Duration) {
	expansionLatency := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gridcal_expansion_microsec",
		Help: "The latency of the last recurrence expansion pass in microseconds",
	})
	good := true
	if err := prometheus.Register(expansionLatency); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register gridcal_expansion_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("gridcal_expansion_microsec metric registered")
		expansionLatency.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(expansionLatency) {
				case true:
					slog.Debug("gridcal_expansion_microsec metric unregistered")
				case false:
					slog.Warn("gridcal_expansion_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.Expansion:
				expansionLatency.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				expansionLatency.Set(0)
			}
		}
	}()
}

func Init(as *utils.AppState) {
	tickerInterval := as.Config.GetMetricCollectionInterval()
	clearTickerInterval := as.Config.GetMetricCollectionInterval() * 2

	eventsStored(as, &tickerInterval)
	httpRequestLatency(as, &clearTickerInterval)
	expansionLatency(as, &clearTickerInterval)
}
