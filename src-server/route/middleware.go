package route

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"gridcal/src-server/utils"

	"github.com/google/uuid"
)

type RequestIDCtxKeyType string

const RequestIDCtxKey RequestIDCtxKeyType = "request-id"

// statusRecorder captures the status code a handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// LogMiddleware tags every request with a uuid, logs it after the
// handler returns, and feeds the latency sample to the metric
// collectors.
func LogMiddleware(as *utils.AppState, next func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		ctx := context.WithValue(r.Context(), RequestIDCtxKey, requestID)
		next(recorder, r.WithContext(ctx))

		elapsed := time.Since(start)
		utils.Send(as.MetricChans.HTTPRequest, float64(elapsed.Microseconds()))
		slog.Info("http request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration", elapsed,
		)
	}
}
