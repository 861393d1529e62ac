package middleware

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Logger writes one JSON access log line per request to stdout.
func Logger(loc *time.Location) fiber.Handler {
	return LoggerWithWriter(os.Stdout, loc)
}

// LoggerWithWriter writes access logs to w with request_id, method, path, status,
// latency (milliseconds) and ts rendered in loc.
//
// It also attaches a logger carrying the request ID to the user context so that
// log.Ctx(ctx) in the service layer correlates with the access log.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	if loc == nil {
		loc = time.UTC
	}
	access := zerolog.New(w)

	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid := RequestIDFromCtx(c)

		ctx := c.UserContext()
		reqCtx := log.Logger.With().Str("request_id", rid)
		// otelfiber runs earlier and leaves the server span in the user context.
		traceID := ""
		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			traceID = sc.TraceID().String()
			reqCtx = reqCtx.Str("trace_id", traceID)
		}
		reqLogger := reqCtx.Logger()
		c.SetUserContext(reqLogger.WithContext(ctx))

		err := c.Next()

		status := statusOf(c, err)
		var evt *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			evt = access.Error()
		case status >= fiber.StatusBadRequest:
			evt = access.Warn()
		default:
			evt = access.Info()
		}

		evt.Str("ts", time.Now().In(loc).Format(time.RFC3339Nano)).
			Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000)
		if traceID != "" {
			evt = evt.Str("trace_id", traceID)
		}
		evt.Msg("http_request")

		return err
	}
}
