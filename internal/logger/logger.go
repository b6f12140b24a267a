package logger

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// Logger is the process-wide structured logger. Call Setup before use;
// until then it is nil and callers should fall back to slog.Default().
var Logger *slog.Logger

// Setup builds the logger: a stdout handler fanned out with an OpenTelemetry
// bridge handler, so log records ride the same pipeline as traces and
// metrics. Sensitive intake fields (SSN, insurance ID) are never passed to
// this logger by any caller; keep it that way.
func Setup(out io.Writer) {
	provider := sdklog.NewLoggerProvider()
	otelHandler := otelslog.NewHandler(
		"patient-intake",
		otelslog.WithLoggerProvider(provider),
	)

	var stdoutHandler slog.Handler
	if os.Getenv("ENVIRONMENT") == "production" {
		stdoutHandler = slog.NewJSONHandler(out, &slog.HandlerOptions{})
	} else {
		stdoutHandler = slog.NewTextHandler(out, &slog.HandlerOptions{})
	}

	Logger = slog.New(
		slogmulti.Fanout(
			stdoutHandler,
			otelHandler,
		),
	)

	slog.SetDefault(Logger)
}
