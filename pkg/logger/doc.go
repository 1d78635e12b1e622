// Package logger builds the service's structured slog loggers.
//
// Records are written to stdout as JSON (or text, see Config). A
// LogHandlerDecorator injects attributes pulled from the context on every
// call, which is how request ids reach the logs:
//
//	log := logger.New(logger.RequestIDExtractor())
//	ctx := logger.WithRequestID(context.Background(), "abc-123")
//	log.InfoContext(ctx, "email sent", slog.String("content_key", "welcome"))
//	// {"level":"INFO","msg":"email sent","content_key":"welcome","request_id":"abc-123"}
//
// NewWithSentry additionally forwards warnings and errors to Sentry. When the
// DSN is empty it quietly degrades to stdout only.
//
// Library packages default to NewNope so they stay silent unless the caller
// passes a logger.
package logger
