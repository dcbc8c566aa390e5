package utils

import (
	"context"
	"os"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func GenerateTraceId() string {
	return uuid.New().String()
}

// ExtractServiceName returns the service field attached to every log entry.
func ExtractServiceName() string {
	service := "PR-" + os.Getenv("PR_NUMBER")

	if service == "PR-" {
		service = "main"
	}
	return service
}

// TraceIdFromContext returns the trace id stored in ctx, or an empty string.
// Both plain contexts and gin contexts (string keys) are supported.
func TraceIdFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if traceId, ok := ctx.Value(TraceIdKey).(string); ok {
		return traceId
	}
	if traceId, ok := ctx.Value(TraceIdKey.String()).(string); ok {
		return traceId
	}
	return ""
}

func LogEntry(entry *log.Entry, level, message string) {
	switch level {
	case "debug":
		entry.Debug(message)
	case "info":
		entry.Info(message)
	case "warn":
		entry.Warn(message)
	case "error":
		entry.Error(message)
	case "fatal":
		entry.Fatal(message)
	case "panic":
		entry.Panic(message)
	default:
		entry.Info(message)
	}
}

func LogMessage(level, message string) {
	entry := log.WithFields(log.Fields{
		"service": ExtractServiceName(),
	})

	LogEntry(entry, level, message)
}

func LogMessageWithFields(ctx context.Context, level, message string) {
	entry := log.WithFields(log.Fields{
		"traceId": TraceIdFromContext(ctx),
		"service": ExtractServiceName(),
	})

	LogEntry(entry, level, message)
}

func LogMessageWithFieldsAndError(ctx context.Context, level, message string, err error) {
	entry := log.WithFields(log.Fields{
		"traceId": TraceIdFromContext(ctx),
		"service": ExtractServiceName(),
		"error":   err,
	})

	LogEntry(entry, level, message)
}
