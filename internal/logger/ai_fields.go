package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
)

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields returns standard zap fields describing the AI provider and
// model. Empty values are omitted to keep log entries compact.
func CommonFields(provider, model string) []zap.Field {
	fields := make([]zap.Field, 0, 2)

	if provider = strings.TrimSpace(provider); provider != "" {
		fields = append(fields, zap.String(FieldProvider, provider))
	}
	if model = strings.TrimSpace(model); model != "" {
		fields = append(fields, zap.String(FieldModel, model))
	}

	return fields
}

// WithCommonFields attaches the common AI fields to the provided logger.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}
