package config

import (
	"context"

	"github.com/ferdian3456/userregistry/internal/observability"

	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

func LoadObservabilityConfig(config *koanf.Koanf) observability.Config {
	return observability.Config{
		OtelEndpoint: config.String("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:  String(config, "OTEL_SERVICE_NAME", "user-registry"),
		Environment:  String(config, "ENVIRONMENT", "development"),
		OtelHeaders:  config.String("OTEL_EXPORTER_OTLP_HEADERS"),
	}
}

func NewTracer(config *koanf.Koanf, log *zap.Logger) (func(context.Context) error, error) {
	return observability.Init(context.Background(), LoadObservabilityConfig(config), log)
}
