package logger

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	regionContextKey contextKey = "region"
)

// RegionLogField is the field name used for the region in log entries
const RegionLogField = "region"

// ContextWithRegion returns a copy of ctx carrying the region currently being processed.
func ContextWithRegion(ctx context.Context, region string) context.Context {
	return context.WithValue(ctx, regionContextKey, region)
}

// GetRegion extracts the region from the context.
func GetRegion(ctx context.Context) string {
	if region, ok := ctx.Value(regionContextKey).(string); ok {
		return region
	}

	return ""
}

// DeriveRegionLogger returns a logger enriched with the region stored in ctx, if any.
func DeriveRegionLogger(ctx context.Context, base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}

	if region := GetRegion(ctx); region != "" {
		return base.With(RegionLogField, region)
	}

	return base
}
