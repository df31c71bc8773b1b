package ports

import "context"

// AnalyticsPort records gameplay events for offline analysis.
type AnalyticsPort interface {
	// Track records one named event with flat string properties.
	Track(ctx context.Context, name string, properties map[string]string) error
}
