package nakama

import (
	"context"
	"fmt"
	"time"

	"github.com/heroiclabs/nakama-common/api"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// eventSink is the part of runtime.NakamaModule the analytics adapter needs.
type eventSink interface {
	Event(ctx context.Context, evt *api.Event) error
}

// NakamaAnalyticsAdapter implements ports.AnalyticsPort with Nakama's event pipeline.
type NakamaAnalyticsAdapter struct {
	nk  eventSink
	now func() time.Time
}

// NewNakamaAnalyticsAdapter creates a new analytics adapter.
func NewNakamaAnalyticsAdapter(nk eventSink) *NakamaAnalyticsAdapter {
	return &NakamaAnalyticsAdapter{nk: nk, now: time.Now}
}

// Track publishes name, prefixed with EventPrefix, to registered event handlers.
func (a *NakamaAnalyticsAdapter) Track(ctx context.Context, name string, properties map[string]string) error {
	evt := &api.Event{
		Name:       EventPrefix + name,
		Properties: properties,
		Timestamp:  timestamppb.New(a.now()),
	}
	if err := a.nk.Event(ctx, evt); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", evt.Name, err)
	}
	return nil
}
