// internal/store/storetest/fake.go
package storetest

import (
	"context"
	"time"

	"smarthome-crm-analytics/internal/models"
	"smarthome-crm-analytics/internal/store"
)

// Fake is a configurable store.Store double. Unset hooks return zero-valued
// aggregates, which matches an empty database.
type Fake struct {
	ProposalRevenueStatsFn    func(ctx context.Context, start, end time.Time) (store.ProposalRevenueStats, error)
	ProposalGenerationStatsFn func(ctx context.Context, start, end time.Time) (store.GenerationStats, error)
	VoiceProcessingStatsFn    func(ctx context.Context, start, end time.Time) (store.VoiceStats, error)
	InteractionStatsFn        func(ctx context.Context, start, end time.Time) (store.InteractionStats, error)
	ProposalResponseStatsFn   func(ctx context.Context, start, end time.Time) (store.ResponseStats, error)
	PersonaDetectionStatsFn   func(ctx context.Context, start, end time.Time) (store.PersonaStats, error)
	RecommendationStatsFn     func(ctx context.Context, start, end time.Time) (store.RecommendationStats, error)
	EventTotalsFn             func(ctx context.Context, start, end time.Time) (store.EventTotals, error)
	InsertEventFn             func(ctx context.Context, event *models.AnalyticsEvent) error

	InsertedEvents []*models.AnalyticsEvent
}

func (f *Fake) ProposalRevenueStats(ctx context.Context, start, end time.Time) (store.ProposalRevenueStats, error) {
	if f.ProposalRevenueStatsFn != nil {
		return f.ProposalRevenueStatsFn(ctx, start, end)
	}
	return store.ProposalRevenueStats{}, nil
}

func (f *Fake) ProposalGenerationStats(ctx context.Context, start, end time.Time) (store.GenerationStats, error) {
	if f.ProposalGenerationStatsFn != nil {
		return f.ProposalGenerationStatsFn(ctx, start, end)
	}
	return store.GenerationStats{}, nil
}

func (f *Fake) VoiceProcessingStats(ctx context.Context, start, end time.Time) (store.VoiceStats, error) {
	if f.VoiceProcessingStatsFn != nil {
		return f.VoiceProcessingStatsFn(ctx, start, end)
	}
	return store.VoiceStats{}, nil
}

func (f *Fake) InteractionStats(ctx context.Context, start, end time.Time) (store.InteractionStats, error) {
	if f.InteractionStatsFn != nil {
		return f.InteractionStatsFn(ctx, start, end)
	}
	return store.InteractionStats{}, nil
}

func (f *Fake) ProposalResponseStats(ctx context.Context, start, end time.Time) (store.ResponseStats, error) {
	if f.ProposalResponseStatsFn != nil {
		return f.ProposalResponseStatsFn(ctx, start, end)
	}
	return store.ResponseStats{}, nil
}

func (f *Fake) PersonaDetectionStats(ctx context.Context, start, end time.Time) (store.PersonaStats, error) {
	if f.PersonaDetectionStatsFn != nil {
		return f.PersonaDetectionStatsFn(ctx, start, end)
	}
	return store.PersonaStats{}, nil
}

func (f *Fake) RecommendationStats(ctx context.Context, start, end time.Time) (store.RecommendationStats, error) {
	if f.RecommendationStatsFn != nil {
		return f.RecommendationStatsFn(ctx, start, end)
	}
	return store.RecommendationStats{}, nil
}

func (f *Fake) EventTotals(ctx context.Context, start, end time.Time) (store.EventTotals, error) {
	if f.EventTotalsFn != nil {
		return f.EventTotalsFn(ctx, start, end)
	}
	return store.EventTotals{}, nil
}

func (f *Fake) InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	if f.InsertEventFn != nil {
		return f.InsertEventFn(ctx, event)
	}
	f.InsertedEvents = append(f.InsertedEvents, event)
	return nil
}
