package advice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/application/adapter"
	"github.com/finance-tracker/analytics/internal/domain/entity"
	domainerror "github.com/finance-tracker/analytics/internal/domain/error"
)

var now = time.Date(2024, time.September, 1, 8, 0, 0, 0, time.UTC)

type stubProvider struct {
	id        string
	available bool
	items     func() []*entity.AdviceItem
	err       error
	block     bool // Ignores its context and never answers
}

func (p *stubProvider) ID() string        { return p.id }
func (p *stubProvider) IsAvailable() bool { return p.available }

func (p *stubProvider) Advise(ctx context.Context, _ *adapter.AdviceContext) ([]*entity.AdviceItem, error) {
	if p.block {
		select {}
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.items(), nil
}

func liveItems(titles ...string) func() []*entity.AdviceItem {
	return func() []*entity.AdviceItem {
		var out []*entity.AdviceItem
		for _, title := range titles {
			out = append(out, &entity.AdviceItem{Title: title, Content: "c", Priority: entity.AdvicePriorityMedium, Confidence: 0.9})
		}
		return out
	}
}

func newTestAggregator(providers ...adapter.AdvisoryProvider) *Aggregator {
	return NewAggregator(providers, DefaultFallbacks(), adapter.FixedClock{At: now}, AggregatorConfig{ProviderTimeout: 50 * time.Millisecond})
}

func TestAggregator_SuccessAndTimeoutFallback(t *testing.T) {
	a := &stubProvider{id: "gemini", available: true, items: liveItems("live one", "live two")}
	b := &stubProvider{id: "openai", available: true, block: true}

	items, failures := newTestAggregator(a, b).Collect(context.Background(), &adapter.AdviceContext{ProfileID: uuid.New(), Locale: "en"})

	live, fallback := 0, 0
	for _, item := range items {
		switch {
		case item.ProviderID == "gemini" && !item.IsFallback:
			live++
		case item.ProviderID == "openai" && item.IsFallback:
			fallback++
		default:
			t.Errorf("unexpected item %+v", item)
		}
	}
	if live != 2 {
		t.Errorf("expected 2 live items from gemini, got %d", live)
	}
	if want := len(DefaultFallbacks().Lookup("openai", "en")); fallback != want {
		t.Errorf("expected %d fallback items from openai, got %d", want, fallback)
	}

	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}
	if failures[0].Code != domainerror.ErrCodeProviderTimeout || failures[0].EntityID != "openai" {
		t.Errorf("expected timeout failure for openai, got %s/%s", failures[0].Code, failures[0].EntityID)
	}
	if !failures[0].IsProviderFailure() || !errors.Is(failures[0], domainerror.ErrProviderFailure) {
		t.Error("expected a provider failure")
	}
}

func TestAggregator_FailureKinds(t *testing.T) {
	tests := []struct {
		name     string
		provider *stubProvider
		wantCode domainerror.AnalyticsErrorCode
	}{
		{"not configured", &stubProvider{id: "gemini"}, domainerror.ErrCodeProviderUnavailable},
		{"rate limited", &stubProvider{id: "gemini", available: true, err: errors.New("googleapi: Error 429: quota exceeded")}, domainerror.ErrCodeProviderRateLimited},
		{"bad key", &stubProvider{id: "gemini", available: true, err: errors.New("status 401 unauthorized")}, domainerror.ErrCodeProviderAuth},
		{"malformed json", &stubProvider{id: "gemini", available: true, err: errors.New("failed to parse advice json")}, domainerror.ErrCodeProviderParse},
		{"empty answer", &stubProvider{id: "gemini", available: true, items: liveItems()}, domainerror.ErrCodeProviderParse},
		{"other", &stubProvider{id: "gemini", available: true, err: errors.New("boom")}, domainerror.ErrCodeProviderUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, failures := newTestAggregator(tt.provider).Collect(context.Background(), &adapter.AdviceContext{Locale: "pt-BR"})
			if len(failures) != 1 || failures[0].Code != tt.wantCode {
				t.Fatalf("expected failure %s, got %v", tt.wantCode, failures)
			}
			if len(items) == 0 {
				t.Fatal("expected fallback items")
			}
			for _, item := range items {
				if !item.IsFallback {
					t.Errorf("expected only fallback items, got %+v", item)
				}
			}
		})
	}
}

func TestAggregator_NormalizesLiveItems(t *testing.T) {
	profileID := uuid.New()
	p := &stubProvider{id: "gemini", available: true, items: func() []*entity.AdviceItem {
		return []*entity.AdviceItem{
			{Title: "  shout  ", Priority: "HIGH", Confidence: 7, IsRead: true},
			{Title: "odd", Priority: "urgent", Confidence: -1},
			{Title: " ", Content: " "},
			nil,
		}
	}}

	items, failures := newTestAggregator(p).Collect(context.Background(), &adapter.AdviceContext{ProfileID: profileID})
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	first, second := items[0], items[1]
	if first.Title != "shout" || first.Priority != entity.AdvicePriorityHigh || first.Confidence != 1 || first.IsRead {
		t.Errorf("first item not normalized: %+v", first)
	}
	if second.Priority != entity.AdvicePriorityLow || second.Confidence != 0 {
		t.Errorf("second item not normalized: %+v", second)
	}
	for _, item := range items {
		if item.ID == uuid.Nil || item.ProfileID != profileID || item.ProviderID != "gemini" || !item.CreatedAt.Equal(now) {
			t.Errorf("item not tagged: %+v", item)
		}
	}
}

func TestAggregator_Dedup(t *testing.T) {
	a := &stubProvider{id: "a", available: true, items: liveItems("Save more")}
	b := &stubProvider{id: "b", available: true, items: liveItems("  save   MORE ")}

	without, _ := newTestAggregator(a, b).Collect(context.Background(), &adapter.AdviceContext{})
	if len(without) != 2 {
		t.Errorf("expected provenance kept without dedup, got %d items", len(without))
	}

	agg := NewAggregator([]adapter.AdvisoryProvider{a, b}, nil, adapter.FixedClock{At: now}, AggregatorConfig{Dedup: true})
	with, _ := agg.Collect(context.Background(), &adapter.AdviceContext{})
	if len(with) != 1 || with[0].ProviderID != "a" {
		t.Errorf("expected a single item from provider a, got %+v", with)
	}
}

func TestFallbackCatalog_Lookup(t *testing.T) {
	catalog := DefaultFallbacks()

	if got := catalog.Lookup("gemini", "pt-BR"); len(got) == 0 || got[0].Title != catalog["gemini"]["pt"][0].Title {
		t.Error("expected pt-BR to resolve to the pt set")
	}
	if got := catalog.Lookup("gemini", "de"); len(got) == 0 || got[0].Title != catalog["gemini"]["en"][0].Title {
		t.Error("expected unknown locale to resolve to the default locale")
	}
	if got := catalog.Lookup("unknown", "en"); len(got) == 0 || got[0].Title != catalog[AnyProvider]["en"][0].Title {
		t.Error("expected unknown provider to resolve to the shared set")
	}
}
