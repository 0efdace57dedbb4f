package advice

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

func TestRank_Order(t *testing.T) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	low := &entity.AdviceItem{ID: uuid.New(), Priority: entity.AdvicePriorityLow, Confidence: 1, CreatedAt: base}
	highOld := &entity.AdviceItem{ID: uuid.New(), Priority: entity.AdvicePriorityHigh, Confidence: 0.5, CreatedAt: base}
	highNew := &entity.AdviceItem{ID: uuid.New(), Priority: entity.AdvicePriorityHigh, Confidence: 0.5, CreatedAt: base.Add(time.Hour)}
	highSure := &entity.AdviceItem{ID: uuid.New(), Priority: entity.AdvicePriorityHigh, Confidence: 0.9, CreatedAt: base}
	medium := &entity.AdviceItem{ID: uuid.New(), Priority: entity.AdvicePriorityMedium, Confidence: 0.1, CreatedAt: base}

	items := []*entity.AdviceItem{low, medium, highOld, highSure, highNew}
	Rank(items)

	want := []*entity.AdviceItem{highSure, highNew, highOld, medium, low}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("position %d: expected %+v, got %+v", i, want[i], items[i])
		}
	}
}

func TestRank_TotalOrderIsStable(t *testing.T) {
	created := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	var items []*entity.AdviceItem
	for i := 0; i < 30; i++ {
		items = append(items, &entity.AdviceItem{
			ID:         uuid.New(),
			ProviderID: []string{"a", "b"}[i%2],
			Priority:   []entity.AdvicePriority{entity.AdvicePriorityHigh, entity.AdvicePriorityLow}[i%2],
			Confidence: 0.5,
			CreatedAt:  created,
		})
	}

	first := append([]*entity.AdviceItem(nil), items...)
	Rank(first)

	r := rand.New(rand.NewSource(42))
	for round := 0; round < 5; round++ {
		shuffled := append([]*entity.AdviceItem(nil), items...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		Rank(shuffled)
		if !reflect.DeepEqual(first, shuffled) {
			t.Fatalf("round %d: ranking depends on input order", round)
		}
	}

	again := append([]*entity.AdviceItem(nil), first...)
	Rank(again)
	if !reflect.DeepEqual(first, again) {
		t.Error("ranking twice changed the order")
	}
}
