// Package advice collects, ranks and tracks advisory recommendations from external providers.
package advice

import (
	"crypto/sha256"
	"sort"
	"strings"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// Less orders advice by priority (high first), confidence desc, creation time desc,
// then provider ID and item ID so that the order is total.
func Less(a, b *entity.AdviceItem) bool {
	if a.Priority.Rank() != b.Priority.Rank() {
		return a.Priority.Rank() < b.Priority.Rank()
	}
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	if a.ProviderID != b.ProviderID {
		return a.ProviderID < b.ProviderID
	}
	return a.ID.String() < b.ID.String()
}

// Rank sorts items in place.
func Rank(items []*entity.AdviceItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return Less(items[i], items[j])
	})
}

// Dedup keeps the first item of every normalized (title, content) pair.
// Items must already be ranked so the best-ranked copy survives.
func Dedup(items []*entity.AdviceItem) []*entity.AdviceItem {
	seen := make(map[[sha256.Size]byte]struct{}, len(items))
	out := make([]*entity.AdviceItem, 0, len(items))
	for _, item := range items {
		key := contentHash(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func contentHash(item *entity.AdviceItem) [sha256.Size]byte {
	normalize := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(s)), " ")
	}
	return sha256.Sum256([]byte(normalize(item.Title) + "\x00" + normalize(item.Content)))
}
