// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// SequenceIssuer hands out strictly increasing numbers per profile. Advice refreshes use them
// to order their writes logically rather than by arrival time.
type SequenceIssuer interface {
	Next(ctx context.Context, profileID uuid.UUID) (int64, error)
}
