package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/shared"
	"github.com/pawnbook/backend/internal/domain/shared/valueobject"
)

// EntryRepository is append-only by design: the ledger has no update or
// delete operations anywhere in the system.
type EntryRepository interface {
	// Append inserts the entry and fills in its database-assigned Seq
	Append(ctx context.Context, entry *Entry) error
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	// FindByCustomer returns the customer's entries ordered by OccurredAt
	// descending, Seq descending as the tie-break.
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*Entry, int64, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Entry, int64, error)
	FindBetween(ctx context.Context, from, to time.Time) ([]*Entry, error)
	SumByType(ctx context.Context, entryType EntryType, from, to time.Time) (valueobject.Money, error)
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
}
