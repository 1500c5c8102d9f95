package lending

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/shared"
)

// AccountRepository defines persistence operations for lending accounts
type AccountRepository interface {
	Save(ctx context.Context, account *Account) error
	// SaveWithLock persists the account only if the stored version matches
	// expectedVersion. Returns ErrConcurrencyConflict when another writer
	// got there first.
	SaveWithLock(ctx context.Context, account *Account, expectedVersion int) error
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByAccountNumber(ctx context.Context, number string) (*Account, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Account, error)
	FindByProduct(ctx context.Context, productType ProductType, filter shared.Filter) ([]*Account, int64, error)
	// FindOutstanding returns accounts with a positive outstanding
	// principal, optionally restricted to one direction.
	FindOutstanding(ctx context.Context, direction *Direction) ([]*Account, error)
	// FindOverdue returns open accounts whose due date has passed as of now
	FindOverdue(ctx context.Context, now time.Time) ([]*Account, error)
	// FindDueWithin returns open accounts due between now and now+within
	FindDueWithin(ctx context.Context, now time.Time, within time.Duration) ([]*Account, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Account, int64, error)
	CountByStatus(ctx context.Context, status AccountStatus) (int64, error)
	// NextAccountSequence returns the next per-day sequence number used to
	// build account numbers like GL-20250101-00001.
	NextAccountSequence(ctx context.Context, prefix string, date time.Time) (int, error)
}
