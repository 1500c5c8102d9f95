package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pawnbook/backend/internal/domain/identity"
	"github.com/pawnbook/backend/internal/domain/notification"
	"github.com/pawnbook/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newSQLiteDB spins up an in-memory database for repository tests that
// exercise real SQL instead of mocked expectations
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.AccountModel{},
		&models.ReminderModel{},
		&models.UserModel{},
	))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func newPendingReminder(t *testing.T, due, remind time.Time) *notification.Reminder {
	t.Helper()
	r, err := notification.NewReminder(uuid.New(), uuid.New(), "Loan GL-20250101-00001 due", due, remind)
	require.NoError(t, err)
	return r
}

func TestGormReminderRepository_RoundTrip(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormReminderRepository(db)
	ctx := context.Background()

	due := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	reminder := newPendingReminder(t, due, due.AddDate(0, 0, -3))
	require.NoError(t, repo.Save(ctx, reminder))

	found, err := repo.FindByID(ctx, reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, reminder.AccountID, found.AccountID)
	assert.Equal(t, notification.ReminderStatusPending, found.Status)
	assert.True(t, found.DueDate.Equal(due))
}

func TestGormReminderRepository_FindPending(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormReminderRepository(db)
	ctx := context.Background()

	due := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	pending := newPendingReminder(t, due, due.AddDate(0, 0, -3))
	require.NoError(t, repo.Save(ctx, pending))

	dismissed := newPendingReminder(t, due.AddDate(0, 0, 1), due.AddDate(0, 0, -2))
	require.NoError(t, dismissed.Dismiss())
	require.NoError(t, repo.Save(ctx, dismissed))

	found, err := repo.FindPending(ctx)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, pending.ID, found[0].ID)
}

func TestGormReminderRepository_ExistsForAccountOnDate(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormReminderRepository(db)
	ctx := context.Background()

	remind := time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC)
	reminder := newPendingReminder(t, remind.AddDate(0, 0, 3), remind)
	require.NoError(t, repo.Save(ctx, reminder))

	sameDay, err := repo.ExistsForAccountOnDate(ctx, reminder.AccountID, remind.Add(5*time.Hour))
	require.NoError(t, err)
	assert.True(t, sameDay)

	nextDay, err := repo.ExistsForAccountOnDate(ctx, reminder.AccountID, remind.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, nextDay)

	otherAccount, err := repo.ExistsForAccountOnDate(ctx, uuid.New(), remind)
	require.NoError(t, err)
	assert.False(t, otherAccount)
}

func TestGormUserRepository_RoundTrip(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewUser("Asha", "supersecret1", "Asha", identity.RoleStaff)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	// Username lookups are case-insensitive because NewUser lowercases
	found, err := repo.FindByUsername(ctx, "ASHA")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.True(t, found.CheckPassword("supersecret1"))
	assert.False(t, found.CheckPassword("wrongpassword"))
}
