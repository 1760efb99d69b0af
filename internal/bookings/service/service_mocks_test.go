package service

import (
	"context"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"venuedesk/pkg/config"
	mongotx "venuedesk/pkg/db/mongo"
	"venuedesk/pkg/logger"
	"venuedesk/pkg/model"
)

// func-field mocks so each test overrides only the calls it cares about.

type mockBookingRepo struct {
	createFn       func(ctx context.Context, booking *model.Booking) error
	findByIDFn     func(ctx context.Context, id string) (*model.Booking, error)
	countFn        func(ctx context.Context, venueID, partition string, from, to time.Time) (int64, error)
	findBookedFn   func(ctx context.Context, venueID string, from, to time.Time) ([]string, error)
	findByOwnerFn  func(ctx context.Context, accountID string, confirmed int) ([]*model.BookingWithVenue, error)
	deactivateFn   func(ctx context.Context, id string) error
	transactionFn  func(ctx context.Context, fn mongotx.TransactionFunc) error
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *model.Booking) error {
	return m.createFn(ctx, booking)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockBookingRepo) CountConfirmedInWindow(ctx context.Context, venueID, partition string, from, to time.Time) (int64, error) {
	return m.countFn(ctx, venueID, partition, from, to)
}

func (m *mockBookingRepo) FindBookedVenueIDs(ctx context.Context, venueID string, from, to time.Time) ([]string, error) {
	return m.findBookedFn(ctx, venueID, from, to)
}

func (m *mockBookingRepo) FindByOwnerWithVenue(ctx context.Context, accountID string, confirmed int) ([]*model.BookingWithVenue, error) {
	return m.findByOwnerFn(ctx, accountID, confirmed)
}

func (m *mockBookingRepo) Deactivate(ctx context.Context, id string) error {
	return m.deactivateFn(ctx, id)
}

func (m *mockBookingRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	if m.transactionFn != nil {
		return m.transactionFn(ctx, fn)
	}
	// the mocked callees never touch the session context
	return fn(mongo.SessionContext(nil))
}

type mockSlotLockRepo struct {
	acquireFn func(ctx context.Context, lock *model.SlotLock) error
	releaseFn func(ctx context.Context, lockID string) error
}

func (m *mockSlotLockRepo) Acquire(ctx context.Context, lock *model.SlotLock) error {
	if m.acquireFn != nil {
		return m.acquireFn(ctx, lock)
	}
	return nil
}

func (m *mockSlotLockRepo) Release(ctx context.Context, lockID string) error {
	if m.releaseFn != nil {
		return m.releaseFn(ctx, lockID)
	}
	return nil
}

type mockCatalog struct {
	findActiveFn func(ctx context.Context) ([]*model.PropertyWithPackages, error)
}

func (m *mockCatalog) FindActiveWithPackages(ctx context.Context) ([]*model.PropertyWithPackages, error) {
	return m.findActiveFn(ctx)
}

func testConfig() *config.Config {
	return &config.Config{
		SlotLockTTL: 10 * time.Second,
		Log:         logger.New(logger.Config{Output: io.Discard}),
	}
}
