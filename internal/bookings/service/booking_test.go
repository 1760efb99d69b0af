package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "venuedesk/internal/bookings/errors"
	"venuedesk/internal/bookings/validator"
	apperrors "venuedesk/pkg/errors"
	"venuedesk/pkg/model"
)

func validBooking() *model.Booking {
	return &model.Booking{
		PersonName:   "Ayesha Khan",
		Email:        "ayesha@example.com",
		ContactNo:    "03001234567",
		EventDate:    time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		Venue:        "665f1f77bcf86cd799439011",
		Partition:    "Hall A",
		NoOfGuests:   "250",
		BookingRent:  "150000",
		BookingTotal: "140000",
		UserID:       "665f1f77bcf86cd799439022",
	}
}

func newTestService(repo *mockBookingRepo, locks *mockSlotLockRepo) BookingService {
	cfg := testConfig()
	return NewBookingService(repo, locks, nil, validator.NewBookingValidator(cfg.Log), nil, cfg)
}

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func TestCreateForcesConfirmedAndDefaults(t *testing.T) {
	var stored *model.Booking
	repo := &mockBookingRepo{
		countFn: func(_ context.Context, _, _ string, _, _ time.Time) (int64, error) {
			return 0, nil
		},
		createFn: func(_ context.Context, b *model.Booking) error {
			stored = b
			return nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepo{})

	booking := validBooking()
	booking.Confirmed = model.Inquiry // client cannot smuggle an unconfirmed record in

	require.NoError(t, svc.Create(context.Background(), booking))
	require.NotNil(t, stored)
	assert.Equal(t, model.Confirmed, stored.Confirmed)
	assert.True(t, stored.Status)
	assert.False(t, stored.BookingDate.IsZero())
}

func TestCreateRejectsOccupiedSlot(t *testing.T) {
	created := false
	repo := &mockBookingRepo{
		countFn: func(_ context.Context, _, _ string, _, _ time.Time) (int64, error) {
			return 1, nil
		},
		createFn: func(_ context.Context, _ *model.Booking) error {
			created = true
			return nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepo{})

	err := svc.Create(context.Background(), validBooking())

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.AsAppError(err).Code)
	assert.False(t, created, "no insert after a failed slot check")
}

func TestCreateUniqueIndexBackstopMapsToConflict(t *testing.T) {
	// both racers pass the free check; the second insert is rejected by the
	// unique slot index and must still surface as a conflict, not a 500
	repo := &mockBookingRepo{
		countFn: func(_ context.Context, _, _ string, _, _ time.Time) (int64, error) {
			return 0, nil
		},
		createFn: func(_ context.Context, b *model.Booking) error {
			return fmt.Errorf("%w: %s/%s", bookingserrors.ErrSlotTaken, b.Venue, b.Partition)
		},
	}
	svc := newTestService(repo, &mockSlotLockRepo{})

	err := svc.Create(context.Background(), validBooking())

	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.StatusCode())
}

func TestCreateLockContention(t *testing.T) {
	locks := &mockSlotLockRepo{
		acquireFn: func(_ context.Context, _ *model.SlotLock) error {
			return duplicateKeyErr()
		},
	}
	repo := &mockBookingRepo{
		createFn: func(_ context.Context, _ *model.Booking) error {
			t.Fatal("create must not run without the slot lock")
			return nil
		},
	}
	svc := newTestService(repo, locks)

	err := svc.Create(context.Background(), validBooking())

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.AsAppError(err).Code)
}

func TestCreateReleasesLockOnFailure(t *testing.T) {
	var acquired, released string
	locks := &mockSlotLockRepo{
		acquireFn: func(_ context.Context, lock *model.SlotLock) error {
			acquired = lock.ID
			return nil
		},
		releaseFn: func(_ context.Context, lockID string) error {
			released = lockID
			return nil
		},
	}
	repo := &mockBookingRepo{
		countFn: func(_ context.Context, _, _ string, _, _ time.Time) (int64, error) {
			return 1, nil
		},
	}
	svc := newTestService(repo, locks)

	err := svc.Create(context.Background(), validBooking())

	require.Error(t, err)
	assert.Equal(t, "slot:665f1f77bcf86cd799439011:Hall A:2026-09-20", acquired)
	assert.Equal(t, acquired, released, "the lock is released even when the booking fails")
}

func TestCreateValidationRunsBeforeLocking(t *testing.T) {
	locks := &mockSlotLockRepo{
		acquireFn: func(_ context.Context, _ *model.SlotLock) error {
			t.Fatal("invalid input must not reach the lock")
			return nil
		},
	}
	svc := newTestService(&mockBookingRepo{}, locks)

	booking := validBooking()
	booking.Email = "not-an-email"
	booking.BookingRent = ""

	err := svc.Create(context.Background(), booking)

	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Details, "errors")
}

func TestCreateInquirySkipsLockAndConflictCheck(t *testing.T) {
	var stored *model.Booking
	locks := &mockSlotLockRepo{
		acquireFn: func(_ context.Context, _ *model.SlotLock) error {
			t.Fatal("inquiries never take slot locks")
			return nil
		},
	}
	repo := &mockBookingRepo{
		countFn: func(_ context.Context, _, _ string, _, _ time.Time) (int64, error) {
			t.Fatal("inquiries never check slot occupancy")
			return 0, nil
		},
		createFn: func(_ context.Context, b *model.Booking) error {
			stored = b
			return nil
		},
	}
	svc := newTestService(repo, locks)

	inquiry := validBooking()
	inquiry.BookingRent = ""
	inquiry.BookingTotal = ""
	inquiry.UserID = ""
	inquiry.Confirmed = model.Confirmed // forced back down

	require.NoError(t, svc.CreateInquiry(context.Background(), inquiry))
	require.NotNil(t, stored)
	assert.Equal(t, model.Inquiry, stored.Confirmed)
	assert.True(t, stored.Status)
}

func TestCancelChecksOwnership(t *testing.T) {
	repo := &mockBookingRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.Booking, error) {
			return &model.Booking{ID: "665f1f77bcf86cd799439044", UserID: "665f1f77bcf86cd799439022"}, nil
		},
		deactivateFn: func(_ context.Context, _ string) error {
			t.Fatal("foreign booking must not be deactivated")
			return nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepo{})

	err := svc.Cancel(context.Background(), "665f1f77bcf86cd799439044", "665f1f77bcf86cd799439099")

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeForbidden, apperrors.AsAppError(err).Code)
}

func TestCancelDeactivatesOwnBooking(t *testing.T) {
	var deactivated string
	repo := &mockBookingRepo{
		findByIDFn: func(_ context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, UserID: "665f1f77bcf86cd799439022"}, nil
		},
		deactivateFn: func(_ context.Context, id string) error {
			deactivated = id
			return nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepo{})

	require.NoError(t, svc.Cancel(context.Background(), "665f1f77bcf86cd799439044", "665f1f77bcf86cd799439022"))
	assert.Equal(t, "665f1f77bcf86cd799439044", deactivated)
}

func TestListForAccountRequiresID(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockSlotLockRepo{})

	_, err := svc.ListConfirmedForAccount(context.Background(), "")

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
}

func TestListPassesConfirmedFlag(t *testing.T) {
	var gotConfirmed []int
	repo := &mockBookingRepo{
		findByOwnerFn: func(_ context.Context, accountID string, confirmed int) ([]*model.BookingWithVenue, error) {
			assert.Equal(t, "665f1f77bcf86cd799439022", accountID)
			gotConfirmed = append(gotConfirmed, confirmed)
			return []*model.BookingWithVenue{}, nil
		},
	}
	svc := newTestService(repo, &mockSlotLockRepo{})

	_, err := svc.ListConfirmedForAccount(context.Background(), "665f1f77bcf86cd799439022")
	require.NoError(t, err)
	_, err = svc.ListInquiriesForAccount(context.Background(), "665f1f77bcf86cd799439022")
	require.NoError(t, err)

	assert.Equal(t, []int{model.Confirmed, model.Inquiry}, gotConfirmed)
}
