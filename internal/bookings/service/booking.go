package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "venuedesk/internal/bookings/errors"
	"venuedesk/internal/bookings/repository"
	"venuedesk/internal/bookings/validator"
	"venuedesk/pkg/config"
	apperrors "venuedesk/pkg/errors"
	"venuedesk/pkg/kafka"
	"venuedesk/pkg/model"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	CreateInquiry(ctx context.Context, booking *model.Booking) error
	Cancel(ctx context.Context, id, accountID string) error
	ListConfirmedForAccount(ctx context.Context, accountID string) ([]*model.BookingWithVenue, error)
	ListInquiriesForAccount(ctx context.Context, accountID string) ([]*model.BookingWithVenue, error)
	IsSlotFree(ctx context.Context, venueID, partition string, from, to time.Time) (bool, error)
	CheckSlot(ctx context.Context, venueID, partition string, eventDate time.Time) (bool, error)
	CheckAvailability(ctx context.Context, propertyID string, startDate, endDate time.Time) (*AvailabilityReport, error)
}

// VenueCatalog supplies the active venue catalog for availability search.
// Implemented by the properties repository.
type VenueCatalog interface {
	FindActiveWithPackages(ctx context.Context) ([]*model.PropertyWithPackages, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.SlotLockRepository
	catalog   VenueCatalog
	validator *validator.BookingValidator
	producer  *kafka.Producer
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.SlotLockRepository,
	catalog VenueCatalog,
	bookingValidator *validator.BookingValidator,
	producer *kafka.Producer,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		catalog:   catalog,
		validator: bookingValidator,
		producer:  producer,
		cfg:       cfg,
	}
}

// Create persists a confirmed booking. The slot is re-checked under an
// advisory lock inside a transaction so that of two concurrent requests for
// the same venue/partition/day exactly one succeeds; the partial unique
// index on the collection backstops the same invariant at the store level.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	booking.Confirmed = model.Confirmed
	s.applyDefaults(booking)

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return validationError(err)
	}

	lockID, err := s.acquireSlotLock(ctx, booking)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.lockRepo.Release(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	from, to := DayWindow(booking.EventDate)
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		free, err := s.IsSlotFree(sessCtx, booking.Venue, booking.Partition, from, to)
		if err != nil {
			return err
		}
		if !free {
			return apperrors.Conflict(fmt.Sprintf(
				"Partition %q of venue %s already has a confirmed booking on %s",
				booking.Partition, booking.Venue, booking.EventDate.Format("2006-01-02"),
			))
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			if errors.Is(err, bookingserrors.ErrSlotTaken) {
				// the partial unique index caught a racing insert the lock
				// and the re-check did not
				return apperrors.Conflict(fmt.Sprintf(
					"Partition %q of venue %s already has a confirmed booking on %s",
					booking.Partition, booking.Venue, booking.EventDate.Format("2006-01-02"),
				))
			}
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking",
			"venue", booking.Venue,
			"partition", booking.Partition,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"venue", booking.Venue,
		"partition", booking.Partition,
		"event_date", booking.EventDate,
	)
	s.publishEvent(ctx, kafka.EventBookingCreated, booking)
	return nil
}

// CreateInquiry persists a pending inquiry. Inquiries never hold slots, so
// there is no lock and no conflict check.
func (s *bookingService) CreateInquiry(ctx context.Context, booking *model.Booking) error {
	booking.Confirmed = model.Inquiry
	s.applyDefaults(booking)

	if err := s.validator.ValidateInquiry(booking); err != nil {
		s.cfg.Log.Warn("Inquiry validation failed", "error", err)
		return validationError(err)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create inquiry", "venue", booking.Venue, "error", err)
		return apperrors.Internal("Failed to create inquiry", err)
	}

	s.cfg.Log.Info("Inquiry created", "id", booking.ID, "venue", booking.Venue)
	s.publishEvent(ctx, kafka.EventInquiryCreated, booking)
	return nil
}

// Cancel deactivates a booking owned by the calling account. Dropping
// status frees the slot: the conflict window and the unique index only see
// live records.
func (s *bookingService) Cancel(ctx context.Context, id, accountID string) error {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrNotFound):
			return apperrors.NotFoundWithID("Booking", id)
		case errors.Is(err, bookingserrors.ErrInvalidID):
			return apperrors.InvalidInput("Booking ID is not a valid ObjectID")
		default:
			s.cfg.Log.Error("Failed to load booking", "id", id, "error", err)
			return apperrors.Internal("Failed to load booking", err)
		}
	}

	if booking.UserID != accountID {
		return apperrors.Forbidden("Cannot cancel another account's booking")
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return apperrors.Internal("Failed to cancel booking", err)
	}

	s.cfg.Log.Info("Booking cancelled", "id", id, "venue", booking.Venue, "partition", booking.Partition)
	return nil
}

func (s *bookingService) ListConfirmedForAccount(ctx context.Context, accountID string) ([]*model.BookingWithVenue, error) {
	return s.listForAccount(ctx, accountID, model.Confirmed)
}

func (s *bookingService) ListInquiriesForAccount(ctx context.Context, accountID string) ([]*model.BookingWithVenue, error) {
	return s.listForAccount(ctx, accountID, model.Inquiry)
}

func (s *bookingService) listForAccount(ctx context.Context, accountID string, confirmed int) ([]*model.BookingWithVenue, error) {
	if accountID == "" {
		return nil, apperrors.InvalidInput("Account ID cannot be empty")
	}

	bookings, err := s.repo.FindByOwnerWithVenue(ctx, accountID, confirmed)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings",
			"account_id", accountID,
			"confirmed", confirmed,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// --- Helpers ---

func (s *bookingService) applyDefaults(b *model.Booking) {
	b.Status = true
	if b.BookingDate.IsZero() {
		b.BookingDate = time.Now().UTC().Truncate(time.Millisecond)
	}
}

func validationError(err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		return apperrors.Validation("Booking validation failed", map[string]any{"errors": verrs})
	}
	return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
}

func slotLockID(venueID, partition string, eventDate time.Time) string {
	return fmt.Sprintf("slot:%s:%s:%s", venueID, partition, eventDate.Format("2006-01-02"))
}

func (s *bookingService) acquireSlotLock(ctx context.Context, booking *model.Booking) (string, error) {
	lock := &model.SlotLock{
		ID:        slotLockID(booking.Venue, booking.Partition, booking.EventDate),
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	if err := s.lockRepo.Acquire(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lock.ID, nil
}

func (s *bookingService) publishEvent(ctx context.Context, eventType string, booking *model.Booking) {
	msg, err := kafka.NewMessage(eventType, booking.Venue, booking)
	if err != nil {
		s.cfg.Log.Warn("Failed to encode booking event", "type", eventType, "error", err)
		return
	}
	if err := s.producer.Publish(ctx, msg); err != nil {
		// events are best effort, the booking is already committed
		s.cfg.Log.Warn("Failed to publish booking event", "type", eventType, "error", err)
	}
}
