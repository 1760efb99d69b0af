package service

import (
	"context"
	"time"

	apperrors "venuedesk/pkg/errors"
	"venuedesk/pkg/model"
)

// AvailabilityReport is the catalog-level answer for a date window: the
// venues already booked in it and the active venues still free.
type AvailabilityReport struct {
	StartDate         time.Time                     `json:"startDate"`
	EndDate           time.Time                     `json:"endDate"`
	Availability      bool                          `json:"availability"`
	BookedProperty    []string                      `json:"bookedProperty"`
	AvailableProperty []*model.PropertyWithPackages `json:"availableProperty"`
}

// DayWindow expands a target date into the half-open window
// [start of day, start of next day) in the date's location.
func DayWindow(d time.Time) (time.Time, time.Time) {
	from := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	return from, from.AddDate(0, 0, 1)
}

// IsSlotFree reports whether no confirmed booking occupies the given venue
// partition with an event date in [from, to). Inquiries never block a slot.
// Venue existence is the caller's concern.
func (s *bookingService) IsSlotFree(ctx context.Context, venueID, partition string, from, to time.Time) (bool, error) {
	count, err := s.repo.CountConfirmedInWindow(ctx, venueID, partition, from, to)
	if err != nil {
		s.cfg.Log.Error("Failed to count confirmed bookings",
			"venue", venueID,
			"partition", partition,
			"error", err,
		)
		return false, apperrors.Internal("Failed to check slot availability", err)
	}
	return count == 0, nil
}

// CheckSlot answers the single-venue question: is this partition free on
// this date. The window is the event date's full calendar day.
func (s *bookingService) CheckSlot(ctx context.Context, venueID, partition string, eventDate time.Time) (bool, error) {
	if venueID == "" || partition == "" {
		return false, apperrors.InvalidInput("venue_id and partition are required")
	}

	from, to := DayWindow(eventDate)
	return s.IsSlotFree(ctx, venueID, partition, from, to)
}

// CheckAvailability computes the catalog-level report for [startDate,
// endDate] (end date inclusive, whole days). A venue counts as booked when
// any confirmed booking lands in the window, regardless of partition; the
// per-partition answer is CheckSlot's job.
func (s *bookingService) CheckAvailability(ctx context.Context, propertyID string, startDate, endDate time.Time) (*AvailabilityReport, error) {
	if endDate.Before(startDate) {
		return nil, apperrors.InvalidInput("endDate must not be before startDate")
	}

	from, _ := DayWindow(startDate)
	_, to := DayWindow(endDate)

	catalog, err := s.catalog.FindActiveWithPackages(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load venue catalog", "error", err)
		return nil, apperrors.Internal("Failed to load venue catalog", err)
	}

	bookedIDs, err := s.repo.FindBookedVenueIDs(ctx, propertyID, from, to)
	if err != nil {
		s.cfg.Log.Error("Failed to find booked venues", "error", err)
		return nil, apperrors.Internal("Failed to check availability", err)
	}

	booked := make(map[string]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	available := make([]*model.PropertyWithPackages, 0, len(catalog))
	for _, p := range catalog {
		if _, ok := booked[p.ID]; !ok {
			available = append(available, p)
		}
	}

	return &AvailabilityReport{
		StartDate:         from,
		EndDate:           to,
		Availability:      len(bookedIDs) == 0,
		BookedProperty:    bookedIDs,
		AvailableProperty: available,
	}, nil
}
