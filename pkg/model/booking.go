package model

import (
	"time"
)

// Booking confirmation flag values. A confirmed record holds its slot
// exclusively; an inquiry never does.
const (
	Confirmed = 1
	Inquiry   = 0
)

// Booking is a request to use one partition of a venue on an event date.
// Requester info is denormalized on the record, it is not linked to an
// account. UserID references the venue owner's account, not the requester.
type Booking struct {
	ID                 string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PersonName         string    `json:"person_name" bson:"person_name" validate:"required,min=2,max=100"`
	PersonCnic         string    `json:"person_cnic,omitempty" bson:"person_cnic,omitempty" validate:"omitempty,max=20"`
	Email              string    `json:"email" bson:"email" validate:"required,email"`
	ContactNo          string    `json:"contact_no" bson:"contact_no" validate:"required,min=5,max=20"`
	PersonAddress      string    `json:"person_address,omitempty" bson:"person_address,omitempty" validate:"omitempty,max=300"`
	EventName          string    `json:"event_name,omitempty" bson:"event_name,omitempty" validate:"omitempty,max=100"`
	EventDate          time.Time `json:"event_date" bson:"event_date" validate:"required"`
	BookingDate        time.Time `json:"booking_date" bson:"booking_date"`
	Venue              string    `json:"venue" bson:"venue" validate:"required,mongodb"`
	Partition          string    `json:"partition" bson:"partition" validate:"required,min=1,max=100"`
	NoOfGuests         string    `json:"no_of_guests" bson:"no_of_guests" validate:"required"`
	BookingDescription string    `json:"booking_description,omitempty" bson:"booking_description,omitempty" validate:"omitempty,max=1000"`
	Packages           []string  `json:"packages,omitempty" bson:"packages,omitempty" validate:"omitempty,dive,mongodb"`
	BookingRent        string    `json:"booking_rent,omitempty" bson:"booking_rent,omitempty"`
	BookingDiscount    string    `json:"booking_discount,omitempty" bson:"booking_discount,omitempty"`
	BookingTotal       string    `json:"booking_total,omitempty" bson:"booking_total,omitempty"`
	Confirmed          int       `json:"confirmed" bson:"confirmed" validate:"oneof=0 1"`
	Status             bool      `json:"status" bson:"status"`
	UserID             string    `json:"user_id,omitempty" bson:"user_id,omitempty" validate:"omitempty,mongodb"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
}

// BookingWithVenue is a booking decorated with its venue record for listing
// views. VenueDetail is empty when the venue no longer resolves.
type BookingWithVenue struct {
	Booking     `bson:",inline"`
	VenueDetail []Property `json:"venue_detail" bson:"venue_detail"`
}
