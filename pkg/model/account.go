package model

import "time"

// Account is a venue-owner login. The password hash never serializes to
// JSON.
type Account struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Password  string    `json:"-" bson:"password"`
	Avatar    string    `json:"avatar,omitempty" bson:"avatar,omitempty" validate:"omitempty,url"`
	Contact   string    `json:"contact,omitempty" bson:"contact,omitempty" validate:"omitempty,max=20"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty" validate:"omitempty,max=300"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Customer is a visitor login used for inquiries from the public site.
type Customer struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserEmail   string    `json:"user_email" bson:"user_email" validate:"required,email"`
	Password    string    `json:"-" bson:"password"`
	PhoneNumber string    `json:"phone_number" bson:"phone_number" validate:"required,min=5,max=20"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
