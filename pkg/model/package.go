package model

// Package is a named add-on service a venue can offer. Referenced from
// Property by id list.
type Package struct {
	ID          string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PackageName string `json:"package_name" bson:"package_name" validate:"required,min=2,max=100"`
	Status      int    `json:"status" bson:"status"`
	UserID      string `json:"user_id" bson:"user_id" validate:"required,mongodb"`
}
