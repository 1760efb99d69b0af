package model

import (
	"time"
)

// Geometry is the venue's location. Only GeoJSON points are accepted;
// unknown shapes are rejected at the boundary.
type Geometry struct {
	Type        string    `json:"type" bson:"type" validate:"required,eq=Point"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates" validate:"required,len=2"`
}

// Property is a bookable venue. Partitions are the independently bookable
// sub-spaces; Packages references Package ids offered by this venue.
type Property struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title        string    `json:"title" bson:"title" validate:"required,min=2,max=150"`
	City         string    `json:"city" bson:"city" validate:"required,min=2,max=100"`
	Description  string    `json:"description" bson:"description" validate:"required,max=2000"`
	Packages     []string  `json:"packages,omitempty" bson:"packages,omitempty" validate:"omitempty,dive,mongodb"`
	Partitions   []string  `json:"partitions" bson:"partitions" validate:"required,min=1,dive,min=1,max=100"`
	Gallery      []string  `json:"gallery" bson:"gallery" validate:"required,min=1,dive,url"`
	VenueType    int       `json:"venue_type" bson:"venue_type" validate:"required,min=1"`
	Geometry     Geometry  `json:"geometry" bson:"geometry" validate:"required"`
	ItemPriority int       `json:"item_priority" bson:"item_priority"`
	UserID       string    `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	Active       bool      `json:"active" bson:"active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// PackageRef is the projected package shape attached to enriched properties:
// id and name only.
type PackageRef struct {
	ID          string `json:"id" bson:"_id"`
	PackageName string `json:"package_name" bson:"package_name"`
}

// PropertyWithPackages is a property decorated with the projected details of
// its referenced packages.
type PropertyWithPackages struct {
	Property       `bson:",inline"`
	PackageDetails []PackageRef `json:"package_details" bson:"package_details"`
}
