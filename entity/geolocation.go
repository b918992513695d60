package entity

import (
	"fmt"

	"gorm.io/gorm"
)

// ValidationError is a hard shape error on geolocation coordinates. It is
// raised from the persistence hooks so a bad shape can never be stored, no
// matter which path tries to save it.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// ValidLongitude reports whether lon is within [-180, 180].
func ValidLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}

// ValidLatitude reports whether lat is within [-90, 90].
func ValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// GeoLocation is a shared place entity, many-to-many with resources, keyed by
// the place string. The empty place is a valid key. Point and box are
// has-one children; polygons accumulate.
type GeoLocation struct {
	ID    uint   `gorm:"primaryKey"`
	Place string `gorm:"uniqueIndex"`

	Point    *GeoLocationPoint    `gorm:"constraint:OnDelete:CASCADE"`
	Box      *GeoLocationBox      `gorm:"constraint:OnDelete:CASCADE"`
	Polygons []GeoLocationPolygon `gorm:"constraint:OnDelete:CASCADE"`
}

// GeoLocationPoint is a single coordinate attached to a GeoLocation.
type GeoLocationPoint struct {
	ID            uint `gorm:"primaryKey"`
	GeoLocationID uint `gorm:"uniqueIndex"`
	Longitude     float64
	Latitude      float64
}

// Validate checks the coordinate ranges.
func (p *GeoLocationPoint) Validate() error {
	if !ValidLongitude(p.Longitude) {
		return &ValidationError{Field: "point", Msg: fmt.Sprintf("longitude %v out of range", p.Longitude)}
	}
	if !ValidLatitude(p.Latitude) {
		return &ValidationError{Field: "point", Msg: fmt.Sprintf("latitude %v out of range", p.Latitude)}
	}
	return nil
}

// BeforeSave rejects out-of-range coordinates at the persistence layer.
func (p *GeoLocationPoint) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

// GeoLocationBox is a bounding box attached to a GeoLocation.
type GeoLocationBox struct {
	ID             uint `gorm:"primaryKey"`
	GeoLocationID  uint `gorm:"uniqueIndex"`
	WestLongitude  float64
	EastLongitude  float64
	SouthLatitude  float64
	NorthLatitude  float64
}

// Validate checks all four bounds.
func (b *GeoLocationBox) Validate() error {
	for _, lon := range []float64{b.WestLongitude, b.EastLongitude} {
		if !ValidLongitude(lon) {
			return &ValidationError{Field: "box", Msg: fmt.Sprintf("longitude %v out of range", lon)}
		}
	}
	for _, lat := range []float64{b.SouthLatitude, b.NorthLatitude} {
		if !ValidLatitude(lat) {
			return &ValidationError{Field: "box", Msg: fmt.Sprintf("latitude %v out of range", lat)}
		}
	}
	return nil
}

// BeforeSave rejects out-of-range bounds at the persistence layer.
func (b *GeoLocationBox) BeforeSave(tx *gorm.DB) error {
	return b.Validate()
}

// PolygonPoints is an ordered ring of [longitude, latitude] pairs, stored as
// JSON in a single column.
type PolygonPoints [][2]float64

// GeoLocationPolygon is one polygon ring attached to a GeoLocation, with a
// required interior point marking which side of the ring is inside. Polygons
// are additive: re-importing the same ring stores another row.
type GeoLocationPolygon struct {
	ID            uint          `gorm:"primaryKey"`
	GeoLocationID uint          `gorm:"index"`
	Points        PolygonPoints `gorm:"serializer:json"`

	InPointLongitude *float64
	InPointLatitude  *float64
}

// Validate checks the ring has at least four points, an interior point is
// set, and every coordinate is in range.
func (p *GeoLocationPolygon) Validate() error {
	if len(p.Points) < 4 {
		return &ValidationError{Field: "polygon", Msg: fmt.Sprintf("needs at least 4 points, got %d", len(p.Points))}
	}
	for i, pt := range p.Points {
		if !ValidLongitude(pt[0]) {
			return &ValidationError{Field: "polygon", Msg: fmt.Sprintf("point %d: longitude %v out of range", i, pt[0])}
		}
		if !ValidLatitude(pt[1]) {
			return &ValidationError{Field: "polygon", Msg: fmt.Sprintf("point %d: latitude %v out of range", i, pt[1])}
		}
	}
	if p.InPointLongitude == nil || p.InPointLatitude == nil {
		return &ValidationError{Field: "polygon", Msg: "interior point required"}
	}
	if !ValidLongitude(*p.InPointLongitude) {
		return &ValidationError{Field: "polygon", Msg: fmt.Sprintf("interior longitude %v out of range", *p.InPointLongitude)}
	}
	if !ValidLatitude(*p.InPointLatitude) {
		return &ValidationError{Field: "polygon", Msg: fmt.Sprintf("interior latitude %v out of range", *p.InPointLatitude)}
	}
	return nil
}

// BeforeSave rejects malformed rings at the persistence layer.
func (p *GeoLocationPolygon) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}
