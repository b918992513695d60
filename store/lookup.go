package store

import (
	"context"
	"fmt"

	"github.com/lehigh-university-libraries/datacite-store/entity"
)

// FindIdentifier looks up an identifier by its (value, type) natural key.
func (s *Store) FindIdentifier(ctx context.Context, value, identifierType string) (*entity.Identifier, error) {
	var id entity.Identifier
	err := s.conn(ctx).Where("identifier = ? AND identifier_type = ?", value, identifierType).First(&id).Error
	if notFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// FindOrCreateIdentifier returns the identifier with the given natural key,
// creating it when absent.
func (s *Store) FindOrCreateIdentifier(ctx context.Context, value, identifierType string) (*entity.Identifier, error) {
	id, err := s.FindIdentifier(ctx, value, identifierType)
	if err == nil {
		return id, nil
	}
	if err != ErrNotFound {
		return nil, err
	}
	id = &entity.Identifier{Identifier: value, IdentifierType: identifierType}
	if err := s.conn(ctx).Create(id).Error; err != nil {
		return nil, fmt.Errorf("creating identifier %q: %w", value, err)
	}
	return id, nil
}

// SaveIdentifier persists changes to an existing identifier row.
func (s *Store) SaveIdentifier(ctx context.Context, id *entity.Identifier) error {
	return s.conn(ctx).Save(id).Error
}

// FindNameIdentifier looks up a name identifier by its (value, scheme)
// natural key.
func (s *Store) FindNameIdentifier(ctx context.Context, value, scheme string) (*entity.NameIdentifier, error) {
	var nid entity.NameIdentifier
	err := s.conn(ctx).Where("identifier = ? AND scheme = ?", value, scheme).First(&nid).Error
	if notFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &nid, nil
}

// FindName loads a name with its identifiers and affiliations.
func (s *Store) FindName(ctx context.Context, id uint) (*entity.Name, error) {
	var n entity.Name
	err := s.conn(ctx).
		Preload("NameIdentifiers").
		Preload("Affiliations").
		Preload("Affiliations.NameIdentifiers").
		First(&n, id).Error
	if notFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// FindNameByName looks up a name by its exact literal name string.
func (s *Store) FindNameByName(ctx context.Context, name string) (*entity.Name, error) {
	var n entity.Name
	err := s.conn(ctx).Preload("NameIdentifiers").Where("name = ?", name).First(&n).Error
	if notFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// SaveName creates or updates a name row.
func (s *Store) SaveName(ctx context.Context, n *entity.Name) error {
	return s.conn(ctx).Save(n).Error
}

// AttachNameIdentifier binds a name identifier row to a name, creating the
// row when it has no primary key yet.
func (s *Store) AttachNameIdentifier(ctx context.Context, nameID uint, nid *entity.NameIdentifier) error {
	nid.NameID = nameID
	return s.conn(ctx).Save(nid).Error
}

// ReplaceAffiliations swaps a name's affiliation set wholesale.
func (s *Store) ReplaceAffiliations(ctx context.Context, n *entity.Name, affiliations []*entity.Name) error {
	return s.conn(ctx).Model(n).Association("Affiliations").Replace(affiliations)
}

// FindOrCreateSubject dedups by (scheme URI, value URI) when both are set,
// then by the subject text, and creates a fresh row otherwise. Scheme fields
// on the incoming subject fill in blanks on a match found by text.
func (s *Store) FindOrCreateSubject(ctx context.Context, subj *entity.Subject) (*entity.Subject, error) {
	db := s.conn(ctx)

	if subj.SchemeURI != "" && subj.ValueURI != "" {
		var found entity.Subject
		err := db.Where("scheme_uri = ? AND value_uri = ?", subj.SchemeURI, subj.ValueURI).First(&found).Error
		if err == nil {
			return &found, nil
		}
		if !notFound(err) {
			return nil, err
		}
	}

	var found entity.Subject
	err := db.Where("subject = ?", subj.Subject).First(&found).Error
	if err == nil {
		return &found, nil
	}
	if !notFound(err) {
		return nil, err
	}

	if err := db.Create(subj).Error; err != nil {
		return nil, fmt.Errorf("creating subject %q: %w", subj.Subject, err)
	}
	return subj, nil
}

// FindOrCreateGeoLocation returns the geolocation keyed by place, creating
// it when absent. The empty place is a valid key.
func (s *Store) FindOrCreateGeoLocation(ctx context.Context, place string) (*entity.GeoLocation, error) {
	db := s.conn(ctx)

	var geo entity.GeoLocation
	err := db.Preload("Point").Preload("Box").Preload("Polygons").
		Where("place = ?", place).First(&geo).Error
	if err == nil {
		return &geo, nil
	}
	if !notFound(err) {
		return nil, err
	}

	geo = entity.GeoLocation{Place: place}
	if err := db.Create(&geo).Error; err != nil {
		return nil, fmt.Errorf("creating geolocation %q: %w", place, err)
	}
	return &geo, nil
}

// SavePoint creates or replaces the point of a geolocation.
func (s *Store) SavePoint(ctx context.Context, geoID uint, point *entity.GeoLocationPoint) error {
	db := s.conn(ctx)
	var existing entity.GeoLocationPoint
	err := db.Where("geo_location_id = ?", geoID).First(&existing).Error
	if err == nil {
		point.ID = existing.ID
	} else if !notFound(err) {
		return err
	}
	point.GeoLocationID = geoID
	return db.Save(point).Error
}

// SaveBox creates or replaces the bounding box of a geolocation.
func (s *Store) SaveBox(ctx context.Context, geoID uint, box *entity.GeoLocationBox) error {
	db := s.conn(ctx)
	var existing entity.GeoLocationBox
	err := db.Where("geo_location_id = ?", geoID).First(&existing).Error
	if err == nil {
		box.ID = existing.ID
	} else if !notFound(err) {
		return err
	}
	box.GeoLocationID = geoID
	return db.Save(box).Error
}

// AddPolygon appends a polygon ring to a geolocation. Rings are never
// deduplicated.
func (s *Store) AddPolygon(ctx context.Context, geoID uint, polygon *entity.GeoLocationPolygon) error {
	polygon.GeoLocationID = geoID
	return s.conn(ctx).Create(polygon).Error
}
