package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/lehigh-university-libraries/datacite-store/citation"
	"github.com/lehigh-university-libraries/datacite-store/entity"
)

// preloads is the full association graph of a record, deep enough for
// export.
var preloads = []string{
	"Identifier",
	"Titles",
	"Descriptions",
	"Dates",
	"Creators.Name.NameIdentifiers",
	"Creators.Name.Affiliations.NameIdentifiers",
	"Contributors.Name.NameIdentifiers",
	"Contributors.Name.Affiliations.NameIdentifiers",
	"AlternateIdentifiers.Identifier",
	"RelatedIdentifiers.Identifier",
	"RightsList",
	"FundingReferences.Funder.NameIdentifiers",
	"RelatedItems.Item.Identifier",
	"RelatedItems.Item.Titles",
	"RelatedItems.Item.Creators.Name",
	"RelatedItems.Item.Contributors.Name",
	"Subjects",
	"GeoLocations.Point",
	"GeoLocations.Box",
	"GeoLocations.Polygons",
}

// GetResource loads a record with its full association graph.
func (s *Store) GetResource(ctx context.Context, id uint) (*entity.Resource, error) {
	db := s.conn(ctx)
	for _, p := range preloads {
		db = db.Preload(p)
	}
	var r entity.Resource
	err := db.First(&r, id).Error
	if notFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// FindResourceByIdentifier returns the record owning the given identifier
// row.
func (s *Store) FindResourceByIdentifier(ctx context.Context, identifierID uint) (*entity.Resource, error) {
	var r entity.Resource
	err := s.conn(ctx).Where("identifier_id = ?", identifierID).First(&r).Error
	if notFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListResources returns all records in id order, with identifiers and
// titles loaded for display.
func (s *Store) ListResources(ctx context.Context) ([]entity.Resource, error) {
	var rs []entity.Resource
	err := s.conn(ctx).Preload("Identifier").Preload("Titles").Order("id").Find(&rs).Error
	return rs, err
}

// SaveResource persists the record's scalar fields, then recomputes its
// citation and mirrors it onto the linked identifier. Child rows are
// managed through the typed upserts, not here.
func (s *Store) SaveResource(ctx context.Context, r *entity.Resource) error {
	return s.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.conn(ctx).Omit(clause.Associations).Save(r).Error; err != nil {
			return fmt.Errorf("saving resource: %w", err)
		}
		full, err := s.GetResource(ctx, r.ID)
		if err != nil {
			return err
		}
		if full.Identifier != nil {
			full.Identifier.Citation = citation.Citation(full, s.DOIBaseURL)
			if err := s.conn(ctx).Save(full.Identifier).Error; err != nil {
				return fmt.Errorf("updating citation: %w", err)
			}
		}
		return nil
	})
}

// CopyResource duplicates a record: scalars and owned children are copied,
// shared entities (names, identifiers, subjects, geolocations) are linked to
// the same rows, and the copy starts without an identifier of its own.
func (s *Store) CopyResource(ctx context.Context, id uint) (*entity.Resource, error) {
	var dup *entity.Resource
	err := s.InTransaction(ctx, func(ctx context.Context) error {
		src, err := s.GetResource(ctx, id)
		if err != nil {
			return err
		}

		dup = &entity.Resource{
			Publisher:               src.Publisher,
			PublicationYear:         src.PublicationYear,
			ResourceType:            src.ResourceType,
			ResourceTypeGeneral:     src.ResourceTypeGeneral,
			Language:                src.Language,
			Size:                    src.Size,
			Format:                  src.Format,
			Version:                 src.Version,
			CitePublisher:           src.CitePublisher,
			CiteResourceTypeGeneral: src.CiteResourceTypeGeneral,
			CiteVersion:             src.CiteVersion,
		}
		for _, t := range src.Titles {
			dup.Titles = append(dup.Titles, entity.Title{Title: t.Title, TitleType: t.TitleType})
		}
		for _, d := range src.Descriptions {
			dup.Descriptions = append(dup.Descriptions, entity.Description{Description: d.Description, DescriptionType: d.DescriptionType})
		}
		for _, d := range src.Dates {
			dup.Dates = append(dup.Dates, entity.Date{Date: d.Date, DateType: d.DateType, DateInformation: d.DateInformation})
		}
		for _, c := range src.Creators {
			dup.Creators = append(dup.Creators, entity.Creator{NameID: c.NameID, Position: c.Position})
		}
		for _, c := range src.Contributors {
			dup.Contributors = append(dup.Contributors, entity.Contributor{NameID: c.NameID, ContributorType: c.ContributorType, Position: c.Position})
		}
		for _, a := range src.AlternateIdentifiers {
			dup.AlternateIdentifiers = append(dup.AlternateIdentifiers, entity.AlternateIdentifier{IdentifierID: a.IdentifierID, Position: a.Position})
		}
		for _, r := range src.RelatedIdentifiers {
			dup.RelatedIdentifiers = append(dup.RelatedIdentifiers, entity.RelatedIdentifier{
				IdentifierID: r.IdentifierID, RelationType: r.RelationType,
				ResourceTypeGeneral: r.ResourceTypeGeneral, Position: r.Position,
			})
		}
		for _, rt := range src.RightsList {
			dup.RightsList = append(dup.RightsList, entity.Rights{RightsIdentifier: rt.RightsIdentifier})
		}
		for _, f := range src.FundingReferences {
			dup.FundingReferences = append(dup.FundingReferences, entity.FundingReference{
				FunderID: f.FunderID, AwardNumber: f.AwardNumber,
				AwardURI: f.AwardURI, AwardTitle: f.AwardTitle,
			})
		}
		for _, ri := range src.RelatedItems {
			dup.RelatedItems = append(dup.RelatedItems, entity.RelatedItem{
				ItemID: ri.ItemID, RelationType: ri.RelationType,
				Volume: ri.Volume, Issue: ri.Issue,
				Number: ri.Number, NumberType: ri.NumberType,
				FirstPage: ri.FirstPage, LastPage: ri.LastPage,
				Edition: ri.Edition,
			})
		}

		if err := s.conn(ctx).Create(dup).Error; err != nil {
			return fmt.Errorf("copying resource: %w", err)
		}
		if len(src.Subjects) > 0 {
			if err := s.conn(ctx).Model(dup).Association("Subjects").Append(src.Subjects); err != nil {
				return err
			}
		}
		if len(src.GeoLocations) > 0 {
			if err := s.conn(ctx).Model(dup).Association("GeoLocations").Append(src.GeoLocations); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dup, nil
}

// DeleteResource removes a record and its owned children. Shared entities
// stay untouched; the linked identifier simply loses its resource.
func (s *Store) DeleteResource(ctx context.Context, id uint) error {
	return s.InTransaction(ctx, func(ctx context.Context) error {
		r, err := s.GetResource(ctx, id)
		if err != nil {
			return err
		}
		db := s.conn(ctx)
		if err := db.Model(r).Association("Subjects").Clear(); err != nil {
			return err
		}
		if err := db.Model(r).Association("GeoLocations").Clear(); err != nil {
			return err
		}
		for _, m := range []any{
			&entity.Title{}, &entity.Description{}, &entity.Date{},
			&entity.Creator{}, &entity.Contributor{},
			&entity.AlternateIdentifier{}, &entity.RelatedIdentifier{},
			&entity.Rights{}, &entity.FundingReference{}, &entity.RelatedItem{},
		} {
			if err := db.Where("resource_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return db.Delete(&entity.Resource{}, id).Error
	})
}
