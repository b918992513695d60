package store

import (
	"context"

	"github.com/lehigh-university-libraries/datacite-store/entity"
)

// Typed upserts for the owned child rows. Each one is keyed on the natural
// key of its table: (resource, type) for the typed rows, (resource, name or
// identifier) for the join rows. Matching rows are updated in place so
// repeated imports converge instead of piling up duplicates.

// UpsertTitle stores a title keyed by (resource, title type).
func (s *Store) UpsertTitle(ctx context.Context, resourceID uint, titleType, title string) error {
	db := s.conn(ctx)
	var row entity.Title
	err := db.Where("resource_id = ? AND title_type = ?", resourceID, titleType).First(&row).Error
	if err != nil && !notFound(err) {
		return err
	}
	row.ResourceID = resourceID
	row.TitleType = titleType
	row.Title = title
	return db.Save(&row).Error
}

// UpsertDescription stores a description keyed by (resource, description
// type).
func (s *Store) UpsertDescription(ctx context.Context, resourceID uint, descriptionType, text string) error {
	db := s.conn(ctx)
	var row entity.Description
	err := db.Where("resource_id = ? AND description_type = ?", resourceID, descriptionType).First(&row).Error
	if err != nil && !notFound(err) {
		return err
	}
	row.ResourceID = resourceID
	row.DescriptionType = descriptionType
	row.Description = text
	return db.Save(&row).Error
}

// UpsertDate stores a date keyed by (resource, date type).
func (s *Store) UpsertDate(ctx context.Context, resourceID uint, dateType, date, information string) error {
	db := s.conn(ctx)
	var row entity.Date
	err := db.Where("resource_id = ? AND date_type = ?", resourceID, dateType).First(&row).Error
	if err != nil && !notFound(err) {
		return err
	}
	row.ResourceID = resourceID
	row.DateType = dateType
	row.Date = date
	row.DateInformation = information
	return db.Save(&row).Error
}

// UpsertCreator stores a creator join row keyed by (resource, name).
func (s *Store) UpsertCreator(ctx context.Context, resourceID, nameID uint, position int) error {
	db := s.conn(ctx)
	var row entity.Creator
	err := db.Where("resource_id = ? AND name_id = ?", resourceID, nameID).First(&row).Error
	if err != nil && !notFound(err) {
		return err
	}
	row.ResourceID = resourceID
	row.NameID = nameID
	row.Position = position
	return db.Save(&row).Error
}

// UpsertContributor stores a contributor join row keyed by (resource, name).
func (s *Store) UpsertContributor(ctx context.Context, resourceID, nameID uint, contributorType string, position int) error {
	db := s.conn(ctx)
	var row entity.Contributor
	err := db.Where("resource_id = ? AND name_id = ?", resourceID, nameID).First(&row).Error
	if err != nil && !notFound(err) {
		return err
	}
	row.ResourceID = resourceID
	row.NameID = nameID
	row.ContributorType = contributorType
	row.Position = position
	return db.Save(&row).Error
}

// UpsertAlternateIdentifier stores an alternate identifier join row keyed by
// (resource, identifier).
func (s *Store) UpsertAlternateIdentifier(ctx context.Context, resourceID, identifierID uint, position int) error {
	db := s.conn(ctx)
	var row entity.AlternateIdentifier
	err := db.Where("resource_id = ? AND identifier_id = ?", resourceID, identifierID).First(&row).Error
	if err != nil && !notFound(err) {
		return err
	}
	row.ResourceID = resourceID
	row.IdentifierID = identifierID
	row.Position = position
	return db.Save(&row).Error
}

// UpsertRelatedIdentifier stores a related identifier join row keyed by
// (resource, identifier).
func (s *Store) UpsertRelatedIdentifier(ctx context.Context, resourceID, identifierID uint, relationType, resourceTypeGeneral string, position int) error {
	db := s.conn(ctx)
	var row entity.RelatedIdentifier
	err := db.Where("resource_id = ? AND identifier_id = ?", resourceID, identifierID).First(&row).Error
	if err != nil && !notFound(err) {
		return err
	}
	row.ResourceID = resourceID
	row.IdentifierID = identifierID
	row.RelationType = relationType
	row.ResourceTypeGeneral = resourceTypeGeneral
	row.Position = position
	return db.Save(&row).Error
}

// UpsertRights stores a rights row keyed by (resource, rights identifier).
func (s *Store) UpsertRights(ctx context.Context, resourceID uint, rightsIdentifier string) error {
	db := s.conn(ctx)
	var row entity.Rights
	err := db.Where("resource_id = ? AND rights_identifier = ?", resourceID, rightsIdentifier).First(&row).Error
	if err == nil {
		return nil
	}
	if !notFound(err) {
		return err
	}
	return db.Create(&entity.Rights{ResourceID: resourceID, RightsIdentifier: rightsIdentifier}).Error
}

// UpsertFundingReference stores a funding reference keyed by (resource,
// funder).
func (s *Store) UpsertFundingReference(ctx context.Context, resourceID, funderID uint, awardNumber, awardURI, awardTitle string) error {
	db := s.conn(ctx)
	var row entity.FundingReference
	err := db.Where("resource_id = ? AND funder_id = ?", resourceID, funderID).First(&row).Error
	if err != nil && !notFound(err) {
		return err
	}
	row.ResourceID = resourceID
	row.FunderID = funderID
	row.AwardNumber = awardNumber
	row.AwardURI = awardURI
	row.AwardTitle = awardTitle
	return db.Save(&row).Error
}

// UpsertRelatedItem stores a related item link keyed by (resource, item).
func (s *Store) UpsertRelatedItem(ctx context.Context, item *entity.RelatedItem) error {
	db := s.conn(ctx)
	var row entity.RelatedItem
	err := db.Where("resource_id = ? AND item_id = ?", item.ResourceID, item.ItemID).First(&row).Error
	if err != nil && !notFound(err) {
		return err
	}
	if err == nil {
		item.ID = row.ID
	}
	item.Item = nil
	return db.Save(item).Error
}

// AddSubject links a shared subject to a resource.
func (s *Store) AddSubject(ctx context.Context, resource *entity.Resource, subj *entity.Subject) error {
	return s.conn(ctx).Model(resource).Association("Subjects").Append(subj)
}

// AddGeoLocation links a shared geolocation to a resource.
func (s *Store) AddGeoLocation(ctx context.Context, resource *entity.Resource, geo *entity.GeoLocation) error {
	return s.conn(ctx).Model(resource).Association("GeoLocations").Append(geo)
}
