// Package importer maps DataCite JSON documents onto the relational entity
// graph. The import is deliberately permissive: sub-records with unknown or
// invalid enum values are skipped with a log line, never aborting the rest
// of the document. The one exception is geolocation shape data, which is
// rejected by the persistence layer; those errors are collected and
// reported after the remaining blocks have imported.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/datacite-store/document"
	"github.com/lehigh-university-libraries/datacite-store/entity"
	"github.com/lehigh-university-libraries/datacite-store/store"
	"github.com/lehigh-university-libraries/datacite-store/vocab"
)

// Importer drives document imports against a store.
type Importer struct {
	Store  *store.Store
	Config *vocab.Config
	Logger *slog.Logger
}

// New returns an importer using the given store and vocabulary config.
func New(s *store.Store, cfg *vocab.Config, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{Store: s, Config: cfg, Logger: logger}
}

// ImportResource imports doc into target, or into a fresh record when
// target is nil, inside a single transaction. The returned error joins any
// geolocation shape rejections; the rest of the document has still been
// imported when it is non-nil.
func (im *Importer) ImportResource(ctx context.Context, target *entity.Resource, doc *document.Resource) (*entity.Resource, error) {
	var shapeErrs []error
	err := im.Store.InTransaction(ctx, func(ctx context.Context) error {
		var err error
		target, shapeErrs, err = im.importResource(ctx, target, doc, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return target, errors.Join(shapeErrs...)
}

// importResource is the transactional body. reduced marks the recursive
// related-item path, which imports only a subset of the blocks.
func (im *Importer) importResource(ctx context.Context, target *entity.Resource, doc *document.Resource, reduced bool) (*entity.Resource, []error, error) {
	if target == nil {
		target = entity.NewResource()
		target.Publisher = im.Config.DefaultPublisher
	}

	if len(doc.Identifiers) == 1 {
		id, err := im.importIdentifier(ctx, doc.Identifiers[0].Identifier, doc.Identifiers[0].IdentifierType, "")
		if err != nil {
			return nil, nil, err
		}
		if id != nil {
			target.IdentifierID = &id.ID
		}
	}

	if doc.Publisher != "" {
		target.Publisher = doc.Publisher
	}
	if doc.PublicationYear != nil {
		year := int(*doc.PublicationYear)
		target.PublicationYear = &year
	}
	if doc.Types != nil {
		if doc.Types.ResourceType != "" {
			target.ResourceType = doc.Types.ResourceType
		}
		if im.Config.ValidResourceTypeGeneral(doc.Types.ResourceTypeGeneral) {
			target.ResourceTypeGeneral = doc.Types.ResourceTypeGeneral
		}
	}
	if doc.Language != "" && im.Config.ValidLanguage(doc.Language) {
		target.Language = doc.Language
	}
	if doc.Size != "" {
		target.Size = doc.Size
	}
	if doc.Format != "" {
		target.Format = doc.Format
	}
	if doc.Version != "" {
		target.Version = doc.Version
	}

	// saved up front so the relation rows have a resource to point at
	if err := im.Store.SaveResource(ctx, target); err != nil {
		return nil, nil, err
	}

	for _, node := range doc.Titles {
		if node.Title == "" || !im.Config.ValidTitleType(node.TitleType) {
			im.Logger.Warn("skipping title", "title", node.Title, "titleType", node.TitleType)
			continue
		}
		if err := im.Store.UpsertTitle(ctx, target.ID, node.TitleType, node.Title); err != nil {
			return nil, nil, err
		}
		im.Logger.Info("imported title", "title", node.Title)
	}

	for i, node := range doc.Creators {
		name, err := im.importName(ctx, node)
		if err != nil {
			return nil, nil, err
		}
		if name == nil {
			im.Logger.Warn("skipping creator", "name", node.Name)
			continue
		}
		if err := im.Store.UpsertCreator(ctx, target.ID, name.ID, i); err != nil {
			return nil, nil, err
		}
		im.Logger.Info("imported creator", "name", name.Name)
	}

	if !reduced {
		for _, node := range doc.Descriptions {
			if !im.Config.ValidDescriptionType(node.DescriptionType) {
				im.Logger.Warn("skipping description", "descriptionType", node.DescriptionType)
				continue
			}
			text := entity.UnescapeDescription(node.Description)
			if err := im.Store.UpsertDescription(ctx, target.ID, node.DescriptionType, text); err != nil {
				return nil, nil, err
			}
			im.Logger.Info("imported description", "descriptionType", node.DescriptionType)
		}
	}

	for i, node := range doc.Contributors {
		if !im.Config.ValidContributorType(node.ContributorType) {
			im.Logger.Warn("skipping contributor", "name", node.Name, "contributorType", node.ContributorType)
			continue
		}
		name, err := im.importName(ctx, node)
		if err != nil {
			return nil, nil, err
		}
		if name == nil {
			im.Logger.Warn("skipping contributor", "name", node.Name)
			continue
		}
		if err := im.Store.UpsertContributor(ctx, target.ID, name.ID, node.ContributorType, i); err != nil {
			return nil, nil, err
		}
		im.Logger.Info("imported contributor", "name", name.Name)
	}

	if !reduced {
		for _, node := range doc.Subjects {
			if node.Subject == "" && node.ValueURI == "" {
				continue
			}
			subj, err := im.Store.FindOrCreateSubject(ctx, &entity.Subject{
				Subject:            node.Subject,
				SubjectScheme:      node.SubjectScheme,
				SchemeURI:          node.SchemeURI,
				ValueURI:           node.ValueURI,
				ClassificationCode: node.ClassificationCode,
			})
			if err != nil {
				return nil, nil, err
			}
			if err := im.Store.AddSubject(ctx, target, subj); err != nil {
				return nil, nil, err
			}
			im.Logger.Info("imported subject", "subject", subj.Subject)
		}

		for _, node := range doc.Dates {
			date, err := entity.ParseDate(node.Date)
			if err != nil || !im.Config.ValidDateType(node.DateType) {
				im.Logger.Warn("skipping date", "date", node.Date, "dateType", node.DateType)
				continue
			}
			if err := im.Store.UpsertDate(ctx, target.ID, node.DateType, date, node.DateInformation); err != nil {
				return nil, nil, err
			}
			im.Logger.Info("imported date", "dateType", node.DateType)
		}

		for i, node := range doc.AlternateIdentifiers {
			id, err := im.importIdentifier(ctx, node.AlternateIdentifier, node.AlternateIdentifierType, "")
			if err != nil {
				return nil, nil, err
			}
			if id == nil {
				im.Logger.Warn("skipping alternate identifier", "identifier", node.AlternateIdentifier)
				continue
			}
			if err := im.Store.UpsertAlternateIdentifier(ctx, target.ID, id.ID, i); err != nil {
				return nil, nil, err
			}
			im.Logger.Info("imported alternate identifier", "identifier", id.Identifier)
		}

		for i, node := range doc.RelatedIdentifiers {
			if !im.Config.ValidRelationType(node.RelationType) {
				im.Logger.Warn("skipping related identifier", "relationType", node.RelationType)
				continue
			}
			id, err := im.importIdentifier(ctx, node.RelatedIdentifier, node.RelatedIdentifierType, node.Citation)
			if err != nil {
				return nil, nil, err
			}
			if id == nil {
				im.Logger.Warn("skipping related identifier", "identifier", node.RelatedIdentifier)
				continue
			}
			resourceTypeGeneral := node.ResourceTypeGeneral
			if !im.Config.ValidResourceTypeGeneral(resourceTypeGeneral) {
				resourceTypeGeneral = vocab.DefaultResourceTypeGeneral
			}
			if err := im.Store.UpsertRelatedIdentifier(ctx, target.ID, id.ID, node.RelationType, resourceTypeGeneral, i); err != nil {
				return nil, nil, err
			}
			im.Logger.Info("imported related identifier", "identifier", id.Identifier)
		}

		for _, node := range doc.RightsList {
			rightsIdentifier := node.RightsIdentifier
			if rightsIdentifier == "" {
				rightsIdentifier = im.Config.RightsIdentifierByURI(node.RightsURI)
			}
			if !im.Config.ValidRightsIdentifier(rightsIdentifier) {
				im.Logger.Warn("skipping rights", "rightsIdentifier", node.RightsIdentifier, "rightsURI", node.RightsURI)
				continue
			}
			if err := im.Store.UpsertRights(ctx, target.ID, rightsIdentifier); err != nil {
				return nil, nil, err
			}
			im.Logger.Info("imported rights", "rightsIdentifier", rightsIdentifier)
		}
	}

	var shapeErrs []error
	if !reduced {
		for _, node := range doc.GeoLocations {
			errs, err := im.importGeoLocation(ctx, target, node)
			if err != nil {
				return nil, nil, err
			}
			shapeErrs = append(shapeErrs, errs...)
		}

		for _, node := range doc.FundingReferences {
			funder, err := im.importName(ctx, document.Name{
				Name:     node.FunderName,
				NameType: vocab.AffiliationNameType,
				NameIdentifiers: []document.NameIdentifier{{
					NameIdentifier:       node.FunderIdentifier,
					NameIdentifierScheme: node.FunderIdentifierType,
				}},
			})
			if err != nil {
				return nil, nil, err
			}
			if funder == nil {
				im.Logger.Warn("skipping funding reference", "funderName", node.FunderName)
				continue
			}
			if err := im.Store.UpsertFundingReference(ctx, target.ID, funder.ID, node.AwardNumber, node.AwardURI, node.AwardTitle); err != nil {
				return nil, nil, err
			}
			im.Logger.Info("imported funding reference", "funderName", funder.Name)
		}

		for _, node := range doc.RelatedItems {
			if err := im.importRelatedItem(ctx, target, node); err != nil {
				return nil, nil, err
			}
		}
	}

	// saved again so the mirrored citation sees the imported children
	if err := im.Store.SaveResource(ctx, target); err != nil {
		return nil, nil, err
	}
	return target, shapeErrs, nil
}

// importIdentifier validates the type and upserts the (value, type) pair.
// The citation is only written on the creation branch; existing rows keep
// theirs. DOI values carrying the configured base URL are stored stripped.
// Returns nil without error when the node is unusable.
func (im *Importer) importIdentifier(ctx context.Context, value, identifierType, cit string) (*entity.Identifier, error) {
	if value == "" || !im.Config.ValidIdentifierType(identifierType) {
		return nil, nil
	}
	if identifierType == "DOI" {
		value = strings.TrimPrefix(value, im.Config.DOIBaseURL)
	}

	id, err := im.Store.FindIdentifier(ctx, value, identifierType)
	if err == nil {
		return id, nil
	}
	if err != store.ErrNotFound {
		return nil, err
	}

	id = &entity.Identifier{Identifier: value, IdentifierType: identifierType, Citation: cit}
	if err := im.Store.SaveIdentifier(ctx, id); err != nil {
		return nil, err
	}
	im.Logger.Info("created identifier", "identifier", value, "identifierType", identifierType)
	return id, nil
}

// importGeoLocation finds or creates the place bucket and writes its
// shapes. A rejected shape aborts the rest of this geo-location's shapes;
// the rejection comes back in the first return value so the caller can
// continue with its siblings.
func (im *Importer) importGeoLocation(ctx context.Context, target *entity.Resource, node document.GeoLocation) ([]error, error) {
	geo, err := im.Store.FindOrCreateGeoLocation(ctx, node.GeoLocationPlace)
	if err != nil {
		return nil, err
	}
	if err := im.Store.AddGeoLocation(ctx, target, geo); err != nil {
		return nil, err
	}

	var shapeErrs []error
	fail := func(err error) error {
		var verr *entity.ValidationError
		if errors.As(err, &verr) {
			im.Logger.Warn("rejected geolocation shape", "place", node.GeoLocationPlace, "error", verr)
			shapeErrs = append(shapeErrs, fmt.Errorf("geolocation %q: %w", node.GeoLocationPlace, verr))
			return nil
		}
		return err
	}

	if node.GeoLocationPoint != nil {
		err := im.Store.SavePoint(ctx, geo.ID, &entity.GeoLocationPoint{
			Longitude: node.GeoLocationPoint.PointLongitude,
			Latitude:  node.GeoLocationPoint.PointLatitude,
		})
		if err != nil {
			if err := fail(err); err != nil {
				return nil, err
			}
			return shapeErrs, nil
		}
	}
	if node.GeoLocationBox != nil {
		err := im.Store.SaveBox(ctx, geo.ID, &entity.GeoLocationBox{
			WestLongitude: node.GeoLocationBox.WestBoundLongitude,
			EastLongitude: node.GeoLocationBox.EastBoundLongitude,
			SouthLatitude: node.GeoLocationBox.SouthBoundLatitude,
			NorthLatitude: node.GeoLocationBox.NorthBoundLatitude,
		})
		if err != nil {
			if err := fail(err); err != nil {
				return nil, err
			}
			return shapeErrs, nil
		}
	}
	for _, polygon := range node.GeoLocationPolygons {
		row := &entity.GeoLocationPolygon{}
		for _, pt := range polygon.PolygonPoints {
			row.Points = append(row.Points, [2]float64{pt.PointLongitude, pt.PointLatitude})
		}
		if polygon.InPolygonPoint != nil {
			lon, lat := polygon.InPolygonPoint.PointLongitude, polygon.InPolygonPoint.PointLatitude
			row.InPointLongitude = &lon
			row.InPointLatitude = &lat
		}
		if err := im.Store.AddPolygon(ctx, geo.ID, row); err != nil {
			if err := fail(err); err != nil {
				return nil, err
			}
			return shapeErrs, nil
		}
	}
	return shapeErrs, nil
}

// importRelatedItem resolves the nested item as a full recursive sub-import
// with a reduced field set, then upserts the join row.
func (im *Importer) importRelatedItem(ctx context.Context, target *entity.Resource, node document.RelatedItem) error {
	var item *entity.Resource

	// an existing record with the item's identifier becomes the item
	if node.RelatedItemIdentifier != "" && im.Config.ValidIdentifierType(node.RelatedItemIdentifierType) {
		value := node.RelatedItemIdentifier
		if node.RelatedItemIdentifierType == "DOI" {
			value = strings.TrimPrefix(value, im.Config.DOIBaseURL)
		}
		id, err := im.Store.FindIdentifier(ctx, value, node.RelatedItemIdentifierType)
		if err == nil {
			item, err = im.Store.FindResourceByIdentifier(ctx, id.ID)
			if err != nil && err != store.ErrNotFound {
				return err
			}
		} else if err != store.ErrNotFound {
			return err
		}
	}

	sub := &document.Resource{
		Creators:     node.Creators,
		Titles:       node.Titles,
		Publisher:    node.Publisher,
		Contributors: node.Contributors,
	}
	if node.RelatedItemIdentifier != "" {
		sub.Identifiers = []document.Identifier{{
			Identifier:     node.RelatedItemIdentifier,
			IdentifierType: node.RelatedItemIdentifierType,
		}}
	}
	if node.RelatedItemType != "" {
		sub.Types = &document.Types{ResourceTypeGeneral: node.RelatedItemType}
	}
	if node.PublicationYear != nil {
		sub.PublicationYear = node.PublicationYear
	}

	item, _, err := im.importResource(ctx, item, sub, true)
	if err != nil {
		return err
	}

	if err := im.Store.UpsertRelatedItem(ctx, &entity.RelatedItem{
		ResourceID:   target.ID,
		ItemID:       item.ID,
		RelationType: node.RelationType,
		Volume:       node.Volume,
		Issue:        node.Issue,
		Number:       node.Number,
		NumberType:   node.NumberType,
		FirstPage:    node.FirstPage,
		LastPage:     node.LastPage,
		Edition:      node.Edition,
	}); err != nil {
		return err
	}
	im.Logger.Info("imported related item", "item", item.ID)
	return nil
}
