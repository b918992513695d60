package importer

import (
	"context"
	"strings"

	"github.com/lehigh-university-libraries/datacite-store/document"
	"github.com/lehigh-university-libraries/datacite-store/entity"
	"github.com/lehigh-university-libraries/datacite-store/store"
	"github.com/lehigh-university-libraries/datacite-store/vocab"
)

// importName resolves a name block against the shared Name table. The
// resolution order is: any supplied name identifier, then the exact literal
// name, then create. Given and family names always overwrite, orphan name
// identifiers get attached, and the affiliation set is replaced wholesale.
// Returns nil when the block carries nothing usable.
func (im *Importer) importName(ctx context.Context, node document.Name) (*entity.Name, error) {
	// collect usable name identifiers, existing or not yet attached
	var nids []*entity.NameIdentifier
	for _, nid := range node.NameIdentifiers {
		if nid.NameIdentifier == "" || !im.Config.ValidNameIdentifierScheme(nid.NameIdentifierScheme) {
			continue
		}
		existing, err := im.Store.FindNameIdentifier(ctx, nid.NameIdentifier, nid.NameIdentifierScheme)
		if err == nil {
			nids = append(nids, existing)
			continue
		}
		if err != store.ErrNotFound {
			return nil, err
		}
		nids = append(nids, &entity.NameIdentifier{
			Identifier: nid.NameIdentifier,
			Scheme:     nid.NameIdentifierScheme,
		})
	}

	// resolve affiliations recursively as organizational names
	var affiliations []*entity.Name
	for _, aff := range node.Affiliations {
		usable := aff.Affiliation != "" ||
			(aff.AffiliationIdentifier != "" && im.Config.ValidNameIdentifierScheme(aff.AffiliationIdentifierScheme))
		if !usable {
			continue
		}
		resolved, err := im.importName(ctx, document.Name{
			Name:     aff.Affiliation,
			NameType: vocab.AffiliationNameType,
			NameIdentifiers: []document.NameIdentifier{{
				NameIdentifier:       aff.AffiliationIdentifier,
				NameIdentifierScheme: aff.AffiliationIdentifierScheme,
			}},
		})
		if err != nil {
			return nil, err
		}
		if resolved != nil {
			affiliations = append(affiliations, resolved)
		}
	}

	name, err := im.resolveName(ctx, node, nids)
	if err != nil || name == nil {
		return nil, err
	}

	name.GivenName = node.GivenName
	name.FamilyName = node.FamilyName
	if err := im.Store.SaveName(ctx, name); err != nil {
		return nil, err
	}

	for _, nid := range nids {
		if nid.NameID == 0 {
			if err := im.Store.AttachNameIdentifier(ctx, name.ID, nid); err != nil {
				return nil, err
			}
		}
	}

	if err := im.Store.ReplaceAffiliations(ctx, name, affiliations); err != nil {
		return nil, err
	}
	return name, nil
}

// resolveName finds the Name by identifier, then by literal name, and
// finally creates one. Returns nil when neither a usable name string nor a
// usable identifier was supplied.
func (im *Importer) resolveName(ctx context.Context, node document.Name, nids []*entity.NameIdentifier) (*entity.Name, error) {
	for _, nid := range nids {
		if nid.NameID == 0 {
			continue
		}
		name, err := im.Store.FindName(ctx, nid.NameID)
		if err == nil {
			im.Logger.Info("found name by identifier", "name", name.Name, "identifier", nid.Identifier)
			return name, nil
		}
		if err != store.ErrNotFound {
			return nil, err
		}
	}

	literal := node.Name
	if literal == "" {
		literal = strings.TrimSpace(node.GivenName + " " + node.FamilyName)
	}
	if literal == "" {
		return nil, nil
	}

	name, err := im.Store.FindNameByName(ctx, literal)
	if err == nil {
		im.Logger.Info("found name by name", "name", name.Name)
		return name, nil
	}
	if err != store.ErrNotFound {
		return nil, err
	}

	nameType := node.NameType
	if nameType == "" {
		nameType = vocab.DefaultNameType
	}
	if !im.Config.ValidNameType(nameType) {
		return nil, nil
	}
	im.Logger.Info("creating name", "name", literal, "nameType", nameType)
	return &entity.Name{Name: literal, NameType: nameType}, nil
}
