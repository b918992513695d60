// Package store wraps the relational persistence of metadata records behind
// a small repository API. It speaks SQLite for local use and Postgres for
// shared deployments, selected by the DSN.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lehigh-university-libraries/datacite-store/entity"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("not found")

// Store is the repository handle. All methods honor a transaction carried in
// the context, see InTransaction.
type Store struct {
	db *gorm.DB

	// DOIBaseURL prefixes bare DOI identifiers in the citation mirrored
	// onto identifier rows. Open sets the public resolver; override it
	// when the vocabulary config names a different one.
	DOIBaseURL string
}

// Open connects to the database named by dsn and migrates the schema.
// DSNs starting with postgres:// or postgresql:// (or containing host=)
// select the Postgres driver, everything else is treated as a SQLite path.
func Open(dsn string) (*Store, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.AutoMigrate(entity.AllModels()...); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return &Store{db: db, DOIBaseURL: "https://doi.org/"}, nil
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
