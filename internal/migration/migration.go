package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	authdomain "github.com/rahvarz/bazar/internal/auth/domain"
	categorydomain "github.com/rahvarz/bazar/internal/category/domain"
	contactdomain "github.com/rahvarz/bazar/internal/contact/domain"
	expressiondomain "github.com/rahvarz/bazar/internal/expression/domain"
	imagedomain "github.com/rahvarz/bazar/internal/image/domain"
	offerdomain "github.com/rahvarz/bazar/internal/offer/domain"
	productdomain "github.com/rahvarz/bazar/internal/product/domain"
	reviewdomain "github.com/rahvarz/bazar/internal/review/domain"
	warehousedomain "github.com/rahvarz/bazar/internal/warehouse/domain"
	"gorm.io/gorm"
)

// RunMigrations applies the versioned SQL schema. Postgres only; other
// dialects go through AutoMigrate.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// Models lists every persisted type, in dependency order.
func Models() []any {
	return []any{
		&authdomain.User{},
		&authdomain.Session{},
		&authdomain.OneTimeCode{},
		&categorydomain.Category{},
		&productdomain.Product{},
		&warehousedomain.Warehouse{},
		&offerdomain.Offer{},
		&imagedomain.Image{},
		&expressiondomain.Expression{},
		&reviewdomain.Review{},
		&reviewdomain.Comment{},
		&contactdomain.ContactType{},
		&contactdomain.Contact{},
	}
}

// AutoMigrate builds the schema from the models, used for sqlite and
// mysql deployments and by package tests.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(Models()...)
}
