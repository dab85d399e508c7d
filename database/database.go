package database

import (
	"log"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"store-service/model"
)

const sqlitePrefix = "sqlite:///"

// Open connects to the database named by url. Accepted forms are
// postgres://..., postgresql://... and sqlite:///path (sqlite:/// alone or
// sqlite:///:memory: opens a private in-memory database).
func Open(url string) (*gorm.DB, error) {
	dialector, isSQLite, err := dialectorFor(url)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect db")
	}

	if isSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get sql.DB")
		}
		// sqlite has a single writer; one connection also keeps :memory: alive
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func dialectorFor(url string) (gorm.Dialector, bool, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), false, nil
	case strings.HasPrefix(url, sqlitePrefix):
		return sqlite.Open(SQLitePath(url)), true, nil
	default:
		return nil, false, errors.Errorf("unsupported DATABASE_URL %q", url)
	}
}

// SQLitePath turns a sqlite:/// url into a driver path.
func SQLitePath(url string) string {
	path := strings.TrimPrefix(url, sqlitePrefix)
	if path == "" {
		return ":memory:"
	}
	return path
}

// Migrate creates or updates the tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Product{}, &model.Order{}); err != nil {
		return errors.Wrap(err, "failed to migrate")
	}
	log.Println("database migrated")
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.WithStack(err)
	}
	return sqlDB.Close()
}
