// Package db provides database connection functionality for the snowgate server.
package db

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultSqliteDBName is the name of the sqlite database file used when no DSN is supplied.
const DefaultSqliteDBName = "snowgate.db"

// NewDBConnection opens a connection to the target database.
// If the DSN starts with postgres:// or postgresql://, a Postgres connection is opened.
// Any other non-empty DSN is treated as a sqlite file path.
// An empty DSN falls back to a sqlite database file in the current directory.
func NewDBConnection(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		dialector = postgres.Open(dsn)
	case dsn != "":
		dialector = sqlite.Open(dsn)
	default:
		dialector = sqlite.Open(DefaultSqliteDBName)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return conn, nil
}
