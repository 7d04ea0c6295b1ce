// Package storetest opens throwaway in-memory stores for package tests that need real
// persistence semantics (unique constraints, transactions) without a database server.
package storetest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/feral-file/sei-marketplace-indexer/internal/store"
	"github.com/feral-file/sei-marketplace-indexer/internal/store/schema"
)

// OpenDB opens a private in-memory SQLite database with the full schema migrated.
// The database lives until the test finishes.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the shared in-memory database alive and serialises writers
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(schema.All()...))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// NewStore returns a store over a fresh in-memory database
func NewStore(t *testing.T) (store.Store, *gorm.DB) {
	t.Helper()
	db := OpenDB(t)
	return store.NewPGStore(db), db
}
