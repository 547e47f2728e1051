package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// CurrentSchemaVersion is stamped into schema_version by Seed.
	CurrentSchemaVersion = "3.0"
	// DefaultVendorName is the seeded price source.
	DefaultVendorName = "Yahoo Finance"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&Exchange{},
		&DataVendor{},
		&Symbol{},
		&DailyPrice{},
		&SchemaVersion{},
	}
}

// Migrate creates or updates all tables, indexes and foreign keys.
func Migrate(ctx context.Context, gdb *gorm.DB) error {
	if err := gdb.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Seed inserts the static reference rows. Existing rows are left alone so
// it can run on every start.
func Seed(ctx context.Context, gdb *gorm.DB, now time.Time) error {
	now = now.UTC()
	vendors := []DataVendor{
		{
			Name:            DefaultVendorName,
			WebsiteURL:      "https://finance.yahoo.com",
			CreatedDate:     now,
			LastUpdatedDate: now,
		},
	}
	exchanges := []Exchange{
		{Abbrev: "NYSE", Name: "New York Stock Exchange", City: "New York", Country: "USA", Currency: "USD"},
		{Abbrev: "NASDAQ", Name: "NASDAQ Stock Market", City: "New York", Country: "USA", Currency: "USD"},
		{Abbrev: "CBOE", Name: "Chicago Board Options Exchange", City: "Chicago", Country: "USA", Currency: "USD"},
	}
	for i := range exchanges {
		exchanges[i].CreatedDate = now
		exchanges[i].LastUpdatedDate = now
	}
	version := SchemaVersion{Version: CurrentSchemaVersion, AppliedDate: now}

	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&vendors).Error; err != nil {
			return fmt.Errorf("failed to seed data_vendor: %w", err)
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "abbrev"}},
			DoNothing: true,
		}).Create(&exchanges).Error; err != nil {
			return fmt.Errorf("failed to seed exchange: %w", err)
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "version"}},
			DoNothing: true,
		}).Create(&version).Error; err != nil {
			return fmt.Errorf("failed to seed schema_version: %w", err)
		}
		return nil
	})
}

// Bootstrap migrates and seeds in one call.
func Bootstrap(ctx context.Context, gdb *gorm.DB, now time.Time) error {
	if err := Migrate(ctx, gdb); err != nil {
		return err
	}
	return Seed(ctx, gdb, now)
}
