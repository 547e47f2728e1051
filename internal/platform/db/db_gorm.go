// Package db opens the gorm connection and owns the relational schema
// shared by the symbol and price features.
package db

import (
	"fmt"
	"strings"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config holds the connection parameters for one of the supported drivers.
type Config struct {
	Driver   string
	Path     string // sqlite file, ":memory:" for an in-process database
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Opener opens a gorm handle for a dialector. Tests swap it out.
type Opener func(dialector gorm.Dialector, opts ...gorm.Option) (*gorm.DB, error)

// BuildDSN returns the driver specific connection string.
func BuildDSN(cfg Config) (string, error) {
	switch strings.ToLower(cfg.Driver) {
	case DriverSQLite, "":
		path := cfg.Path
		if path == "" {
			path = "securities_master.db"
		}
		return path + "?_foreign_keys=on", nil
	case DriverMySQL:
		port := cfg.Port
		if port == "" {
			port = "3306"
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			cfg.User, cfg.Password, cfg.Host, port, cfg.Name), nil
	case DriverPostgres:
		port := cfg.Port
		if port == "" {
			port = "5432"
		}
		sslmode := cfg.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.Host, port, cfg.User, cfg.Password, cfg.Name, sslmode), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Dialector wraps the DSN in the matching gorm driver.
func Dialector(cfg Config) (gorm.Dialector, error) {
	dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(cfg.Driver) {
	case DriverMySQL:
		return gmysql.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return sqlite.Open(dsn), nil
	}
}

// Connect opens the database once for the lifetime of a job. Failures are
// returned as is; nothing is retried.
func Connect(cfg Config, level gormlogger.LogLevel) (*gorm.DB, error) {
	return connect(cfg, level, gorm.Open)
}

func connect(cfg Config, level gormlogger.LogLevel, open Opener) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	gdb, err := open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialector.Name(), err)
	}

	if dialector.Name() == DriverSQLite {
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		// one writer; also keeps ":memory:" databases on a single connection
		sqlDB.SetMaxOpenConns(1)
	}
	return gdb, nil
}

// Close releases the pool behind a gorm handle.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
