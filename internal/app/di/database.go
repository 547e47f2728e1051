package di

import (
	"context"
	"time"

	"securities_master/internal/platform/config"
	"securities_master/internal/platform/db"
	"securities_master/internal/platform/logger"

	"gorm.io/gorm"
)

// DBConfig maps the configuration section onto the connection parameters.
func DBConfig(c config.DatabaseConfig) db.Config {
	return db.Config{
		Driver:   c.Driver,
		Path:     c.Path,
		Host:     c.Host,
		Port:     c.Port,
		User:     c.User,
		Password: c.Password,
		Name:     c.Name,
		SSLMode:  c.SSLMode,
	}
}

// OpenDatabase connects and brings the schema and reference rows up to date.
// Both steps are idempotent, so every job can call it.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	gdb, err := db.Connect(DBConfig(cfg.Database), logger.GormLevel(cfg.Logging.Level))
	if err != nil {
		return nil, err
	}
	if err := db.Bootstrap(ctx, gdb, time.Now().UTC()); err != nil {
		_ = db.Close(gdb)
		return nil, err
	}
	return gdb, nil
}
