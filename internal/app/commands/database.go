package commands

import (
	"securities_master/internal/platform/db"

	"gorm.io/gorm"
)

func closeDatabase(gdb *gorm.DB) {
	if err := db.Close(gdb); err != nil {
		log.Warn("failed to close database", "error", err)
	}
}
