package database

import (
	"fmt"

	"nightingale/config"

	"gorm.io/gorm"
)

// Open connects to the configured store and brings its schema up to date.
func Open(cfg config.DBConfig, env string) (*gorm.DB, error) {
	switch cfg.Driver {
	case "sqlite":
		return NewSQLiteConnection(cfg.SQLitePath)
	case "postgres", "":
		db, err := NewPostgresConnection(cfg, env)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := RunMigrations(db); err != nil {
				return nil, err
			}
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}
