package migration

import (
	"github.com/rahvarz/bazar/internal/config"
	"github.com/rahvarz/bazar/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else if err := AutoMigrate(conn); err != nil {
			return err
		}

		return seed.EnsureContactTypes(conn)
	}),
)
