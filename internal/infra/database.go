package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/naimp074/stock1/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate to create or update all tables.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Postgres needs pgcrypto for
// gen_random_uuid() on versions before 13.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&model.Usuario{},
		&model.Producto{},
		&model.MovimientoStock{},
		&model.CuentaCorriente{},
		&model.MovimientoCuenta{},
		&model.Venta{},
		&model.NotaCredito{},
		&model.Configuracion{},
	)
}
