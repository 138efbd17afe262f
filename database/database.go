package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hayuasamad2-code/student-fee-system/config"
	"github.com/hayuasamad2-code/student-fee-system/models"
)

// Connect opens the Postgres handle and migrates the schema. The handle is
// returned (not stored in a package global) so handlers and tests receive it
// as an explicit dependency.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Payment{},
		&models.Message{},
		&models.FailedLoginAttempt{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	// ----- ลบคอลัมน์ legacy: users.password (เราใช้เฉพาะ password_hash แล้ว) -----
	if db.Migrator().HasColumn(&models.User{}, "password") {
		if err := db.Migrator().DropColumn(&models.User{}, "password"); err != nil {
			log.Printf("[migrate] warn: drop users.password failed: %v", err)
		} else {
			log.Printf("[migrate] dropped legacy column users.password")
		}
	}

	return db, nil
}
