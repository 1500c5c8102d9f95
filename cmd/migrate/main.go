package main

import (
	"flag"
	"log"

	"github.com/pawnbook/backend/internal/domain/identity"
	"github.com/pawnbook/backend/internal/infrastructure/config"
	"github.com/pawnbook/backend/internal/infrastructure/persistence"
	"github.com/pawnbook/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

func main() {
	seedAdmin := flag.Bool("seed-admin", false, "create the default owner user if no users exist")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("running migrations")
	if err := db.DB.AutoMigrate(
		&models.CustomerModel{},
		&models.AccountModel{},
		&models.EntryModel{},
		&models.TradeModel{},
		&models.ExpenseModel{},
		&models.ReminderModel{},
		&models.UserModel{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("migrations complete")

	if *seedAdmin {
		if err := seedOwner(db.DB); err != nil {
			log.Fatalf("seeding owner failed: %v", err)
		}
	}
}

// seedOwner creates an initial OWNER login so a fresh install is usable.
// The password must be changed on first login.
func seedOwner(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("users already exist, skipping owner seed")
		return nil
	}

	owner, err := identity.NewUser("owner", "changeme123", "Shop Owner", identity.RoleOwner)
	if err != nil {
		return err
	}
	if err := db.Create(models.UserModelFromDomain(owner)).Error; err != nil {
		return err
	}
	log.Println("seeded default owner user")
	return nil
}
