package migration

import (
	"fmt"
	"log"

	"github.com/pantry-guardian/backend/entities"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.NotificationSettings{}); err != nil {
		log.Fatalf("Error migrating notification settings database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Household{}); err != nil {
		log.Fatalf("Error migrating household database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.HouseholdParticipant{}); err != nil {
		log.Fatalf("Error migrating household participant database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Invitation{}); err != nil {
		log.Fatalf("Error migrating invitation database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Product{}); err != nil {
		log.Fatalf("Error migrating product database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.BarcodeName{}); err != nil {
		log.Fatalf("Error migrating barcode name database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ShoppingListItem{}); err != nil {
		log.Fatalf("Error migrating shopping list database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
