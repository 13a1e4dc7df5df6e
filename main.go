package main

import (
	"log"

	"github.com/pantry-guardian/backend/cmd/config"
	migration "github.com/pantry-guardian/backend/cmd/database/migrate"
	"github.com/pantry-guardian/backend/internal/utils"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("unable to connect to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("unable to migrate database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("unable to build application: %v", err)
	}

	if err := app.Listen(":" + utils.GetConfig("APP_PORT")); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
