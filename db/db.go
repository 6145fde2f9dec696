package db

import (
	"fmt"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tokennove.com/types"
)

var DB *gorm.DB

// Init opens the store connection and runs the idempotent schema migration.
// Postgres is the primary backend; with no DB_HOST set the service falls back
// to a local sqlite file so it can run without infrastructure.
func Init() {
	var (
		database *gorm.DB
		err      error
	)

	host := os.Getenv("DB_HOST")
	if host == "" {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "portfolio.db"
		}
		log.Warnf("DB_HOST not set, using sqlite database at %s", path)
		database, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	} else {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host,
			os.Getenv("DB_PORT"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"))
		database, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		panic("Failed to connect to database: " + err.Error())
	}

	if err := database.AutoMigrate(&types.Position{}, &types.EarningEntry{}); err != nil {
		panic("Failed to migrate database: " + err.Error())
	}

	DB = database
}
