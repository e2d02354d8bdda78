package models

import (
	"log/slog"
	"os"

	sloggorm "github.com/imdatngo/slog-gorm/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Database struct {
	GormDB *gorm.DB
}

var DB *Database

func ConnectDatabase() {
	database, err := gorm.Open(postgres.Open(os.Getenv("DATABASE_URL")), &gorm.Config{
		Logger: sloggorm.New(),
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		panic("Failed to connect to database!")
	}

	err = database.AutoMigrate(&User{}, &Project{}, &Category{}, &Donation{}, &FileUpload{})
	if err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		panic("Failed to run database migrations!")
	}

	DB = &Database{GormDB: database}
}
