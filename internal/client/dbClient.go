package client

import (
	"log"
	"strings"
	"time"

	"restaurant-orders/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDatabase opens the store handle once at process start. A sqlite DSN
// (file path or :memory:) is used for local development, anything else is
// treated as a mysql DSN.
func InitDatabase(databaseURL string) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	if databaseURL == "" || strings.HasSuffix(databaseURL, ".db") || databaseURL == ":memory:" {
		dsn := databaseURL
		if dsn == "" {
			dsn = "restaurant.db"
		}
		db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	} else {
		db, err = gorm.Open(mysql.Open(databaseURL), &gorm.Config{TranslateError: true})
	}
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.User{},
		&model.MenuItem{},
		&model.Review{},
		&model.CartItem{},
		&model.Payment{},
		&model.PaymentItem{},
	); err != nil {
		log.Fatal(err)
	}

	return db
}
