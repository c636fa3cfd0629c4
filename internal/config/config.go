package config

import (
	"fmt"
	"log"
	"os"

	"localgov-backend/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Config holds everything read from the environment.
type Config struct {
	Port           string
	DBUser         string
	DBPassword     string
	DBHost         string
	DBPort         string
	DBName         string
	UploadDir      string
	FCMCredentials string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads settings from env (godotenv is loaded in main).
func Load() Config {
	return Config{
		Port:           getenv("PORT", "8080"),
		DBUser:         getenv("DB_USER", "root"),
		DBPassword:     getenv("DB_PASSWORD", ""),
		DBHost:         getenv("DB_HOST", "127.0.0.1"),
		DBPort:         getenv("DB_PORT", "3306"),
		DBName:         getenv("DB_NAME", "localgov"),
		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		FCMCredentials: getenv("FCM_CREDENTIALS_FILE", ""),
	}
}

// ConnectDB opens the MySQL connection and migrates the schema.
// TranslateError is on so duplicate-key errors surface as gorm.ErrDuplicatedKey
// (the booking path relies on that).
func ConnectDB(cfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Appointment{},
		&models.QueueSequence{},
		&models.Document{},
		&models.Notification{},
		&models.Payment{},
	); err != nil {
		return nil, err
	}

	log.Println("Database connected & migrated")
	return db, nil
}
