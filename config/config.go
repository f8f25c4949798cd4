package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

const (
	DefaultDataPath   = "HR Data.csv"
	DefaultListenAddr = ":8005"
)

type Config struct {
	DataPath       string
	ListenAddr     string
	TgToken        string
	DbDsn          string
	WarehouseTable string
	FontPath       string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig возвращает singleton экземпляр конфигурации
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("Error loading .env file: %v", err)
		}
		config = FromEnv()
	})
	return config
}

// FromEnv reads the configuration from the process environment.
func FromEnv() *Config {
	return &Config{
		DataPath:       getEnv("DATA_PATH", DefaultDataPath),
		ListenAddr:     getEnv("LISTEN_ADDR", DefaultListenAddr),
		TgToken:        os.Getenv("TG_TOKEN"),
		DbDsn:          os.Getenv("DB_DSN"),
		WarehouseTable: os.Getenv("WAREHOUSE_TABLE"),
		FontPath:       os.Getenv("FONT_PATH"),
	}
}

// UseWarehouse reports whether the dataset should be read from the database
// instead of DataPath.
func (c *Config) UseWarehouse() bool {
	return c.DbDsn != "" && c.WarehouseTable != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
