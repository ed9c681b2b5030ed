package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port                    string `envconfig:"PORT" default:"8080"`
	Env                     string `envconfig:"ENV" default:"development"`
	FirebaseCredentialsPath string `envconfig:"FIREBASE_CREDENTIALS_PATH" default:"./firebase_credentials.json"`
	PostgresConnStr         string `envconfig:"POSTGRES_CONN_STR"`
	MongoURI                string `envconfig:"MONGO_URI"`
	JWTSecret               string `envconfig:"JWT_SECRET" default:"supersecretjwtkey"`
}

// Load reads the configuration from the environment, honoring a .env file
// when one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process configuration: %v", err)
	}
	return &cfg
}
