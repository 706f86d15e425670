package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/yashsriram/yart/frame"
)

// Environment variable that overrides the location of the .env file.
const envFileVar = "YART_ENV_FILE"

// Load environment overrides from a .env file so they are visible to flag
// parsing. Variables that are already set are left untouched. A missing
// default .env file is not an error.
func LoadEnv() error {
	envFile := os.Getenv(envFileVar)
	if envFile == "" {
		envFile = ".env"
		if _, err := os.Stat(envFile); err != nil {
			return nil
		}
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("config: could not load %s: %w", envFile, err)
	}
	return nil
}

// Read S3 upload settings from the environment.
func s3ConfigFromEnv() frame.S3Config {
	return frame.S3Config{
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    os.Getenv("S3_REGION"),
		Bucket:    os.Getenv("S3_BUCKET"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
	}
}
