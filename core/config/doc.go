// Package config provides configuration management for taxsync.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: ops HTTP server settings (port, API key)
//   - Database: legacy order-management MySQL connection details
//   - Platform: destination e-commerce platform API settings
//   - Storage: S3/MinIO credentials for the cache snapshot bucket
//   - Sync: cache TTL, exempt tax code, server identifiers
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
