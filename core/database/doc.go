// Package database handles connections to the legacy order-management database.
//
// It provides a wrapper around GORM to properly configure MySQL connections
// based on the application's configuration. The same connection serves the
// reference-data repositories (countries, states, counties, postal codes,
// warehouses), the tax export itself, and the enriched-export cache tables.
//
// # Connect
//
// Connect establishes a connection using the configured driver. MySQL is the
// production driver; SQLite (in-memory) is supported for tests.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
package database
