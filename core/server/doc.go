// Package server holds the configuration for the ops HTTP server.
//
// The server exposes the synchronization and cache endpoints over Fiber.
// Routes are registered by the taxrates feature; this package only carries
// the listening settings and API key used by the auth middleware.
package server
