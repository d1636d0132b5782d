// Package source loads the export view and the geographic reference tables
// from the legacy order-management database.
package source
