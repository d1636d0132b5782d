// Package platform provides the client for the destination e-commerce
// platform's tax API.
//
// The synchronization pipeline only reads from the platform: current tax
// rates, tax rules, tax classes, and the country/region list. Applying the
// computed create/update/delete instructions back to the platform is handled
// by a downstream step and is not part of this client.
//
// The Client interface hides the REST transport; a testify mock lives under
// platform/mocks for tests.
package platform
