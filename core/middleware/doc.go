// Package middleware contains HTTP middleware for the mock API's Fiber application.
//
// # Components
//
//   - auth: checks the Basic authorization header against the configured client
//     credentials, the same value the remote client sends.
//   - rayid: assigns every request a Ray ID, stores it in the context locals for
//     logger.WithRayID and echoes it in the X-Ray-ID response header.
//
// Register rayid first so that rejected requests are traced too.
package middleware
