// Package remote is the client for the device-management service that owns the
// host inventory.
//
// It covers the three calls the reconciliation needs:
//
//   - GET  /hosts                                  host directory
//   - POST /inventory/hardware/reports             start a hardware report, returns a token
//   - GET  /inventory/hardware/reports/{token}     one report page plus the next token
//
// Every request carries a static Basic authorization value built once from the
// configured client id and secret.
//
// # Errors
//
// Failures are returned as *Error values carrying a Kind (transport, unauthorized,
// server, decode, missing token), the HTTP status and the response body. The client
// never retries and never decides whether a failure is fatal: that is left to the
// caller. errors.Is works against the package sentinels:
//
//	if errors.Is(err, remote.ErrUnauthorized) {
//	    // bad credentials
//	}
package remote
