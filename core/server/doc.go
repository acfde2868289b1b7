// Package server holds the configuration of the mock device-management API.
//
// The mock-server command serves a fixture-backed fake of the remote service so
// the reconcile command can be exercised without access to the real one. This
// package only defines its settings: port, accepted credentials, report page
// size and fixture path.
package server
