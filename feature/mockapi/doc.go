// Package mockapi serves a local fake of the device-management API.
//
// It implements the three endpoints the reconciler consumes, backed by a YAML
// fixture of hosts and their service tags:
//
//	GET  /hosts                               -> {"hosts":[{"id":1,"description":"..."}]}
//	POST /inventory/hardware/reports          -> {"token":"<uuid>"}
//	GET  /inventory/hardware/reports/{token}  -> {"hosts":{"0":{...}},"report":{"token":"<uuid>"|null}}
//
// Reports are cut into pages of the configured size when requested. Every page
// has its own single-use token; the last page answers with a null token.
//
// # Fixture
//
//	hosts:
//	  - id: 42
//	    description: rack-a/slot-3
//	    serviceTag: ABC123
package mockapi
