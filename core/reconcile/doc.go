// Package reconcile matches a local list of service tags against the hardware
// inventory of the remote device-management service.
//
// # Pipeline
//
// A run goes through these steps, one blocking call at a time:
//
//  1. Load the input serials (core/loader).
//  2. List the host ids known to the remote service.
//  3. Request a hardware report for those hosts; the service answers with a token.
//  4. Follow the token chain page by page (CollectInventory) into an Inventory.
//  5. Partition the input into matched and unmatched serials (Reconcile).
//  6. Write the inventory snapshot, the matched and the unmatched datasets (core/output).
//
// # Degradation
//
// No step failure aborts the run. A failed input yields no serials, a failed host
// listing yields an empty report request, and pagination that stops early (fetch
// error, page without records, repeated token, page cap) keeps what it has. Only a
// failed report request skips reconciliation, in which case an empty inventory
// snapshot is still written. Each degraded step is listed in the Report.
//
// # Inventory Semantics
//
// Service tags are compared exactly and case-sensitively. When the service reports
// the same tag for several hosts, the last one seen wins and the overwrite is
// logged. Input duplicates are kept: a serial listed twice is matched twice.
package reconcile
