package reconcile

import "tag-reconciler/core/remote"

// Reconcile partitions serials against the inventory. Lookups are exact and
// case-sensitive; empty serials never match. The result depends only on its
// inputs, so repeated calls give identical partitions.
func Reconcile(serials []string, inv *Inventory) Result {
	result := Result{
		Matched:   make([]remote.Record, 0),
		Unmatched: make([]string, 0),
	}

	for _, serial := range serials {
		if serial == "" {
			result.Unmatched = append(result.Unmatched, serial)
			continue
		}
		if id, ok := inv.Lookup(serial); ok {
			result.Matched = append(result.Matched, remote.Record{HostID: id, ServiceTag: serial})
			continue
		}
		result.Unmatched = append(result.Unmatched, serial)
	}

	return result
}
