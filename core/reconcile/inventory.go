package reconcile

import "tag-reconciler/core/remote"

// Inventory maps service tags to host ids.
// A tag reported more than once keeps the last host id seen; its position in
// Records stays where it was first seen.
type Inventory struct {
	ids        map[string]remote.HostID
	order      []string
	duplicates int
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{ids: make(map[string]remote.HostID)}
}

// Put records tag -> id. It returns the previous id and true when the tag was
// already present.
func (inv *Inventory) Put(tag string, id remote.HostID) (remote.HostID, bool) {
	prev, exists := inv.ids[tag]
	if exists {
		inv.duplicates++
	} else {
		inv.order = append(inv.order, tag)
	}
	inv.ids[tag] = id
	return prev, exists
}

// Lookup returns the host id for an exact, case-sensitive tag.
func (inv *Inventory) Lookup(tag string) (remote.HostID, bool) {
	if inv == nil {
		return 0, false
	}
	id, ok := inv.ids[tag]
	return id, ok
}

// Len returns the number of distinct tags.
func (inv *Inventory) Len() int {
	if inv == nil {
		return 0
	}
	return len(inv.order)
}

// Duplicates returns how many Put calls hit an existing tag.
func (inv *Inventory) Duplicates() int {
	if inv == nil {
		return 0
	}
	return inv.duplicates
}

// Records returns one record per tag in first-seen order with its current id.
func (inv *Inventory) Records() []remote.Record {
	if inv == nil {
		return nil
	}
	records := make([]remote.Record, 0, len(inv.order))
	for _, tag := range inv.order {
		records = append(records, remote.Record{HostID: inv.ids[tag], ServiceTag: tag})
	}
	return records
}
