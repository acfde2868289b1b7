package output

import (
	"context"
	"strconv"

	"tag-reconciler/core/remote"
)

// Dataset headers. The matched dataset lists the id before the service tag,
// the inventory snapshot the other way round; consumers depend on both layouts.
var (
	InventoryHeader = []string{"serviceTag", "hostId"}
	MatchedHeader   = []string{"id", "serviceTag"}
	UnmatchedHeader = []string{"serviceTag"}
)

// WriteInventory writes the full inventory snapshot.
func WriteInventory(ctx context.Context, s Sink, name string, records []remote.Record) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.ServiceTag, formatID(r.HostID)})
	}
	return s.Write(ctx, name, InventoryHeader, rows)
}

// WriteMatched writes the input serials that were found, with their host ids.
func WriteMatched(ctx context.Context, s Sink, name string, matched []remote.Record) error {
	rows := make([][]string, 0, len(matched))
	for _, m := range matched {
		rows = append(rows, []string{formatID(m.HostID), m.ServiceTag})
	}
	return s.Write(ctx, name, MatchedHeader, rows)
}

// WriteUnmatched writes the input serials that were not found.
func WriteUnmatched(ctx context.Context, s Sink, name string, unmatched []string) error {
	rows := make([][]string, 0, len(unmatched))
	for _, tag := range unmatched {
		rows = append(rows, []string{tag})
	}
	return s.Write(ctx, name, UnmatchedHeader, rows)
}

func formatID(id remote.HostID) string {
	return strconv.FormatInt(int64(id), 10)
}
