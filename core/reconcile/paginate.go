package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Collection is what pagination accumulated.
type Collection struct {
	Inventory *Inventory
	// Pages counts pages fetched successfully.
	Pages int
}

// CollectInventory follows the report token chain starting at token, one fetch
// per token, until a page carries no next token.
//
// Pagination stops early, keeping everything accumulated so far, when a fetch
// fails, a page has no records object, the context ends, a token repeats, or
// maxPages pages have been fetched (maxPages <= 0 means no cap). The returned
// error says why; the collection is always usable.
func CollectInventory(ctx context.Context, f PageFetcher, token string, maxPages int, l *zap.Logger) (*Collection, error) {
	col := &Collection{Inventory: NewInventory()}
	if token == "" {
		return col, ErrNoToken
	}

	seen := make(map[string]struct{})
	for token != "" {
		if _, repeated := seen[token]; repeated {
			return col, fmt.Errorf("%w: token %q repeated after %d pages", ErrPaginationLimitExceeded, token, col.Pages)
		}
		if maxPages > 0 && col.Pages >= maxPages {
			return col, fmt.Errorf("%w: stopped after %d pages", ErrPaginationLimitExceeded, col.Pages)
		}
		if err := ctx.Err(); err != nil {
			return col, err
		}
		seen[token] = struct{}{}

		page, err := f.FetchPage(ctx, token)
		if err != nil {
			return col, fmt.Errorf("fetching page %d: %w", col.Pages+1, err)
		}
		if page == nil || !page.HasRecords {
			return col, fmt.Errorf("page %d: %w", col.Pages+1, ErrRecordsAbsent)
		}
		col.Pages++

		for _, rec := range page.Records {
			if prev, dup := col.Inventory.Put(rec.ServiceTag, rec.HostID); dup && prev != rec.HostID {
				l.Warn("Service tag reported for more than one host, keeping the latest",
					zap.String("service_tag", rec.ServiceTag),
					zap.Int64("previous_host_id", int64(prev)),
					zap.Int64("host_id", int64(rec.HostID)),
				)
			}
		}

		l.Debug("Fetched report page",
			zap.Int("page", col.Pages),
			zap.Int("records", len(page.Records)),
			zap.Bool("more", page.NextToken != ""),
		)
		token = page.NextToken
	}

	return col, nil
}
