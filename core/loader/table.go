package loader

import (
	"context"
	"fmt"
	"strings"

	"tag-reconciler/core/database"
	"tag-reconciler/core/utils"

	"gorm.io/gorm"
)

// TableSource reads serials from one column of an asset table.
type TableSource struct {
	DB      *gorm.DB
	Table   string
	Column  string
	OrderBy string
}

// Load checks that the column exists, then reads every row of it.
// NULL values become empty entries.
func (s *TableSource) Load(ctx context.Context) ([]string, error) {
	for _, name := range []string{s.Table, s.Column} {
		if !database.ValidIdentifier(name) {
			return nil, fmt.Errorf("invalid identifier %q", name)
		}
	}
	if s.OrderBy != "" && !database.ValidIdentifier(s.OrderBy) {
		return nil, fmt.Errorf("invalid order column %q", s.OrderBy)
	}

	db := s.DB.WithContext(ctx)
	ok, err := database.HasColumn(db, s.Table, s.Column)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("table %s has no column %s", s.Table, s.Column)
	}

	query := db.Table(s.Table).Select(s.Column)
	if s.OrderBy != "" {
		query = query.Order(s.OrderBy)
	}
	rows, err := query.Rows()
	if err != nil {
		return nil, fmt.Errorf("reading %s.%s: %w", s.Table, s.Column, err)
	}
	defer rows.Close()

	serials := make([]string, 0)
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning %s.%s: %w", s.Table, s.Column, err)
		}
		serials = append(serials, strings.TrimSpace(utils.ToString(v)))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading %s.%s: %w", s.Table, s.Column, err)
	}
	return serials, nil
}
