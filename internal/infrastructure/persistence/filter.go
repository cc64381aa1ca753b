package persistence

import (
	"strings"

	"github.com/pharmaledger/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyOrder applies a validated ORDER BY clause. The column must appear in
// the allowed set; anything else falls back to the default to keep user
// input out of the SQL.
func applyOrder(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultOrder string) *gorm.DB {
	if filter.OrderBy != "" && allowed[filter.OrderBy] {
		dir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			dir = "DESC"
		}
		return query.Order(filter.OrderBy + " " + dir)
	}
	return query.Order(defaultOrder)
}

// findPage runs the count plus page query and wraps the result
func findPage[T any](query *gorm.DB, filter shared.Filter) (*shared.Paginated[T], error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var items []T
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).Find(&items).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(items, total, page, pageSize)
	return &result, nil
}
