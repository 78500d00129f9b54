package repository

import "gorm.io/gorm"

// applyPagination 给查询追加分页，页码从 1 开始。
// pageSize 非正数时视为不分页，返回原查询。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
