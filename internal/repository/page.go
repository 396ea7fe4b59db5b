package repository

import "strings"

// ==================== 分页与排序 ====================

// Page 通用分页/排序参数，嵌入各 Filter 使用
type Page struct {
	PageNum   int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Offset 计算偏移量
func (p Page) Offset() int {
	page := p.PageNum
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.Limit()
}

// Limit 每页数量，默认 10，上限 100
func (p Page) Limit() int {
	if p.PageSize < 1 {
		return 10
	}
	if p.PageSize > 100 {
		return 100
	}
	return p.PageSize
}

// OrderClause 生成排序子句
// allowed 是排序字段白名单（外部字段名 -> 列名），不在名单内一律回退 created_at
func (p Page) OrderClause(allowed map[string]string) string {
	col, ok := allowed[p.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(p.SortOrder, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}

// Pages 总页数
func (p Page) Pages(total int64) int64 {
	limit := int64(p.Limit())
	return (total + limit - 1) / limit
}
