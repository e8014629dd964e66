package query

import (
	"strconv"
	"strings"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// Order is a validated sort direction, safe to interpolate into ORDER BY.
type Order string

const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

// Params carries raw, caller-controlled list parameters. Fields are bound
// as strings so malformed values fall back to defaults instead of failing
// the bind.
type Params struct {
	Page      string `form:"page"`
	Size      string `form:"size"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

// SortConfig whitelists the sortable fields of one resource. Keys are the
// API-facing field names, values the column expressions used in ORDER BY.
// Caller input never reaches the query outside this map.
type SortConfig struct {
	Fields       map[string]string
	DefaultField string
	DefaultOrder Order
}

// Page is the normalized, bounded form of Params.
type Page struct {
	Page       int
	Size       int
	Offset     int
	SortBy     string
	SortColumn string
	SortOrder  Order
}

// Normalize clamps and defaults the raw parameters against the resource's
// sort configuration. It never fails: malformed input is coerced.
func (p Params) Normalize(cfg SortConfig) Page {
	page, err := strconv.Atoi(p.Page)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	size, err := strconv.Atoi(p.Size)
	if err != nil || size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	sortBy := p.SortBy
	column, ok := cfg.Fields[sortBy]
	if !ok {
		sortBy = cfg.DefaultField
		column = cfg.Fields[cfg.DefaultField]
	}

	order := cfg.DefaultOrder
	if order != OrderAsc && order != OrderDesc {
		order = OrderDesc
	}
	switch strings.ToUpper(p.SortOrder) {
	case string(OrderAsc):
		order = OrderAsc
	case string(OrderDesc):
		order = OrderDesc
	}

	return Page{
		Page:       page,
		Size:       size,
		Offset:     (page - 1) * size,
		SortBy:     sortBy,
		SortColumn: column,
		SortOrder:  order,
	}
}
