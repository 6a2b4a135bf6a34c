package model

// AllValues matches every value of a categorical filter.
const AllValues = "all"

type RequestFilter struct {
	Search string `schema:"search" json:"search"`
	Status string `schema:"status" json:"status"`
	Method string `schema:"method" json:"method"`
}

type SpanFilter struct {
	Search  string `schema:"search" json:"search"`
	Status  string `schema:"status" json:"status"`
	Service string `schema:"service" json:"service"`
}

// IsWildcard reports whether a categorical filter value accepts everything.
func IsWildcard(value string) bool {
	return value == "" || value == AllValues
}
