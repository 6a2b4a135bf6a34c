package service

import (
	"github.com/Avi18971911/Lens/pkg/filter/model"
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	"sort"
	"strings"
)

// FilterSpans keeps the spans whose name, service or type contains the search text and whose
// status and service match the filter.
func FilterSpans(spans []traceModel.Span, filter model.SpanFilter) []traceModel.Span {
	return Apply(spans, SpanPredicates(filter)...)
}

func SpanPredicates(filter model.SpanFilter) []Predicate[traceModel.Span] {
	var predicates []Predicate[traceModel.Span]
	if search := strings.ToLower(filter.Search); search != "" {
		predicates = append(predicates, func(span traceModel.Span) bool {
			return containsAny(search, span.Name, span.Service, string(span.Type))
		})
	}
	if !model.IsWildcard(filter.Status) {
		predicates = append(predicates, func(span traceModel.Span) bool {
			return string(span.Status) == filter.Status
		})
	}
	if !model.IsWildcard(filter.Service) {
		predicates = append(predicates, func(span traceModel.Span) bool {
			return span.Service == filter.Service
		})
	}
	return predicates
}

func UniqueSpanServices(spans []traceModel.Span) []string {
	seen := make(map[string]struct{})
	res := make([]string, 0)
	for _, span := range spans {
		if _, ok := seen[span.Service]; ok {
			continue
		}
		seen[span.Service] = struct{}{}
		res = append(res, span.Service)
	}
	sort.Strings(res)
	return res
}
