package service

import (
	"github.com/Avi18971911/Lens/pkg/filter/model"
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	"sort"
	"strings"
)

// FilterRequests keeps the requests whose name, path or method contains the search text and whose
// status and method match the filter. Method comparison ignores case.
func FilterRequests(requests []traceModel.Request, filter model.RequestFilter) []traceModel.Request {
	return Apply(requests, RequestPredicates(filter)...)
}

func RequestPredicates(filter model.RequestFilter) []Predicate[traceModel.Request] {
	var predicates []Predicate[traceModel.Request]
	if search := strings.ToLower(filter.Search); search != "" {
		predicates = append(predicates, func(request traceModel.Request) bool {
			return containsAny(search, request.Name, request.Path, request.Method)
		})
	}
	if !model.IsWildcard(filter.Status) {
		predicates = append(predicates, func(request traceModel.Request) bool {
			return string(request.Status) == filter.Status
		})
	}
	if !model.IsWildcard(filter.Method) {
		predicates = append(predicates, func(request traceModel.Request) bool {
			return strings.EqualFold(request.Method, filter.Method)
		})
	}
	return predicates
}

// UniqueMethods lists the upper cased methods of the requests once each, sorted.
func UniqueMethods(requests []traceModel.Request) []string {
	seen := make(map[string]struct{})
	res := make([]string, 0)
	for _, request := range requests {
		method := strings.ToUpper(request.Method)
		if _, ok := seen[method]; ok {
			continue
		}
		seen[method] = struct{}{}
		res = append(res, method)
	}
	sort.Strings(res)
	return res
}

func containsAny(search string, candidates ...string) bool {
	for _, candidate := range candidates {
		if strings.Contains(strings.ToLower(candidate), search) {
			return true
		}
	}
	return false
}
