package service

import "strings"

// FilterByText keeps the items for which any field contains query,
// case-insensitively. An empty query keeps everything. Filtering a filtered
// slice by the same query returns the same elements.
func FilterByText[T any](items []T, query string, fields func(T) []string) []T {
	needle := strings.ToLower(query)

	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
