package registry

import (
	"strings"

	"studentregistry/internal/types"
)

// Filter returns the records matching the given search text. An empty
// text returns the input unchanged. Otherwise a record matches when
// the lowercased text is a substring of its lowercased fullname,
// student ID, or course — a hit on any one field is enough. Input
// order is preserved.
func Filter(records []types.StudentRecord, text string) []types.StudentRecord {
	if text == "" {
		return records
	}

	needle := strings.ToLower(text)
	matched := make([]types.StudentRecord, 0, len(records))

	for _, record := range records {
		if strings.Contains(strings.ToLower(record.Fullname), needle) ||
			strings.Contains(strings.ToLower(record.StudentID), needle) ||
			strings.Contains(strings.ToLower(record.Course), needle) {
			matched = append(matched, record)
		}
	}

	return matched
}
