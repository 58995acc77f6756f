package services

import (
	"notary_admin_go/models"
	"sort"
	"strings"
)

// DefaultSearchLimit caps how many matches a dashboard search returns
const DefaultSearchLimit = 4

// FilterRecords selects the records shown in the dashboard grid.
// With an empty query it returns the selected day's bucket untouched. Otherwise all
// buckets are flattened in ascending day order and records whose title or description
// contain the query (case-insensitive) are returned, at most `limit` of them.
func FilterRecords(buckets map[string][]models.DisplayRecord, selectedDate, query string, limit int) []models.DisplayRecord {
	query = strings.TrimSpace(query)
	if query == "" {
		if bucket, ok := buckets[selectedDate]; ok && bucket != nil {
			return bucket
		}
		return []models.DisplayRecord{}
	}

	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	needle := strings.ToLower(query)

	matches := []models.DisplayRecord{}
	for _, record := range flattenBuckets(buckets) {
		if strings.Contains(strings.ToLower(record.Title), needle) ||
			strings.Contains(strings.ToLower(record.Description), needle) {
			matches = append(matches, record)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches
}

func flattenBuckets(buckets map[string][]models.DisplayRecord) []models.DisplayRecord {
	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var flat []models.DisplayRecord
	for _, key := range keys {
		flat = append(flat, buckets[key]...)
	}
	return flat
}
