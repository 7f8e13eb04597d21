package service

import (
	"strings"

	"occdis-data/internal/domain"
)

// Resolution is the dictionary-lookup result for one normalized row.
type Resolution struct {
	// DiseaseID/JobID are nil on a dictionary miss; the record is still
	// created and the null reference marks it for manual curation.
	DiseaseID *string
	JobID     *string

	// ExposureIDs is deduplicated; unmatched items collapse onto the single
	// shared fallback entry.
	ExposureIDs []string

	// FallbackUsed reports whether any exposure item missed the dictionary.
	FallbackUsed bool
}

// ResolveRow looks the normalized free-text fields up in the in-memory
// dictionaries.
func ResolveRow(n *NormalizedRow, dicts *domain.Dictionaries) Resolution {
	res := Resolution{}

	if id, ok := dicts.Diseases[n.DiseaseRaw]; ok && n.DiseaseRaw != "" {
		res.DiseaseID = &id
	}
	if id, ok := dicts.Jobs[n.JobRaw]; ok && n.JobRaw != "" {
		res.JobID = &id
	}

	res.ExposureIDs, res.FallbackUsed = resolveExposures(n.ExposureRaw, dicts)
	return res
}

// resolveExposures splits the comma-separated raw exposure text, resolves
// each item, and substitutes the fallback entry for misses. The returned set
// contains no duplicates; at most one fallback reference appears no matter
// how many items missed.
func resolveExposures(raw string, dicts *domain.Dictionaries) ([]string, bool) {
	if raw == "" {
		return nil, false
	}

	var ids []string
	seen := make(map[string]bool)
	fallbackUsed := false

	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		id, ok := dicts.Exposures[item]
		if !ok {
			id = dicts.FallbackExposureID
			fallbackUsed = true
		}
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return ids, fallbackUsed
}
