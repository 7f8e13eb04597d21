package domain

// FallbackExposureName is the shared "other/unclassified" exposure entry that
// absorbs every raw exposure item without a dictionary match.
const FallbackExposureName = "기타"

// DiseaseDictionaryEntry 질병 사전 entry (disease_dictionary table)
type DiseaseDictionaryEntry struct {
	EntryID     string `db:"entry_id"`     // UUID, PRIMARY KEY
	DiseaseName string `db:"disease_name"` // TEXT, NOT NULL, UNIQUE
	DiseaseCode string `db:"disease_code"` // TEXT - KCD code, informational
}

// JobDictionaryEntry 직종 사전 entry (job_dictionary table)
type JobDictionaryEntry struct {
	EntryID    string `db:"entry_id"`   // UUID, PRIMARY KEY
	Occupation string `db:"occupation"` // TEXT, NOT NULL, UNIQUE
	JobCode    string `db:"job_code"`   // TEXT - KSCO code, informational
}

// ExposureEntry 유해인자 사전 entry (exposure_dictionary table)
type ExposureEntry struct {
	EntryID string `db:"entry_id"` // UUID, PRIMARY KEY
	Name    string `db:"name"`     // TEXT, NOT NULL, UNIQUE
}

// Dictionaries holds the three lookup tables as name -> entry-id maps,
// loaded once per import run for O(1) resolution.
type Dictionaries struct {
	Diseases  map[string]string
	Jobs      map[string]string
	Exposures map[string]string

	// FallbackExposureID is the entry id for FallbackExposureName,
	// guaranteed present before resolution starts.
	FallbackExposureID string
}
