package repository

import (
	"context"

	"occdis-data/internal/domain"
)

// DictionariesRepo is the read/seed surface over the three reference
// dictionaries. Import runs only read; seeding is done by the companion
// seed-dictionaries tool.
type DictionariesRepo interface {
	// LoadDictionaries reads all three dictionaries into name -> entry-id maps.
	LoadDictionaries(ctx context.Context) (*domain.Dictionaries, error)

	// EnsureFallbackExposure get-or-creates the shared "기타" exposure entry
	// and returns its entry id.
	EnsureFallbackExposure(ctx context.Context) (string, error)

	UpsertDiseaseEntries(ctx context.Context, entries []domain.DiseaseDictionaryEntry) (int, error)
	UpsertJobEntries(ctx context.Context, entries []domain.JobDictionaryEntry) (int, error)
	UpsertExposureEntries(ctx context.Context, entries []domain.ExposureEntry) (int, error)
}

// ImportRecord is one materialized record ready for loading, still keyed by
// the external fid; the loader resolves fid to a Case inside the transaction.
type ImportRecord struct {
	FID    string
	Record domain.DiseaseRecord
}

// RecordsRepo persists disease records.
type RecordsRepo interface {
	// ReplaceAll wipes every disease record and inserts the given set in
	// order, get-or-creating Cases by fid, all inside one transaction.
	// Returns the number of records created. On error nothing is changed.
	ReplaceAll(ctx context.Context, records []ImportRecord) (int, error)
}
