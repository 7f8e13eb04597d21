package repository

import (
	"context"
	"database/sql"
	"fmt"

	"occdis-data/internal/domain"

	"github.com/google/uuid"
)

// PostgresDictionariesRepo dictionary Repository implementation
type PostgresDictionariesRepo struct {
	db *sql.DB
}

func NewPostgresDictionariesRepo(db *sql.DB) *PostgresDictionariesRepo {
	return &PostgresDictionariesRepo{db: db}
}

var _ DictionariesRepo = (*PostgresDictionariesRepo)(nil)

// LoadDictionaries reads all three dictionaries into memory for O(1)
// name lookups during a run.
func (r *PostgresDictionariesRepo) LoadDictionaries(ctx context.Context) (*domain.Dictionaries, error) {
	dicts := &domain.Dictionaries{
		Diseases:  make(map[string]string),
		Jobs:      make(map[string]string),
		Exposures: make(map[string]string),
	}

	if err := r.loadNameMap(ctx,
		`SELECT entry_id::text, disease_name FROM disease_dictionary`,
		dicts.Diseases); err != nil {
		return nil, fmt.Errorf("failed to load disease dictionary: %w", err)
	}
	if err := r.loadNameMap(ctx,
		`SELECT entry_id::text, occupation FROM job_dictionary`,
		dicts.Jobs); err != nil {
		return nil, fmt.Errorf("failed to load job dictionary: %w", err)
	}
	if err := r.loadNameMap(ctx,
		`SELECT entry_id::text, name FROM exposure_dictionary`,
		dicts.Exposures); err != nil {
		return nil, fmt.Errorf("failed to load exposure dictionary: %w", err)
	}

	dicts.FallbackExposureID = dicts.Exposures[domain.FallbackExposureName]
	return dicts, nil
}

func (r *PostgresDictionariesRepo) loadNameMap(ctx context.Context, query string, dst map[string]string) error {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		dst[name] = id
	}
	return rows.Err()
}

// EnsureFallbackExposure get-or-creates the shared fallback entry.
func (r *PostgresDictionariesRepo) EnsureFallbackExposure(ctx context.Context) (string, error) {
	var entryID string
	err := r.db.QueryRowContext(ctx,
		`SELECT entry_id::text FROM exposure_dictionary WHERE name = $1`,
		domain.FallbackExposureName,
	).Scan(&entryID)
	if err == nil {
		return entryID, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to look up fallback exposure entry: %w", err)
	}

	entryID = uuid.New().String()
	// Another writer may have created it between the lookup and the insert;
	// the upsert resolves the race and returns the surviving row.
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO exposure_dictionary (entry_id, name)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING entry_id::text`,
		entryID, domain.FallbackExposureName,
	).Scan(&entryID)
	if err != nil {
		return "", fmt.Errorf("failed to create fallback exposure entry: %w", err)
	}
	return entryID, nil
}

// UpsertDiseaseEntries inserts or refreshes disease dictionary entries by name.
func (r *PostgresDictionariesRepo) UpsertDiseaseEntries(ctx context.Context, entries []domain.DiseaseDictionaryEntry) (int, error) {
	count := 0
	for _, e := range entries {
		if e.DiseaseName == "" {
			continue
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO disease_dictionary (entry_id, disease_name, disease_code)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (disease_name) DO UPDATE SET disease_code = EXCLUDED.disease_code`,
			uuid.New().String(), e.DiseaseName, e.DiseaseCode,
		)
		if err != nil {
			return count, fmt.Errorf("failed to upsert disease entry %q: %w", e.DiseaseName, err)
		}
		count++
	}
	return count, nil
}

// UpsertJobEntries inserts or refreshes job dictionary entries by occupation.
func (r *PostgresDictionariesRepo) UpsertJobEntries(ctx context.Context, entries []domain.JobDictionaryEntry) (int, error) {
	count := 0
	for _, e := range entries {
		if e.Occupation == "" {
			continue
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO job_dictionary (entry_id, occupation, job_code)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (occupation) DO UPDATE SET job_code = EXCLUDED.job_code`,
			uuid.New().String(), e.Occupation, e.JobCode,
		)
		if err != nil {
			return count, fmt.Errorf("failed to upsert job entry %q: %w", e.Occupation, err)
		}
		count++
	}
	return count, nil
}

// UpsertExposureEntries inserts exposure dictionary entries by name and
// returns how many rows were actually created; names already present are
// left untouched and not counted.
func (r *PostgresDictionariesRepo) UpsertExposureEntries(ctx context.Context, entries []domain.ExposureEntry) (int, error) {
	count := 0
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO exposure_dictionary (entry_id, name)
			 VALUES ($1, $2)
			 ON CONFLICT (name) DO NOTHING`,
			uuid.New().String(), e.Name,
		)
		if err != nil {
			return count, fmt.Errorf("failed to upsert exposure entry %q: %w", e.Name, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return count, fmt.Errorf("failed to count upsert for exposure entry %q: %w", e.Name, err)
		}
		count += int(affected)
	}
	return count, nil
}
