//go:build integration
// +build integration

package repository

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"testing"

	"occdis-data/internal/config"
	"occdis-data/internal/database"
	"occdis-data/internal/domain"

	"github.com/stretchr/testify/require"
)

func getTestDB(t *testing.T) *sql.DB {
	cfg := &config.DatabaseConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnvInt("TEST_DB_PORT", 5432),
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		Database: getEnv("TEST_DB_NAME", "occdis_test"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to database: %v", err)
		return nil
	}
	return db
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func cleanupImportData(t *testing.T, db *sql.DB) {
	_, _ = db.Exec(`DELETE FROM record_exposures`)
	_, _ = db.Exec(`DELETE FROM disease_records`)
	_, _ = db.Exec(`DELETE FROM cases`)
	_, _ = db.Exec(`DELETE FROM exposure_dictionary`)
	_, _ = db.Exec(`DELETE FROM job_dictionary`)
	_, _ = db.Exec(`DELETE FROM disease_dictionary`)
}

func TestIntegration_ReplaceAllRoundTrip(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	cleanupImportData(t, db)
	defer cleanupImportData(t, db)

	ctx := context.Background()
	dictsRepo := NewPostgresDictionariesRepo(db)
	recordsRepo := NewPostgresRecordsRepo(db)

	_, err := dictsRepo.UpsertDiseaseEntries(ctx, []domain.DiseaseDictionaryEntry{
		{DiseaseName: "폐암", DiseaseCode: "C34"},
	})
	require.NoError(t, err)
	_, err = dictsRepo.UpsertExposureEntries(ctx, []domain.ExposureEntry{{Name: "석면"}})
	require.NoError(t, err)

	fallbackID, err := dictsRepo.EnsureFallbackExposure(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, fallbackID)

	dicts, err := dictsRepo.LoadDictionaries(ctx)
	require.NoError(t, err)
	diseaseID := dicts.Diseases["폐암"]
	require.NotEmpty(t, diseaseID)
	asbestosID := dicts.Exposures["석면"]
	require.NotEmpty(t, asbestosID)

	records := []ImportRecord{
		{FID: "ncc_1", Record: domain.DiseaseRecord{
			IDS:                 "1",
			FNames:              "용접공 관련 폐암",
			DiseaseID:           &diseaseID,
			ExposureIDs:         []string{asbestosID, fallbackID},
			OriginalDiseaseName: "폐암",
		}},
		{FID: "ncc_1", Record: domain.DiseaseRecord{IDS: "1", FNames: "용접공 관련 폐암"}},
		{FID: "ncc_2", Record: domain.DiseaseRecord{IDS: "2", FNames: "미상 직종 관련 질병"}},
	}

	count, err := recordsRepo.ReplaceAll(ctx, records)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	var caseCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM cases`).Scan(&caseCount))
	require.Equal(t, 2, caseCount, "rows sharing a fid share one Case")

	var linkCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM record_exposures`).Scan(&linkCount))
	require.Equal(t, 2, linkCount)

	// a second identical reload yields the same record set without
	// duplicating Cases
	count, err = recordsRepo.ReplaceAll(ctx, records)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	var recordCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM disease_records`).Scan(&recordCount))
	require.Equal(t, 3, recordCount)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM cases`).Scan(&caseCount))
	require.Equal(t, 2, caseCount)
}

func TestIntegration_ReplaceAllRollsBackOnBadReference(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	cleanupImportData(t, db)
	defer cleanupImportData(t, db)

	ctx := context.Background()
	recordsRepo := NewPostgresRecordsRepo(db)

	_, err := recordsRepo.ReplaceAll(ctx, []ImportRecord{
		{FID: "ncc_1", Record: domain.DiseaseRecord{IDS: "1"}},
	})
	require.NoError(t, err)

	// a dangling exposure reference on the last row violates the FK and must
	// abort the whole reload, keeping the committed dataset
	bogus := "00000000-0000-0000-0000-00000000dead"
	_, err = recordsRepo.ReplaceAll(ctx, []ImportRecord{
		{FID: "ncc_2", Record: domain.DiseaseRecord{IDS: "2"}},
		{FID: "ncc_3", Record: domain.DiseaseRecord{IDS: "3", ExposureIDs: []string{bogus}}},
	})
	require.Error(t, err)

	var ids string
	require.NoError(t, db.QueryRow(`SELECT ids FROM disease_records`).Scan(&ids))
	require.Equal(t, "1", ids, "failed reload leaves the prior dataset authoritative")
}
