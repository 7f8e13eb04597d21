package repository

import (
	"context"
	"database/sql"
	"testing"

	"occdis-data/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDictionaries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT entry_id::text, disease_name FROM disease_dictionary").
		WillReturnRows(sqlmock.NewRows([]string{"entry_id", "disease_name"}).
			AddRow("d-1", "폐암").
			AddRow("d-2", "백혈병"))
	mock.ExpectQuery("SELECT entry_id::text, occupation FROM job_dictionary").
		WillReturnRows(sqlmock.NewRows([]string{"entry_id", "occupation"}).
			AddRow("j-1", "용접공"))
	mock.ExpectQuery("SELECT entry_id::text, name FROM exposure_dictionary").
		WillReturnRows(sqlmock.NewRows([]string{"entry_id", "name"}).
			AddRow("e-1", "석면").
			AddRow("e-etc", domain.FallbackExposureName))

	repo := NewPostgresDictionariesRepo(db)
	dicts, err := repo.LoadDictionaries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "d-1", dicts.Diseases["폐암"])
	assert.Equal(t, "j-1", dicts.Jobs["용접공"])
	assert.Equal(t, "e-1", dicts.Exposures["석면"])
	assert.Equal(t, "e-etc", dicts.FallbackExposureID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureFallbackExposure_ExistingEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT entry_id::text FROM exposure_dictionary").
		WithArgs(domain.FallbackExposureName).
		WillReturnRows(sqlmock.NewRows([]string{"entry_id"}).AddRow("e-etc"))

	repo := NewPostgresDictionariesRepo(db)
	id, err := repo.EnsureFallbackExposure(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "e-etc", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureFallbackExposure_CreatesWhenAbsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT entry_id::text FROM exposure_dictionary").
		WithArgs(domain.FallbackExposureName).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO exposure_dictionary").
		WillReturnRows(sqlmock.NewRows([]string{"entry_id"}).AddRow("e-new"))

	repo := NewPostgresDictionariesRepo(db)
	id, err := repo.EnsureFallbackExposure(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "e-new", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertExposureEntries_CountsOnlyNewRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// first name is new, second already exists (DO NOTHING affects no row)
	mock.ExpectExec("INSERT INTO exposure_dictionary").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO exposure_dictionary").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresDictionariesRepo(db)
	count, err := repo.UpsertExposureEntries(context.Background(), []domain.ExposureEntry{
		{Name: "석면"},
		{Name: "크롬"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertDiseaseEntries_SkipsUnnamed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO disease_dictionary").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresDictionariesRepo(db)
	count, err := repo.UpsertDiseaseEntries(context.Background(), []domain.DiseaseDictionaryEntry{
		{DiseaseName: "폐암", DiseaseCode: "C34"},
		{DiseaseName: ""}, // blank row in the seed workbook
	})

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
