package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// PostgresRecordsRepo disease record Repository implementation
type PostgresRecordsRepo struct {
	db *sql.DB
}

func NewPostgresRecordsRepo(db *sql.DB) *PostgresRecordsRepo {
	return &PostgresRecordsRepo{db: db}
}

var _ RecordsRepo = (*PostgresRecordsRepo)(nil)

// ReplaceAll performs the full-dataset reload: delete every disease record,
// then insert the given set in order, get-or-creating Cases by fid. The whole
// reload is one transaction; any failure rolls back to the prior dataset.
func (r *PostgresRecordsRepo) ReplaceAll(ctx context.Context, records []ImportRecord) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// record_exposures rows go with the records via ON DELETE CASCADE.
	if _, err := tx.ExecContext(ctx, `DELETE FROM disease_records`); err != nil {
		return 0, fmt.Errorf("failed to delete existing records: %w", err)
	}

	// Cases persist across reloads; cache fid -> case_id for rows sharing a fid.
	caseIDs := make(map[string]string)

	created := 0
	for _, rec := range records {
		caseID, ok := caseIDs[rec.FID]
		if !ok {
			caseID, err = getOrCreateCase(ctx, tx, rec.FID)
			if err != nil {
				return 0, err
			}
			caseIDs[rec.FID] = caseID
		}

		d := rec.Record
		recordID := uuid.New().String()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO disease_records (
				record_id, case_id, ids, fnames,
				disease_id, job_id, disease_code, job_code,
				decision, smry, pdf_link, pop_link, process_link,
				exp_start, exp_period,
				original_disease_name, original_disease_code,
				original_job, original_job_code,
				original_exposure, original_decision, original_smry,
				original_pdf_link, original_pop_link, original_process_link,
				original_exp_start, original_exp_period,
				disease_confirmed, job_confirmed, decision_confirmed,
				exposure_confirmed, smry_confirmed
			) VALUES (
				$1, $2, $3, $4,
				$5, $6, $7, $8,
				$9, $10, $11, $12, $13,
				$14, $15,
				$16, $17,
				$18, $19,
				$20, $21, $22,
				$23, $24, $25,
				$26, $27,
				$28, $29, $30,
				$31, $32
			)`,
			recordID, caseID, d.IDS, d.FNames,
			d.DiseaseID, d.JobID, d.DiseaseCode, d.JobCode,
			d.Decision, d.Smry, d.PdfLink, d.PopLink, d.ProcessLink,
			d.ExpStart, d.ExpPeriod,
			d.OriginalDiseaseName, d.OriginalDiseaseCode,
			d.OriginalJob, d.OriginalJobCode,
			d.OriginalExposure, d.OriginalDecision, d.OriginalSmry,
			d.OriginalPdfLink, d.OriginalPopLink, d.OriginalProcessLink,
			d.OriginalExpStart, d.OriginalExpPeriod,
			d.DiseaseConfirmed, d.JobConfirmed, d.DecisionConfirmed,
			d.ExposureConfirmed, d.SmryConfirmed,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert record for fid %s: %w", rec.FID, err)
		}

		for _, entryID := range d.ExposureIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO record_exposures (record_id, entry_id) VALUES ($1, $2)`,
				recordID, entryID,
			); err != nil {
				return 0, fmt.Errorf("failed to link exposure for fid %s: %w", rec.FID, err)
			}
		}

		created++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return created, nil
}

func getOrCreateCase(ctx context.Context, tx *sql.Tx, fid string) (string, error) {
	var caseID string
	err := tx.QueryRowContext(ctx,
		`SELECT case_id::text FROM cases WHERE fid = $1`, fid,
	).Scan(&caseID)
	if err == nil {
		return caseID, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to look up case %s: %w", fid, err)
	}

	caseID = uuid.New().String()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO cases (case_id, fid) VALUES ($1, $2)`, caseID, fid,
	); err != nil {
		return "", fmt.Errorf("failed to create case %s: %w", fid, err)
	}
	return caseID, nil
}
