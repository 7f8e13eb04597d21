package service

import (
	"context"
	"encoding/json"
	"time"

	"occdis-data/internal/domain"
	"occdis-data/internal/repository"
	"occdis-data/internal/store"

	"go.uber.org/zap"
)

// SummaryKey is where the last run's summary is published for the review UI.
const SummaryKey = "occdis:import:last-run"

// Summary is the aggregate result of one import run. Per-row anomalies are
// absorbed into the data model and only surface here as tallies.
type Summary struct {
	Imported          int       `json:"imported"`
	Skipped           int       `json:"skipped"`
	UnresolvedDisease int       `json:"unresolved_disease"`
	UnresolvedJob     int       `json:"unresolved_job"`
	FallbackExposures int       `json:"fallback_exposures"`
	Warnings          []string  `json:"warnings,omitempty"`
	FinishedAt        time.Time `json:"finished_at"`
}

// ImportService runs the reconciliation pipeline: workbook rows are
// normalized, resolved against the dictionaries, materialized with their
// original_* shadows, and loaded in one atomic replace.
type ImportService struct {
	dicts   repository.DictionariesRepo
	records repository.RecordsRepo
	kv      store.KV // optional; nil disables summary publishing
	logger  *zap.Logger
}

func NewImportService(dicts repository.DictionariesRepo, records repository.RecordsRepo, kv store.KV, logger *zap.Logger) *ImportService {
	return &ImportService{
		dicts:   dicts,
		records: records,
		kv:      kv,
		logger:  logger,
	}
}

// Run executes one full import from the given source (path or URL) and
// sheet. On any error the store is left exactly as it was.
func (s *ImportService) Run(ctx context.Context, source, sheet string) (*Summary, error) {
	data, err := LoadSource(source, s.logger)
	if err != nil {
		return nil, err
	}

	rows, err := ParseWorkbook(data, sheet)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Parsed input workbook", zap.String("source", source), zap.Int("rows", len(rows)))

	dicts, err := s.dicts.LoadDictionaries(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	if len(dicts.Exposures) == 0 {
		// Degraded mode: every exposure item will map to the fallback entry.
		// The run proceeds; seed the dictionary and re-import to fix.
		warn := "exposure dictionary is empty; all exposure items will resolve to " + domain.FallbackExposureName
		s.logger.Warn(warn)
		summary.Warnings = append(summary.Warnings, warn)
	}

	fallbackID, err := s.dicts.EnsureFallbackExposure(ctx)
	if err != nil {
		return nil, err
	}
	dicts.FallbackExposureID = fallbackID
	dicts.Exposures[domain.FallbackExposureName] = fallbackID

	records := make([]repository.ImportRecord, 0, len(rows))
	for _, row := range rows {
		n, ok := NormalizeRow(row)
		if !ok {
			summary.Skipped++
			continue
		}

		res := ResolveRow(n, dicts)
		if res.DiseaseID == nil && n.DiseaseRaw != "" {
			summary.UnresolvedDisease++
		}
		if res.JobID == nil && n.JobRaw != "" {
			summary.UnresolvedJob++
		}
		if res.FallbackUsed {
			summary.FallbackExposures++
		}

		records = append(records, repository.ImportRecord{
			FID:    n.FID,
			Record: MaterializeRecord(n, res),
		})
	}

	created, err := s.records.ReplaceAll(ctx, records)
	if err != nil {
		return nil, err
	}
	summary.Imported = created
	summary.FinishedAt = time.Now().UTC()

	s.logger.Info("Import completed",
		zap.Int("imported", summary.Imported),
		zap.Int("skipped", summary.Skipped),
		zap.Int("unresolved_disease", summary.UnresolvedDisease),
		zap.Int("unresolved_job", summary.UnresolvedJob),
		zap.Int("fallback_exposures", summary.FallbackExposures),
	)

	s.publishSummary(ctx, summary)
	return summary, nil
}

// publishSummary is best-effort: the dataset is already committed, so a
// publish failure only loses the status display, not the import.
func (s *ImportService) publishSummary(ctx context.Context, summary *Summary) {
	if s.kv == nil {
		return
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		s.logger.Warn("Failed to encode import summary", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, SummaryKey, string(payload), 0); err != nil {
		s.logger.Warn("Failed to publish import summary", zap.Error(err))
	}
}
