package domain

import "time"

// DiseaseRecord is one reconciled occupational-disease case entry
// (disease_records table). Editable fields start equal to their original_*
// shadows at import; later curation moves only the editable copies.
type DiseaseRecord struct {
	RecordID string `db:"record_id"` // UUID, PRIMARY KEY
	CaseID   string `db:"case_id"`   // UUID, NOT NULL - owning Case

	IDS    string `db:"ids"`    // external row identifier, may be empty
	FNames string `db:"fnames"` // display name, "<job> 관련 <disease>"

	// Dictionary references; nil means unresolved, left for manual review.
	DiseaseID *string `db:"disease_id"` // UUID, nullable -> disease_dictionary
	JobID     *string `db:"job_id"`     // UUID, nullable -> job_dictionary

	DiseaseCode string `db:"disease_code"`
	JobCode     string `db:"job_code"`

	Decision    string `db:"decision"`
	Smry        string `db:"smry"`
	PdfLink     string `db:"pdf_link"`
	PopLink     string `db:"pop_link"`
	ProcessLink string `db:"process_link"`

	ExpStart  *int `db:"exp_start"`  // year, nullable
	ExpPeriod *int `db:"exp_period"` // years, nullable

	// ExposureIDs is the deduplicated exposure_dictionary reference set,
	// persisted through record_exposures.
	ExposureIDs []string `db:"-"`

	// Import-time snapshot of the raw, unresolved input. Never rewritten
	// after the initial insert.
	OriginalDiseaseName string `db:"original_disease_name"`
	OriginalDiseaseCode string `db:"original_disease_code"`
	OriginalJob         string `db:"original_job"`
	OriginalJobCode     string `db:"original_job_code"`
	OriginalExposure    string `db:"original_exposure"`
	OriginalDecision    string `db:"original_decision"`
	OriginalSmry        string `db:"original_smry"`
	OriginalPdfLink     string `db:"original_pdf_link"`
	OriginalPopLink     string `db:"original_pop_link"`
	OriginalProcessLink string `db:"original_process_link"`
	OriginalExpStart    *int   `db:"original_exp_start"`
	OriginalExpPeriod   *int   `db:"original_exp_period"`

	// Review workflow flags, all false at import.
	DiseaseConfirmed  bool `db:"disease_confirmed"`
	JobConfirmed      bool `db:"job_confirmed"`
	DecisionConfirmed bool `db:"decision_confirmed"`
	ExposureConfirmed bool `db:"exposure_confirmed"`
	SmryConfirmed     bool `db:"smry_confirmed"`

	CreatedAt time.Time `db:"created_at"`
}
