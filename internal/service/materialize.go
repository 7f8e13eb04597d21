package service

import "occdis-data/internal/domain"

// MaterializeRecord builds the dual editable/original record from one
// normalized and resolved row. Editable fields carry the resolved values;
// original_* fields carry the pre-resolution raw text. The numeric fields
// share the one coerced value on both sides so the shadows cannot diverge
// from a second coercion.
func MaterializeRecord(n *NormalizedRow, res Resolution) domain.DiseaseRecord {
	return domain.DiseaseRecord{
		IDS:    n.IDS,
		FNames: n.FName,

		DiseaseID: res.DiseaseID,
		JobID:     res.JobID,

		DiseaseCode: n.DiseaseCode,
		JobCode:     n.JobCode,

		Decision:    n.Decision,
		Smry:        n.Smry,
		PdfLink:     n.PdfLink,
		PopLink:     n.PopLink,
		ProcessLink: n.ProcessLink,

		ExpStart:  n.ExpStart,
		ExpPeriod: n.ExpPeriod,

		ExposureIDs: res.ExposureIDs,

		OriginalDiseaseName: n.DiseaseRaw,
		OriginalDiseaseCode: n.DiseaseCode,
		OriginalJob:         n.JobRaw,
		OriginalJobCode:     n.JobCode,
		OriginalExposure:    n.ExposureRaw,
		OriginalDecision:    n.Decision,
		OriginalSmry:        n.Smry,
		OriginalPdfLink:     n.PdfLink,
		OriginalPopLink:     n.PopLink,
		OriginalProcessLink: n.ProcessLink,
		OriginalExpStart:    n.ExpStart,
		OriginalExpPeriod:   n.ExpPeriod,
	}
}
