package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Row is one spreadsheet row keyed by header name. Every cell is read as a
// string; absent cells and absent columns are empty strings.
type Row map[string]string

// Sentinels substituted by the upstream repair step when job/disease are
// missing. The normalizer applies the same rule when a row arrives without
// its fname column populated.
const (
	sentinelJob     = "미상 직종"
	sentinelDisease = "질병"
)

// nullMarker is the textual artifact left behind when the source spreadsheet
// round-tripped a missing cell through a float column.
const nullMarker = "nan"

// NormalizedRow is one row after identifier repair, numeric coercion and
// text trimming, before dictionary resolution.
type NormalizedRow struct {
	FID   string
	IDS   string
	FName string

	DiseaseRaw  string
	JobRaw      string
	ExposureRaw string

	DiseaseCode string
	JobCode     string

	Decision    string
	Smry        string
	PdfLink     string
	PopLink     string
	ProcessLink string

	ExpStart  *int
	ExpPeriod *int
}

// NormalizeRow prepares one raw row. Returns ok=false when the row has no
// fid: such a row cannot be grouped into a Case and is skipped entirely.
func NormalizeRow(row Row) (*NormalizedRow, bool) {
	if row["fid"] == "" {
		return nil, false
	}

	n := &NormalizedRow{
		FID: row["fid"],
		IDS: row["ids"],

		DiseaseRaw:  strings.TrimSpace(row["disease"]),
		JobRaw:      strings.TrimSpace(row["job"]),
		ExposureRaw: strings.TrimSpace(row["exposure"]),

		DiseaseCode: row["disease_code"],
		JobCode:     row["job_code"],

		Decision:    row["decision"],
		Smry:        row["smry"],
		PdfLink:     row["pdf_link"],
		PopLink:     row["pop_link"],
		ProcessLink: row["process_link"],

		ExpStart:  coerceInt(row["exp_start"]),
		ExpPeriod: coerceInt(row["exp_period"]),
	}

	// fname preferred, fnames tolerated; when neither is populated the repair
	// step was skipped upstream, so derive the display name here.
	n.FName = row["fname"]
	if n.FName == "" {
		n.FName = row["fnames"]
	}
	if n.FName == "" {
		n.FName = deriveFName(row["job"], row["disease"])
	}

	return n, true
}

// coerceInt parses a numeric cell, tolerating float formatting ("1990.0").
// Anything unparseable is null, never zero.
func coerceInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	v := int(f)
	return &v
}

// deriveFName rebuilds the display name the repair step would have produced.
func deriveFName(job, disease string) string {
	return fmt.Sprintf("%s 관련 %s", orSentinel(job, sentinelJob), orSentinel(disease, sentinelDisease))
}

func orSentinel(s, sentinel string) string {
	s = strings.TrimSpace(s)
	// the marker is the exact lowercase artifact; "NaN" in a cell is text
	if s == "" || s == nullMarker {
		return sentinel
	}
	return s
}
