package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"occdis-data/internal/config"
	"occdis-data/internal/database"
)

// Post-import inspection tool: overall counts by default, plus flags for a
// single case or for records left unresolved by the dictionary pass.
func main() {
	var fid = flag.String("fid", "", "Show records for a single case fid (e.g. 'ncc_123')")
	var unresolved = flag.Bool("unresolved", false, "List records with a null disease or job reference")
	var limit = flag.Int("limit", 50, "Max rows to print for listings")
	flag.Parse()

	cfg := config.Load()
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}
	defer db.Close()

	switch {
	case *fid != "":
		showCase(db, *fid)
	case *unresolved:
		showUnresolved(db, *limit)
	default:
		showCounts(db)
	}
}

func showCounts(db *sql.DB) {
	var cases, records, unresolvedDisease, unresolvedJob int
	row := db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM cases),
			(SELECT COUNT(*) FROM disease_records),
			(SELECT COUNT(*) FROM disease_records WHERE disease_id IS NULL AND original_disease_name <> ''),
			(SELECT COUNT(*) FROM disease_records WHERE job_id IS NULL AND original_job <> '')
	`)
	if err := row.Scan(&cases, &records, &unresolvedDisease, &unresolvedJob); err != nil {
		log.Fatalf("Failed to query counts: %v", err)
	}

	fmt.Printf("cases:               %d\n", cases)
	fmt.Printf("disease records:     %d\n", records)
	fmt.Printf("unresolved diseases: %d\n", unresolvedDisease)
	fmt.Printf("unresolved jobs:     %d\n", unresolvedJob)

	for _, dict := range []struct{ name, table string }{
		{"disease dictionary", "disease_dictionary"},
		{"job dictionary", "job_dictionary"},
		{"exposure dictionary", "exposure_dictionary"},
	} {
		var n int
		if err := db.QueryRow(`SELECT COUNT(*) FROM ` + dict.table).Scan(&n); err != nil {
			log.Fatalf("Failed to count %s: %v", dict.name, err)
		}
		fmt.Printf("%-20s %d\n", dict.name+":", n)
	}
}

func showCase(db *sql.DB, fid string) {
	rows, err := db.Query(`
		SELECT r.ids, r.fnames, r.original_disease_name, r.original_job,
		       r.disease_id IS NOT NULL, r.job_id IS NOT NULL
		FROM disease_records r
		JOIN cases c ON c.case_id = r.case_id
		WHERE c.fid = $1
		ORDER BY r.created_at
	`, fid)
	if err != nil {
		log.Fatalf("Failed to query case %s: %v", fid, err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var ids, fnames, disease, job string
		var diseaseResolved, jobResolved bool
		if err := rows.Scan(&ids, &fnames, &disease, &job, &diseaseResolved, &jobResolved); err != nil {
			log.Fatalf("Failed to scan row: %v", err)
		}
		n++
		fmt.Printf("[%d] ids=%s fname=%q disease=%q(resolved=%t) job=%q(resolved=%t)\n",
			n, ids, fnames, disease, diseaseResolved, job, jobResolved)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Row iteration failed: %v", err)
	}
	if n == 0 {
		fmt.Printf("No records for fid %s\n", fid)
	}
}

func showUnresolved(db *sql.DB, limit int) {
	rows, err := db.Query(`
		SELECT c.fid, r.original_disease_name, r.original_job
		FROM disease_records r
		JOIN cases c ON c.case_id = r.case_id
		WHERE (r.disease_id IS NULL AND r.original_disease_name <> '')
		   OR (r.job_id IS NULL AND r.original_job <> '')
		ORDER BY c.fid
		LIMIT $1
	`, limit)
	if err != nil {
		log.Fatalf("Failed to query unresolved records: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var fid, disease, job string
		if err := rows.Scan(&fid, &disease, &job); err != nil {
			log.Fatalf("Failed to scan row: %v", err)
		}
		fmt.Printf("%s  disease=%q job=%q\n", fid, disease, job)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Row iteration failed: %v", err)
	}
}
