package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"occdis-data/internal/config"
	"occdis-data/internal/database"
	"occdis-data/internal/domain"
	"occdis-data/internal/repository"
	"occdis-data/internal/service"
)

// Seeds one of the three reference dictionaries from a workbook whose header
// row names the entry fields:
//
//	disease:  disease_name, disease_code
//	job:      occupation, job_code
//	exposure: name
//
// Entries are upserted by canonical name, so re-seeding is safe.
func main() {
	var kind = flag.String("kind", "", "Dictionary to seed: disease, job or exposure")
	var file = flag.String("file", "", "Workbook path (.xlsx)")
	var sheet = flag.String("sheet", "", "Sheet name (default: first sheet)")
	flag.Parse()

	if *kind == "" || *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read workbook: %v", err)
	}
	rows, err := service.ParseWorkbook(data, *sheet)
	if err != nil {
		log.Fatalf("Failed to parse workbook: %v", err)
	}

	cfg := config.Load()
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}
	defer db.Close()

	repo := repository.NewPostgresDictionariesRepo(db)
	ctx := context.Background()

	var count int
	switch *kind {
	case "disease":
		entries := make([]domain.DiseaseDictionaryEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, domain.DiseaseDictionaryEntry{
				DiseaseName: row["disease_name"],
				DiseaseCode: row["disease_code"],
			})
		}
		count, err = repo.UpsertDiseaseEntries(ctx, entries)
	case "job":
		entries := make([]domain.JobDictionaryEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, domain.JobDictionaryEntry{
				Occupation: row["occupation"],
				JobCode:    row["job_code"],
			})
		}
		count, err = repo.UpsertJobEntries(ctx, entries)
	case "exposure":
		entries := make([]domain.ExposureEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, domain.ExposureEntry{Name: row["name"]})
		}
		count, err = repo.UpsertExposureEntries(ctx, entries)
	default:
		log.Fatalf("Unknown dictionary kind: %s", *kind)
	}

	if err != nil {
		log.Fatalf("Seeding failed after %d entries: %v", count, err)
	}
	fmt.Printf("Seeded %d %s dictionary entries from %s\n", count, *kind, *file)
}
