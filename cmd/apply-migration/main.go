package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"occdis-data/internal/config"
	"occdis-data/internal/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("Usage: %s <migration_file.sql>", os.Args[0])
	}

	migrationFile := os.Args[1]
	sqlContent, err := os.ReadFile(migrationFile)
	if err != nil {
		log.Fatalf("Failed to read migration file: %v", err)
	}

	cfg := config.Load()
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}
	defer db.Close()

	fmt.Printf("Connected to database: %s\n\n", cfg.Database.Database)

	statements := splitStatements(string(sqlContent))
	for i, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("Failed to execute statement %d: %v\nStatement: %s", i+1, err, preview(stmt))
		}
	}

	fmt.Printf("Migration completed: %d statements executed\n", len(statements))
}

// splitStatements breaks a migration file into executable statements.
// Comment lines are stripped per line, so a statement that opens with a
// comment (the usual file header) keeps its SQL instead of being discarded
// with the comment.
func splitStatements(sqlContent string) []string {
	var statements []string
	for _, chunk := range strings.Split(sqlContent, ";") {
		var kept []string
		for _, line := range strings.Split(chunk, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "--") {
				continue
			}
			kept = append(kept, line)
		}
		stmt := strings.TrimSpace(strings.Join(kept, "\n"))
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

func preview(stmt string) string {
	if len(stmt) > 100 {
		return stmt[:100]
	}
	return stmt
}
