package domain

import "time"

// Case groups every disease record sharing one external file identifier.
// Rows are created on first sight of a new fid and reused by later imports;
// they are never wiped by the record reload.
type Case struct {
	CaseID    string    `db:"case_id"` // UUID, PRIMARY KEY
	FID       string    `db:"fid"`     // TEXT, NOT NULL, UNIQUE - "ncc_" + ids
	CreatedAt time.Time `db:"created_at"`
}
