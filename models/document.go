package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is the archive record of a contract upload that went through
// analysis. The archived copy is diagnostic; failing to keep it never
// fails the analysis itself.
type Document struct {
	ID          uuid.UUID `json:"id"`
	LawID       string    `json:"law_id"`
	Filename    string    `json:"filename"`
	MimeType    string    `json:"mime_type"`
	Size        int64     `json:"size"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at"`
}
