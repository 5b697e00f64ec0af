package domain

import "time"

// Document is file metadata attached to a property. The bytes themselves
// live in external storage; deleting the property cascades to its documents.
type Document struct {
	ID         string
	PropertyID string
	Name       string
	Filename   string
	FileType   string
	FileSize   int64
	CreatedAt  time.Time
}
