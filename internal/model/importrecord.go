package model

import (
	"time"

	"github.com/google/uuid"
)

// ImportRecord marks one completed file import. Moves and invoices carry
// its ID as their origin for traceability.
type ImportRecord struct {
	ID        uuid.UUID
	Filename  string
	Raw       []byte // attached copy of the imported file
	CreatedAt time.Time
}
