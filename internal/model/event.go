package model

import (
	"time"

	"github.com/google/uuid"
)

// SnapshotLoaded is announced after every reload.
type SnapshotLoaded struct {
	EventID    uuid.UUID
	Source     string
	Records    int
	OutOfStock int
	LowStock   int
	TotalValue float64
	LoadedAt   time.Time
}
