package model

import "time"

// Snapshot is an immutable, fully loaded set of records plus the moment it was loaded.
type Snapshot struct {
	Records  []Record
	LoadedAt time.Time
	// Source names where the records came from (file path or database).
	Source string
}

func EmptySnapshot(source string, loadedAt time.Time) *Snapshot {
	return &Snapshot{
		Records:  []Record{},
		LoadedAt: loadedAt,
		Source:   source,
	}
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}
