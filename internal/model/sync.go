package model

// SyncResult describes one completed sync.
type SyncResult struct {
	// Downloaded is false when no remote URL is configured and the sync only reloaded.
	Downloaded bool
	Bytes      int64
	Snapshot   *Snapshot
}
