package entities

import "time"

// SyncAction describes what a repository sync ended up doing.
type SyncAction string

const (
	SyncCloned   SyncAction = "cloned"
	SyncUpdated  SyncAction = "updated"
	SyncUpToDate SyncAction = "up-to-date"
)

// SyncOptions carries the per-run knobs of a repository sync.
type SyncOptions struct {
	// Depth limits the history fetched on fresh clones. Zero means full history.
	Depth int
}

// Head identifies the commit checked out in a clone.
type Head struct {
	Commit string
	Date   time.Time
}
