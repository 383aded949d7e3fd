package types

// Status is the lifecycle status of a persisted record.
// Soft-deleted records keep their row with StatusDeleted and are excluded from queries.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)
