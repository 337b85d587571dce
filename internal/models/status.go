package models

// RecordStatus is the lifecycle state of a soft-deletable record.
type RecordStatus string

const (
	StatusActive  RecordStatus = "active"
	StatusDeleted RecordStatus = "deleted"
)
