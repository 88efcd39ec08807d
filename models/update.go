package models

import "go.mongodb.org/mongo-driver/v2/bson"

// UpdateMode states how caller-supplied fields reach a stored document.
type UpdateMode int

const (
	// MergeFields sets every supplied field except _id.
	MergeFields UpdateMode = iota
	// ReplaceAllowListed sets only the fields of a fixed schema and drops
	// anything else.
	ReplaceAllowListed
)

func (m UpdateMode) String() string {
	switch m {
	case MergeFields:
		return "merge"
	case ReplaceAllowListed:
		return "allow-listed"
	default:
		return "unknown"
	}
}

// FieldUpdate is one $set applied to a single document.
type FieldUpdate struct {
	Mode   UpdateMode
	Fields bson.M
	// Upsert inserts a new document when the filter matches none.
	Upsert bool
}
