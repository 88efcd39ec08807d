package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Document is a stored record exactly as it is returned to API callers:
// the known schema fields plus whatever the caller supplied.
type Document = bson.M

// DocumentID returns the hex form of the document's _id, or "" when it is
// missing or not an ObjectID.
func DocumentID(doc Document) string {
	id, ok := doc["_id"].(bson.ObjectID)
	if !ok {
		return ""
	}
	return id.Hex()
}

// StringField returns doc[key] when it holds a string.
func StringField(doc Document, key string) string {
	v, _ := doc[key].(string)
	return v
}

// InsertResult mirrors the driver acknowledgement of a single insert.
type InsertResult struct {
	Acknowledged bool `json:"acknowledged"`
	InsertedID   any  `json:"insertedId"`
}

// UpdateResult mirrors the driver acknowledgement of a single update.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
	UpsertedID    any   `json:"upsertedId"`
}

// DeleteResult mirrors the driver acknowledgement of a single delete.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
