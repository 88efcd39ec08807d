package utils

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

var ErrInvalidID = errors.New("invalid id format")

// ParseID accepts only the canonical form of an ObjectID: the input must
// parse and must equal the parsed value's own hex encoding.
func ParseID(s string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(s)
	if err != nil || id.Hex() != s {
		return bson.NilObjectID, ErrInvalidID
	}
	return id, nil
}

// IsValidID reports whether s is a canonical ObjectID hex string.
func IsValidID(s string) bool {
	_, err := ParseID(s)
	return err == nil
}

// IsDuplicateKey reports whether err carries a unique index violation.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}

	// Preferred: typed error
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	// Sometimes we might get a BulkWriteException
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, e := range bwe.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	// Fallback
	msg := err.Error()
	return strings.Contains(msg, "E11000 duplicate key error")
}
