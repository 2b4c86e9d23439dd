/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
)

// StoredRecord is the envelope a keyspace backend writes for every record.
type StoredRecord struct {
	// Kind is the name of the entity kind the record belongs to.
	Kind string
	// ID is the record identifier, unique within Kind.
	ID string
	// StoredAt is when the record was last written.
	StoredAt strfmt.DateTime
	// Item is the record marshalled as DynamoDB attribute values.
	Item map[string]types.AttributeValue
}

// Snapshot is a point-in-time copy of every record in a store, grouped by kind name.
type Snapshot struct {
	Kinds []KindSnapshot `yaml:"kinds" json:"kinds"`
}

// KindSnapshot holds the records of one kind.
type KindSnapshot struct {
	Kind    string `yaml:"kind" json:"kind"`
	Records []any  `yaml:"records" json:"records"`
}

// Count returns the number of records of kind in the snapshot.
func (s Snapshot) Count(kind string) int {
	for _, k := range s.Kinds {
		if k.Kind == kind {
			return len(k.Records)
		}
	}
	return 0
}
