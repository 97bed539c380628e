package models

import (
	"bytes"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var jsonNull = []byte("null")

// NullableID distinguishes an absent field from an explicit null in a
// partial-update payload, so a PUT can clear a stored reference.
type NullableID struct {
	Set   bool
	Value *primitive.ObjectID
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, jsonNull) {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

// NullableTime is the time counterpart of NullableID.
type NullableTime struct {
	Set   bool
	Value *time.Time
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, jsonNull) {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}
