package rpc

import (
	"encoding/json"
	"errors"
)

// ErrNoData is returned by Decode when the envelope carries no payload.
// Callers deciding "not found" semantics should check Empty first.
var ErrNoData = errors.New("envelope has no data")

// Envelope is the response wrapper every backend operation returns.
// A nil Data is a legitimate empty result (for example "no such record"),
// distinct from a transport failure. A non-nil Data is a JSON-encoded
// payload requiring exactly one decode step.
type Envelope struct {
	Data *string `json:"data"`
}

// Empty reports whether the envelope carries no payload.
func (e *Envelope) Empty() bool {
	return e == nil || e.Data == nil
}

// Decode unmarshals the payload into v. Decoding twice, or decoding the
// result of Decode again, is a caller bug.
func (e *Envelope) Decode(v any) error {
	if e.Empty() {
		return ErrNoData
	}
	return json.Unmarshal([]byte(*e.Data), v)
}
