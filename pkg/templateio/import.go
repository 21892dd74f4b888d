package templateio

import (
	"encoding/json"
	"errors"
	"fmt"

	"tableflip.dev/postcard/pkg/model"
)

// ErrInvalidPayload wraps failures to materialize a payload that passed
// validation.
var ErrInvalidPayload = errors.New("templateio: invalid payload")

// Decode runs raw JSON through the import pipeline and returns the sanitized
// payload. Ids are kept as they are; call Remap before splicing the result
// into a live document.
func Decode(raw []byte, limits Limits) (*model.Payload, Result) {
	v, issues := parse(raw, limits)
	if len(issues) > 0 {
		return nil, failed(issues)
	}
	return DecodeValue(v, limits)
}

// DecodeValue is Decode for an already parsed value. Values that are not
// plain JSON trees are re-encoded first.
func DecodeValue(v any, limits Limits) (*model.Payload, Result) {
	v, err := generic(v)
	if err != nil {
		return nil, failed(Issues{{Path: "$", Message: "Invalid JSON format"}})
	}
	migrated := Migrate(v)
	if issues := Validate(migrated, limits); len(issues) > 0 {
		return nil, failed(issues)
	}
	p, err := materialize(migrated)
	if err != nil {
		return nil, failed(Issues{{Path: "$", Message: err.Error()}})
	}
	return Sanitize(p), Result{OK: true}
}

func generic(v any) (any, error) {
	switch t := v.(type) {
	case nil, map[string]any, []any, string, float64, bool, json.Number:
		return v, nil
	case []byte:
		var out any
		err := json.Unmarshal(t, &out)
		return out, err
	case json.RawMessage:
		var out any
		err := json.Unmarshal(t, &out)
		return out, err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	err = json.Unmarshal(raw, &out)
	return out, err
}

func materialize(v any) (*model.Payload, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	var p model.Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return &p, nil
}

// Remap gives every node of the payload a fresh id so that it can be merged
// into a document without colliding with live ids.
func Remap(p *model.Payload) *model.Payload {
	for _, c := range p.Canvas.Components {
		c.RegenerateIDs()
	}
	return p
}
