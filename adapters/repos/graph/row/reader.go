//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2024 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

// Package row encodes and decodes the property payload stored in an edge
// record. The payload is a flat JSON object; decoding happens at most once
// per edge regardless of how many index definitions consult it.
package row

import (
	"encoding/json"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

var (
	ErrEmptyRow     = errors.New("empty property row")
	ErrFieldMissing = errors.New("property field missing")
)

// Reader is a decoded edge property row.
type Reader struct {
	fields map[string][]byte
}

// New decodes a raw property row. A decode failure means the stored row is
// malformed; callers treat that as fatal for the whole edge since the row is
// needed for every matching index.
func New(raw []byte) (*Reader, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyRow
	}

	fields := map[string][]byte{}
	err := jsonparser.ObjectEach(raw, func(key, value []byte, _ jsonparser.ValueType, _ int) error {
		cp := make([]byte, len(value))
		copy(cp, value)
		fields[string(key)] = cp
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode property row")
	}

	return &Reader{fields: fields}, nil
}

// Field returns the raw encoded value of one property.
func (r *Reader) Field(name string) ([]byte, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// CollectValues extracts the named fields in order. A missing field yields
// ErrFieldMissing; callers tolerate this per index definition because a
// deprecated definition may reference fields newer rows no longer carry.
func (r *Reader) CollectValues(fields []string) ([][]byte, error) {
	values := make([][]byte, 0, len(fields))
	for _, name := range fields {
		v, ok := r.fields[name]
		if !ok {
			return nil, errors.Wrapf(ErrFieldMissing, "field %q", name)
		}
		values = append(values, v)
	}
	return values, nil
}

// Encode marshals a property map into the stored row format. Used by the
// write path and by tests seeding edge records.
func Encode(props map[string]interface{}) ([]byte, error) {
	raw, err := json.Marshal(props)
	if err != nil {
		return nil, errors.Wrap(err, "encode property row")
	}
	return raw, nil
}
