package motive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LoadFile reads and decodes the dataset at path. A missing file produces an
// error matching fs.ErrNotExist.
func LoadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Decode parses a document of the form
//
//	{"data": [{"name": "...", "crime": {"<label>": n, ..., "Total": n}}, ...]}
//
// Structural problems are reported as *MissingFieldError or *InvalidValueError.
// Completeness of the category keys is checked later by Aggregate, which knows
// the expected category set.
func Decode(r io.Reader) (Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	rawRecords, ok := doc["data"]
	if !ok || isNull(rawRecords) {
		return nil, &MissingFieldError{Index: -1, Field: "data"}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(rawRecords, &items); err != nil {
		return nil, fmt.Errorf("parse dataset: \"data\" is not an array: %w", err)
	}

	ds := make(Dataset, 0, len(items))
	for i, raw := range items {
		rec, err := decodeRecord(i, raw)
		if err != nil {
			return nil, err
		}
		ds = append(ds, rec)
	}
	return ds, nil
}

func decodeRecord(index int, raw json.RawMessage) (Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Record{}, &InvalidValueError{Index: index, Field: "record", Value: string(raw), Reason: "not an object"}
	}

	rawName, ok := fields["name"]
	if !ok || isNull(rawName) {
		return Record{}, &MissingFieldError{Index: index, Field: "name"}
	}
	var name string
	if err := json.Unmarshal(rawName, &name); err != nil {
		return Record{}, &InvalidValueError{Index: index, Field: "name", Value: string(rawName), Reason: "not a string"}
	}

	rawCrime, ok := fields["crime"]
	if !ok || isNull(rawCrime) {
		return Record{}, &MissingFieldError{Index: index, Region: name, Field: "crime"}
	}
	var counts map[string]json.RawMessage
	if err := json.Unmarshal(rawCrime, &counts); err != nil {
		return Record{}, &InvalidValueError{Index: index, Region: name, Field: "crime", Value: string(rawCrime), Reason: "not an object"}
	}

	crime := make(map[string]float64, len(counts))
	for key, v := range counts {
		var n float64
		if isNull(v) {
			return Record{}, &InvalidValueError{Index: index, Region: name, Field: key, Value: "null", Reason: "not a number"}
		}
		if err := json.Unmarshal(v, &n); err != nil {
			return Record{}, &InvalidValueError{Index: index, Region: name, Field: key, Value: string(v), Reason: "not a number"}
		}
		crime[key] = n
	}
	return Record{Name: name, Crime: crime}, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
