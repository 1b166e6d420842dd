package store

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// LoadList decodes the JSON array stored under key. An absent key or an
// empty value is an empty list.
func LoadList[T any](kv KeyValue, key string) ([]T, error) {
	raw, err := kv.Get(key)
	if errors.Is(err, ErrNotFound) || (err == nil && raw == "") {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}

	var list []T
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("failed decoding %q: %w", key, err)
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

// SaveList encodes list as a JSON array under key.
func SaveList[T any](kv KeyValue, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed encoding %q: %w", key, err)
	}
	return kv.Set(key, string(data))
}
