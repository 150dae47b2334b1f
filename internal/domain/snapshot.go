package domain

import (
	"encoding/json"
	"fmt"
)

// EncodeSnapshot renders items in the persisted layout: a JSON array of line items.
func EncodeSnapshot(items []LineItem) ([]byte, error) {
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot failed: %w", err)
	}
	return data, nil
}

func DecodeSnapshot(data []byte) ([]LineItem, error) {
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot failed: %w", err)
	}
	for i, item := range items {
		if err := item.Configuration.Validate(); err != nil {
			return nil, fmt.Errorf("snapshot entry %d: %w", i, err)
		}
	}
	return items, nil
}
