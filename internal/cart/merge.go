package cart

import "github.com/eliezer-r/storefront-platform/internal/models"

// Merge combines a guest cart with the server cart into one canonical list.
//
// The server side seeds the result and wins every descriptive-field conflict:
// its copy is the fresher, enriched one. The local side only contributes the
// quantity delta accrued while logged out, so shared products end up with
// serverQuantity + localQuantity. Local-only lines are appended as-is after
// all server lines, keeping server insertion order first.
//
// Merge does not deduplicate within one side; callers guarantee at most one
// line per product on each side (the state machine's add-is-no-op-on-duplicate
// rule upholds this for the local cart).
func Merge(local, server []models.CartLine) []models.CartLine {
	merged := make([]models.CartLine, 0, len(server)+len(local))
	index := make(map[int64]int, len(server))

	for _, line := range server {
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}

	for _, line := range local {
		if at, ok := index[line.ProductID]; ok {
			merged[at].Quantity += line.Quantity
			continue
		}

		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}

	return merged
}
