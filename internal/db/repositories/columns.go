package repositories

import (
	"encoding/json"

	"campus-hub/agora/internal/cache"
)

// marshalJSONColumns returns a copy of patch with the named columns
// marshalled to JSON text, matching what the GORM serializer writes for
// struct-based operations.
func marshalJSONColumns(patch cache.Patch, columns ...string) (cache.Patch, error) {
	out := make(cache.Patch, len(patch))
	for k, v := range patch {
		out[k] = v
	}
	for _, col := range columns {
		val, ok := out[col]
		if !ok || val == nil {
			continue
		}
		if _, isString := val.(string); isString {
			continue
		}
		data, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		out[col] = string(data)
	}
	return out, nil
}
