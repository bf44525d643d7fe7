package api

import (
	"encoding/json"
)

// gorm.Model fields carry no json tags; rename them for clients.
var modelKeys = map[string]string{
	"ID":        "id",
	"CreatedAt": "created_at",
	"UpdatedAt": "updated_at",
	"DeletedAt": "deleted_at",
}

// normalizeModelKeys recursively renames gorm.Model keys to snake_case and
// drops deleted_at, which is never set on rows the API returns.
func normalizeModelKeys(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeModelKeys(val)
		}
		for from, to := range modelKeys {
			if val, ok := vv[from]; ok {
				delete(vv, from)
				if to != "deleted_at" {
					vv[to] = val
				}
			}
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeModelKeys(vv[i])
		}
		return vv
	default:
		return v
	}
}

// MarshalIntoSnakeTimestamps marshals v into JSON, decodes it into an
// interface{} and normalizes gorm.Model keys, so responses are snake_case.
func MarshalIntoSnakeTimestamps(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return normalizeModelKeys(out), nil
}
