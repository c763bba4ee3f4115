package models

// RawRecord holds a single CloudTrail record exactly as decoded from JSON.
// Records are never validated against a schema: every field is optional, and
// all access goes through accessors that tolerate absent keys and unexpected
// types. Absence of a field is never an error.
type RawRecord map[string]any

// String returns the string stored under key, or fallback when the key is
// absent or holds a non-string value.
func (r RawRecord) String(key, fallback string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return fallback
}

// Bool returns the boolean stored under key, or fallback when the key is
// absent or holds a non-boolean value.
func (r RawRecord) Bool(key string, fallback bool) bool {
	if v, ok := r[key].(bool); ok {
		return v
	}
	return fallback
}

// Map returns the nested mapping stored under key. A missing key or a
// non-mapping value yields an empty RawRecord, so chained lookups stay total.
func (r RawRecord) Map(key string) RawRecord {
	if v, ok := r[key].(map[string]any); ok {
		return v
	}
	return RawRecord{}
}
