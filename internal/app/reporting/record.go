// Package reporting implements the role-scoped dashboard aggregation
// engine. It converts a viewer descriptor into a consistent snapshot of
// cross-referenced institutions, programs, courses, sections, faculty
// and terms, enriched with computed metrics and per-course learning
// outcome data. The engine only reads: collaborator records are treated
// as immutable for the duration of one request and every derived
// structure is discarded with the response.
package reporting

import "encoding/json"

// Record is a generic entity row as returned by the persistence
// collaborator. Upstream sources disagree on column naming (course_id
// vs id, program_ids vs program_id), which the key resolver in keys.go
// masks.
type Record map[string]any

// Annotated wraps an immutable base record with an overlay of
// scope-derived fields (institution_id, program_id, clo_count, ...).
// The base record is never written to, so collaborator-owned records
// are never aliased into a response for a different scope.
type Annotated struct {
	base    Record
	overlay map[string]any
}

// Annotate wraps base in an empty annotated view.
func Annotate(base Record) *Annotated {
	return &Annotated{base: base}
}

// Set records an overlay field and returns the view for chaining.
func (a *Annotated) Set(key string, value any) *Annotated {
	if a.overlay == nil {
		a.overlay = make(map[string]any, 4)
	}
	a.overlay[key] = value
	return a
}

// Get returns the overlay value for key when set, the base value
// otherwise.
func (a *Annotated) Get(key string) (any, bool) {
	if a.overlay != nil {
		if v, ok := a.overlay[key]; ok {
			return v, true
		}
	}
	v, ok := a.base[key]
	return v, ok
}

// Base returns the wrapped record.
func (a *Annotated) Base() Record {
	return a.base
}

// MarshalJSON flattens base and overlay into one object; overlay fields
// shadow base fields of the same name.
func (a *Annotated) MarshalJSON() ([]byte, error) {
	merged := make(map[string]any, len(a.base)+len(a.overlay))
	for k, v := range a.base {
		merged[k] = v
	}
	for k, v := range a.overlay {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// stringField returns the record's value for key as a string, or ""
// when the field is absent, nil or not id-coercible.
func stringField(rec Record, key string) string {
	v, ok := rec[key]
	if !ok {
		return ""
	}
	return idString(v)
}
