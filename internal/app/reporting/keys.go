package reporting

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Candidate key lists for records whose upstream sources disagree on
// primary-key naming. Order matters: the entity-specific name wins over
// the generic one.
var (
	institutionKeys = []string{"institution_id", "id"}
	programKeys     = []string{"program_id", "id"}
	courseKeys      = []string{"course_id", "id"}
	sectionKeys     = []string{"section_id", "id"}
	userKeys        = []string{"user_id", "id"}
	termKeys        = []string{"term_id", "id"}
)

// RecordID extracts a stable identifier from rec, trying each candidate
// key in order and returning the first present, non-empty value. A
// record without any usable key reports ok == false; it is not an
// error, the record is simply excluded from index-dependent
// computations.
func RecordID(rec Record, candidates ...string) (string, bool) {
	for _, key := range candidates {
		v, present := rec[key]
		if !present {
			continue
		}
		if s := idString(v); s != "" {
			return s, true
		}
	}
	return "", false
}

// idString coerces an id value of any upstream type to its canonical
// string form. Whole-number floats drop the fraction marker so that
// JSON-decoded and driver-decoded ids compare equal.
func idString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
