package reporting

// Cross-reference indices over the raw entity collections. All of these
// are pure functions: they never modify the input records.

// indexByKey builds an id -> record index. Duplicate ids resolve
// last-write-wins; records without a usable id are skipped.
func indexByKey(records []Record, candidates ...string) map[string]Record {
	index := make(map[string]Record, len(records))
	for _, rec := range records {
		id, ok := RecordID(rec, candidates...)
		if !ok {
			continue
		}
		index[id] = rec
	}
	return index
}

// groupBy groups records by a derived key, preserving input order
// within each group. Records whose key getter reports no key are
// skipped.
func groupBy(records []Record, key func(Record) (string, bool)) map[string][]Record {
	groups := make(map[string][]Record)
	for _, rec := range records {
		k, ok := key(rec)
		if !ok {
			continue
		}
		groups[k] = append(groups[k], rec)
	}
	return groups
}

// sectionCourseID is the grouping key for sections-by-course.
func sectionCourseID(rec Record) (string, bool) {
	return RecordID(rec, "course_id")
}

// sectionInstructorID is the grouping key for sections-by-instructor.
// Unassigned sections report no key.
func sectionInstructorID(rec Record) (string, bool) {
	return RecordID(rec, "instructor_id")
}

// programIDSet resolves the program membership of a course or user
// record. The multi-valued program_ids field wins; a single-valued
// program_id is the fallback when the former is absent; neither present
// yields the empty set. This fallback is the join key for nearly every
// downstream metric.
func programIDSet(rec Record) map[string]struct{} {
	out := make(map[string]struct{})
	if v, ok := rec["program_ids"]; ok && v != nil {
		switch ids := v.(type) {
		case []any:
			for _, e := range ids {
				if s := idString(e); s != "" {
					out[s] = struct{}{}
				}
			}
			return out
		case []string:
			for _, s := range ids {
				if s != "" {
					out[s] = struct{}{}
				}
			}
			return out
		case []int64:
			for _, n := range ids {
				out[idString(n)] = struct{}{}
			}
			return out
		case []int:
			for _, n := range ids {
				out[idString(n)] = struct{}{}
			}
			return out
		}
		// Unrecognized shape: fall through to the single-valued key.
	}
	if s, ok := RecordID(rec, "program_id"); ok {
		out[s] = struct{}{}
	}
	return out
}
