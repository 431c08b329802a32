package reporting

import (
	"sort"
	"time"
)

// ActivityEvent is one row of the site-wide recent-activity feed.
type ActivityEvent struct {
	EntityType    string    `json:"entity_type"`
	EntityID      string    `json:"entity_id"`
	Label         string    `json:"label"`
	InstitutionID string    `json:"institution_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// recentActivity builds a head-truncated feed of recent course, section
// and user events across every slice. Records without a parseable
// created_at are skipped. Ordering is newest first with a stable
// type/id tie-break so repeated runs over unchanged data produce the
// same feed.
func recentActivity(slices []institutionData, limit int) []ActivityEvent {
	events := []ActivityEvent{}
	for _, slice := range slices {
		institutionID, _ := RecordID(slice.institution, institutionKeys...)

		for _, course := range slice.courses {
			appendEvent(&events, "course", course, courseKeys, courseLabel(course), institutionID)
		}
		for _, section := range slice.sections {
			appendEvent(&events, "section", section, sectionKeys, stringField(section, "label"), institutionID)
		}
		for _, user := range slice.users {
			appendEvent(&events, "user", user, userKeys, displayNameOf(user), institutionID)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].OccurredAt.Equal(events[j].OccurredAt) {
			return events[i].OccurredAt.After(events[j].OccurredAt)
		}
		if events[i].EntityType != events[j].EntityType {
			return events[i].EntityType < events[j].EntityType
		}
		return events[i].EntityID < events[j].EntityID
	})

	if limit >= 0 && len(events) > limit {
		events = events[:limit]
	}
	return events
}

func appendEvent(events *[]ActivityEvent, entityType string, rec Record, keys []string, label, institutionID string) {
	id, ok := RecordID(rec, keys...)
	if !ok {
		return
	}
	occurredAt, ok := timeField(rec, "created_at")
	if !ok {
		return
	}
	*events = append(*events, ActivityEvent{
		EntityType:    entityType,
		EntityID:      id,
		Label:         label,
		InstitutionID: institutionID,
		OccurredAt:    occurredAt,
	})
}

func courseLabel(course Record) string {
	number := stringField(course, "course_number")
	title := stringField(course, "course_title")
	switch {
	case number != "" && title != "":
		return number + " " + title
	case number != "":
		return number
	default:
		return title
	}
}

// timeField reads a timestamp that may arrive as a time.Time from the
// driver or as an RFC 3339 string from older exports.
func timeField(rec Record, key string) (time.Time, bool) {
	switch v := rec[key].(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
