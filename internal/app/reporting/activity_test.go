package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentActivity_NewestFirstWithStableTieBreak(t *testing.T) {
	older := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)

	slices := []institutionData{{
		institution: Record{"id": "1"},
		courses: []Record{
			{"id": "c1", "course_number": "CS101", "created_at": older},
		},
		sections: []Record{
			{"id": "s1", "label": "A", "created_at": newer},
			{"id": "s2", "label": "B", "created_at": newer},
		},
		users: []Record{
			{"id": "u1", "email": "a@tu.edu", "created_at": newer},
		},
	}}

	events := recentActivity(slices, 20)
	require.Len(t, events, 4)

	// Ties on the same timestamp order by entity type, then id.
	assert.Equal(t, "section", events[0].EntityType)
	assert.Equal(t, "s1", events[0].EntityID)
	assert.Equal(t, "s2", events[1].EntityID)
	assert.Equal(t, "user", events[2].EntityType)
	assert.Equal(t, "c1", events[3].EntityID)
}

func TestRecentActivity_TruncatesToLimit(t *testing.T) {
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	slice := institutionData{institution: Record{"id": "1"}}
	for i := 0; i < 10; i++ {
		slice.sections = append(slice.sections, Record{
			"id":         string(rune('a' + i)),
			"created_at": base.Add(time.Duration(i) * time.Minute),
		})
	}

	events := recentActivity([]institutionData{slice}, 3)
	require.Len(t, events, 3)
	// The three most recent survive.
	assert.Equal(t, "j", events[0].EntityID)
	assert.Equal(t, "i", events[1].EntityID)
	assert.Equal(t, "h", events[2].EntityID)
}

func TestRecentActivity_SkipsRecordsWithoutTimestamp(t *testing.T) {
	slices := []institutionData{{
		institution: Record{"id": "1"},
		courses: []Record{
			{"id": "c1"},
			{"id": "c2", "created_at": "not a timestamp"},
			{"id": "c3", "created_at": "2026-02-01T00:00:00Z"},
		},
	}}

	events := recentActivity(slices, 20)
	require.Len(t, events, 1)
	assert.Equal(t, "c3", events[0].EntityID)
}

func TestCourseLabel(t *testing.T) {
	assert.Equal(t, "CS101 Intro", courseLabel(Record{"course_number": "CS101", "course_title": "Intro"}))
	assert.Equal(t, "CS101", courseLabel(Record{"course_number": "CS101"}))
	assert.Equal(t, "Intro", courseLabel(Record{"course_title": "Intro"}))
	assert.Equal(t, "", courseLabel(Record{}))
}

func TestTimeField_DriverAndStringForms(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	got, ok := timeField(Record{"created_at": now}, "created_at")
	require.True(t, ok)
	assert.Equal(t, now, got)

	got, ok = timeField(Record{"created_at": &now}, "created_at")
	require.True(t, ok)
	assert.Equal(t, now, got)

	got, ok = timeField(Record{"created_at": "2026-02-01T12:00:00Z"}, "created_at")
	require.True(t, ok)
	assert.True(t, now.Equal(got))

	_, ok = timeField(Record{"created_at": (*time.Time)(nil)}, "created_at")
	assert.False(t, ok)

	_, ok = timeField(Record{}, "created_at")
	assert.False(t, ok)
}
