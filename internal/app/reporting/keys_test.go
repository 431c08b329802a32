package reporting

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordID_PrefersEntitySpecificKey(t *testing.T) {
	rec := Record{"course_id": int64(7), "id": int64(99)}

	id, ok := RecordID(rec, courseKeys...)
	require.True(t, ok)
	assert.Equal(t, "7", id)
}

func TestRecordID_FallsBackToGenericKey(t *testing.T) {
	rec := Record{"id": "42"}

	id, ok := RecordID(rec, courseKeys...)
	require.True(t, ok)
	assert.Equal(t, "42", id)
}

func TestRecordID_SkipsEmptyAndNilValues(t *testing.T) {
	rec := Record{"course_id": nil, "id": ""}

	_, ok := RecordID(rec, courseKeys...)
	assert.False(t, ok)
}

func TestRecordID_NoUsableKey(t *testing.T) {
	_, ok := RecordID(Record{"name": "CS 101"}, courseKeys...)
	assert.False(t, ok)
}

func TestIDString_CoercesNumericForms(t *testing.T) {
	// JSON-decoded ids arrive as float64, driver-decoded as int64; both
	// must land on the same canonical string.
	assert.Equal(t, "5", idString(float64(5)))
	assert.Equal(t, "5", idString(int64(5)))
	assert.Equal(t, "5", idString(int(5)))
	assert.Equal(t, "5", idString(int32(5)))
	assert.Equal(t, "5", idString(json.Number("5")))
	assert.Equal(t, "5", idString("5"))
}

func TestIDString_NonWholeFloatKeepsFraction(t *testing.T) {
	assert.Equal(t, "5.5", idString(5.5))
}

func TestIDString_Nil(t *testing.T) {
	assert.Equal(t, "", idString(nil))
}

func TestIndexByKey_LastWriteWinsAndSkipsKeyless(t *testing.T) {
	records := []Record{
		{"id": "1", "name": "first"},
		{"name": "no key"},
		{"id": "1", "name": "second"},
		{"id": "2", "name": "other"},
	}

	index := indexByKey(records, programKeys...)
	require.Len(t, index, 2)
	assert.Equal(t, "second", index["1"]["name"])
	assert.Equal(t, "other", index["2"]["name"])
}

func TestGroupBy_PreservesOrderWithinGroup(t *testing.T) {
	sections := []Record{
		{"id": "s1", "course_id": "c1"},
		{"id": "s2", "course_id": "c2"},
		{"id": "s3", "course_id": "c1"},
		{"id": "s4"}, // no course, skipped
	}

	groups := groupBy(sections, sectionCourseID)
	require.Len(t, groups, 2)
	require.Len(t, groups["c1"], 2)
	assert.Equal(t, "s1", groups["c1"][0]["id"])
	assert.Equal(t, "s3", groups["c1"][1]["id"])
}

func TestProgramIDSet_MultiValuedWins(t *testing.T) {
	rec := Record{
		"program_ids": []any{float64(1), float64(2)},
		"program_id":  "9",
	}

	set := programIDSet(rec)
	assert.Equal(t, map[string]struct{}{"1": {}, "2": {}}, set)
}

func TestProgramIDSet_SingleValuedFallback(t *testing.T) {
	set := programIDSet(Record{"program_id": int64(3)})
	assert.Equal(t, map[string]struct{}{"3": {}}, set)
}

func TestProgramIDSet_DriverSliceTypes(t *testing.T) {
	assert.Equal(t, map[string]struct{}{"1": {}, "2": {}},
		programIDSet(Record{"program_ids": []int64{1, 2}}))
	assert.Equal(t, map[string]struct{}{"a": {}},
		programIDSet(Record{"program_ids": []string{"a", ""}}))
}

func TestProgramIDSet_NeitherPresent(t *testing.T) {
	assert.Empty(t, programIDSet(Record{"id": "1"}))
}

func TestAnnotated_OverlayShadowsBase(t *testing.T) {
	base := Record{"id": "1", "name": "base name"}
	a := Annotate(base).Set("name", "overlay name").Set("extra", 7)

	v, ok := a.Get("name")
	require.True(t, ok)
	assert.Equal(t, "overlay name", v)

	v, ok = a.Get("id")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	// The base record itself must stay untouched.
	assert.Equal(t, "base name", base["name"])
	_, present := base["extra"]
	assert.False(t, present)
}

func TestAnnotated_MarshalFlattens(t *testing.T) {
	a := Annotate(Record{"id": "1", "name": "base"}).Set("name", "shadowed")

	raw, err := json.Marshal(a)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "shadowed", decoded["name"])
	assert.Equal(t, "1", decoded["id"])
}
