package jobsearch

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFilters(t *testing.T) {
	f := DefaultFilters()

	assert.Equal(t, "", f.Query)
	assert.Equal(t, SalaryRange{0, 200000}, f.SalaryRange)
	assert.Equal(t, SortRelevance, f.SortBy)
	assert.Equal(t, OrderDesc, f.SortOrder)
	assert.Equal(t, Unset, f.Featured)
	assert.Equal(t, Unset, f.Urgent)
	assert.Empty(t, f.Skills)
	assert.True(t, f.IsDefault())
}

func TestFilters_Update(t *testing.T) {
	f := DefaultFilters()

	require.NoError(t, f.Update(FieldQuery, "developer"))
	require.NoError(t, f.Update(FieldLocation, "Nicosia"))
	require.NoError(t, f.Update(FieldJobType, []string{"FULL_TIME"}))
	require.NoError(t, f.Update(FieldSalaryRange, []int{30000, 60000}))
	require.NoError(t, f.Update(FieldUrgent, true))
	require.NoError(t, f.Update(FieldPostedWithin, "week"))
	require.NoError(t, f.Update(FieldSortBy, SortNewest))

	assert.Equal(t, "developer", f.Query)
	assert.Equal(t, "Nicosia", f.Location)
	assert.Equal(t, []string{"FULL_TIME"}, f.JobType)
	assert.Equal(t, SalaryRange{30000, 60000}, f.SalaryRange)
	assert.Equal(t, True, f.Urgent)
	assert.Equal(t, PostedWeek, f.PostedWithin)
	assert.Equal(t, SortNewest, f.SortBy)
	assert.False(t, f.IsDefault())
}

func TestFilters_Update_TypeOnly(t *testing.T) {
	f := DefaultFilters()

	err := f.Update(FieldQuery, 42)
	assert.True(t, errors.Is(err, ErrFieldType))

	err = f.Update(FieldSkills, "Go")
	assert.True(t, errors.Is(err, ErrFieldType))

	err = f.Update(Field("colour"), "red")
	assert.True(t, errors.Is(err, ErrUnknownField))

	// semantic nonsense is accepted as-is
	require.NoError(t, f.Update(FieldSalaryRange, SalaryRange{90000, 10}))
	require.NoError(t, f.Update(FieldSortBy, "whatever"))
	assert.Equal(t, SalaryRange{90000, 10}, f.SalaryRange)
}

func TestFilters_Update_CopiesSlices(t *testing.T) {
	f := DefaultFilters()
	in := []string{"Go", "SQL"}
	require.NoError(t, f.Update(FieldSkills, in))

	in[0] = "Rust"
	assert.Equal(t, []string{"Go", "SQL"}, f.Skills)
}

func TestFilters_Toggle_LeavesCopiesAlone(t *testing.T) {
	f := DefaultFilters()
	require.NoError(t, f.Toggle(FieldSkills, "go"))
	require.NoError(t, f.Toggle(FieldSkills, "rust"))

	g := f
	require.NoError(t, g.Toggle(FieldSkills, "go"))
	assert.Equal(t, []string{"go", "rust"}, f.Skills)
	assert.Equal(t, []string{"rust"}, g.Skills)

	f.Skills = make([]string, 1, 4)
	f.Skills[0] = "go"
	h := f
	require.NoError(t, h.Toggle(FieldSkills, "sql"))
	require.NoError(t, f.Toggle(FieldSkills, "rust"))
	assert.Equal(t, []string{"go", "sql"}, h.Skills)
	assert.Equal(t, []string{"go", "rust"}, f.Skills)
	assert.Equal(t, "skills=go%2Crust", EncodeFilters(f).Encode())
}

func TestFilters_Toggle_TwiceRestores(t *testing.T) {
	for _, field := range sequenceFields {
		t.Run(string(field), func(t *testing.T) {
			f := DefaultFilters()
			require.NoError(t, f.Update(field, []string{"a", "b"}))
			before := append([]string(nil), f.Values(field)...)

			require.NoError(t, f.Toggle(field, "c"))
			assert.Equal(t, []string{"a", "b", "c"}, f.Values(field))
			require.NoError(t, f.Toggle(field, "c"))
			assert.ElementsMatch(t, before, f.Values(field))

			require.NoError(t, f.Toggle(field, "a"))
			require.NoError(t, f.Toggle(field, "a"))
			assert.ElementsMatch(t, before, f.Values(field))
		})
	}
}

func TestFilters_Toggle_Errors(t *testing.T) {
	f := DefaultFilters()
	assert.ErrorIs(t, f.Toggle(FieldQuery, "x"), ErrNotSequence)
	assert.ErrorIs(t, f.Toggle(Field("nope"), "x"), ErrUnknownField)
}

func TestFilters_Clear(t *testing.T) {
	f := DefaultFilters()
	require.NoError(t, f.Update(FieldQuery, "go"))
	require.NoError(t, f.Toggle(FieldBenefits, "gym"))
	require.NoError(t, f.Update(FieldFeatured, false))

	f.Clear()
	assert.Equal(t, DefaultFilters(), f)
}

func TestFilters_Clone(t *testing.T) {
	f := DefaultFilters()
	require.NoError(t, f.Toggle(FieldSkills, "Go"))

	c := f.Clone()
	require.NoError(t, c.Toggle(FieldSkills, "SQL"))

	assert.Equal(t, []string{"Go"}, f.Skills)
	assert.Equal(t, []string{"Go", "SQL"}, c.Skills)
}

func TestFilters_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *Filters)
		invalid Field
	}{
		{name: "defaults", mutate: func(*Filters) {}},
		{name: "bad remote type", mutate: func(f *Filters) { f.RemoteType = []string{"MOON"} }, invalid: FieldRemoteType},
		{name: "bad job type", mutate: func(f *Filters) { f.JobType = []string{"FULL_TIME", "gig"} }, invalid: FieldJobType},
		{name: "bad posted window", mutate: func(f *Filters) { f.PostedWithin = "year" }, invalid: FieldPostedWithin},
		{name: "bad sort key", mutate: func(f *Filters) { f.SortBy = "random" }, invalid: FieldSortBy},
		{name: "bad sort order", mutate: func(f *Filters) { f.SortOrder = "up" }, invalid: FieldSortOrder},
		{name: "inverted salary", mutate: func(f *Filters) { f.SalaryRange = SalaryRange{5, 1} }, invalid: FieldSalaryRange},
		{name: "negative salary", mutate: func(f *Filters) { f.SalaryRange = SalaryRange{-1, 1} }, invalid: FieldSalaryRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFilters()
			tt.mutate(&f)
			err := f.Validate()
			if tt.invalid == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Problems, tt.invalid)
			assert.Contains(t, err.Error(), string(tt.invalid))
		})
	}
}

func TestTriState_JSON(t *testing.T) {
	type wrap struct {
		V TriState `json:"v"`
	}
	for _, tc := range []struct {
		in   TriState
		want string
	}{
		{Unset, `{"v":null}`},
		{True, `{"v":true}`},
		{False, `{"v":false}`},
	} {
		b, err := json.Marshal(wrap{V: tc.in})
		require.NoError(t, err)
		assert.JSONEq(t, tc.want, string(b))

		var back wrap
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, tc.in, back.V)
	}
}

func TestParseTriState(t *testing.T) {
	v, err := ParseTriState("")
	require.NoError(t, err)
	assert.Equal(t, Unset, v)

	v, err = ParseTriState("TRUE")
	require.NoError(t, err)
	assert.Equal(t, True, v)

	v, err = ParseTriState("0")
	require.NoError(t, err)
	assert.Equal(t, False, v)

	_, err = ParseTriState("maybe")
	assert.Error(t, err)

	assert.Nil(t, Unset.Ptr())
	require.NotNil(t, False.Ptr())
	assert.False(t, *False.Ptr())
}
