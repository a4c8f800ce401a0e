// Package jobsearch holds the faceted job search model shared by the
// listing endpoint and its clients: the filter state, its translation to
// and from a flat query string, and the pagination coordinator.
package jobsearch

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	MinSalary = 0
	MaxSalary = 200000
)

type RemoteType string

const (
	RemoteOnsite RemoteType = "ONSITE"
	RemoteHybrid RemoteType = "HYBRID"
	RemoteRemote RemoteType = "REMOTE"
)

var RemoteTypes = []RemoteType{RemoteOnsite, RemoteHybrid, RemoteRemote}

type JobType string

const (
	JobFullTime   JobType = "FULL_TIME"
	JobPartTime   JobType = "PART_TIME"
	JobContract   JobType = "CONTRACT"
	JobInternship JobType = "INTERNSHIP"
	JobFreelance  JobType = "FREELANCE"
)

var JobTypes = []JobType{JobFullTime, JobPartTime, JobContract, JobInternship, JobFreelance}

type PostedWithin string

const (
	PostedAny     PostedWithin = ""
	PostedToday   PostedWithin = "today"
	PostedWeek    PostedWithin = "week"
	PostedMonth   PostedWithin = "month"
	Posted3Months PostedWithin = "3months"
)

var PostedWithinValues = []PostedWithin{PostedAny, PostedToday, PostedWeek, PostedMonth, Posted3Months}

type SortBy string

const (
	SortRelevance  SortBy = "relevance"
	SortNewest     SortBy = "newest"
	SortOldest     SortBy = "oldest"
	SortSalaryHigh SortBy = "salary_high"
	SortSalaryLow  SortBy = "salary_low"
	SortTitle      SortBy = "title"
	SortCompany    SortBy = "company"
	SortViews      SortBy = "views"
)

var SortKeys = []SortBy{SortRelevance, SortNewest, SortOldest, SortSalaryHigh, SortSalaryLow, SortTitle, SortCompany, SortViews}

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// SalaryRange is an ordered [min, max] pair in whole currency units.
type SalaryRange [2]int

func DefaultSalaryRange() SalaryRange {
	return SalaryRange{MinSalary, MaxSalary}
}

func (r SalaryRange) IsDefault() bool {
	return r == DefaultSalaryRange()
}

// Field names a filter facet. Its value is also the query-string key.
type Field string

const (
	FieldQuery        Field = "query"
	FieldLocation     Field = "location"
	FieldRemoteType   Field = "remoteType"
	FieldJobType      Field = "jobType"
	FieldSalaryRange  Field = "salaryRange"
	FieldExperience   Field = "experience"
	FieldIndustry     Field = "industry"
	FieldSkills       Field = "skills"
	FieldEducation    Field = "education"
	FieldLanguages    Field = "languages"
	FieldBenefits     Field = "benefits"
	FieldCompanySize  Field = "companySize"
	FieldFeatured     Field = "featured"
	FieldUrgent       Field = "urgent"
	FieldPostedWithin Field = "postedWithin"
	FieldSortBy       Field = "sortBy"
	FieldSortOrder    Field = "sortOrder"
)

// Fields lists every facet in query-string order.
var Fields = []Field{
	FieldQuery, FieldLocation, FieldRemoteType, FieldJobType, FieldSalaryRange,
	FieldExperience, FieldIndustry, FieldSkills, FieldEducation, FieldLanguages,
	FieldBenefits, FieldCompanySize, FieldFeatured, FieldUrgent, FieldPostedWithin,
	FieldSortBy, FieldSortOrder,
}

var (
	ErrUnknownField = errors.New("unknown filter field")
	ErrFieldType    = errors.New("wrong value type for filter field")
	ErrNotSequence  = errors.New("filter field is not a sequence")
)

// Filters is the complete set of user-chosen search constraints.
type Filters struct {
	Query        string       `json:"query"`
	Location     string       `json:"location"`
	RemoteType   []string     `json:"remoteType"`
	JobType      []string     `json:"jobType"`
	SalaryRange  SalaryRange  `json:"salaryRange"`
	Experience   []string     `json:"experience"`
	Industry     []string     `json:"industry"`
	Skills       []string     `json:"skills"`
	Education    []string     `json:"education"`
	Languages    []string     `json:"languages"`
	Benefits     []string     `json:"benefits"`
	CompanySize  []string     `json:"companySize"`
	Featured     TriState     `json:"featured"`
	Urgent       TriState     `json:"urgent"`
	PostedWithin PostedWithin `json:"postedWithin"`
	SortBy       SortBy       `json:"sortBy"`
	SortOrder    SortOrder    `json:"sortOrder"`
}

func DefaultFilters() Filters {
	return Filters{
		RemoteType:  []string{},
		JobType:     []string{},
		SalaryRange: DefaultSalaryRange(),
		Experience:  []string{},
		Industry:    []string{},
		Skills:      []string{},
		Education:   []string{},
		Languages:   []string{},
		Benefits:    []string{},
		CompanySize: []string{},
		SortBy:      SortRelevance,
		SortOrder:   OrderDesc,
	}
}

// Clear resets every facet to its default.
func (f *Filters) Clear() {
	*f = DefaultFilters()
}

func (f Filters) Clone() Filters {
	out := f
	for _, field := range sequenceFields {
		src := *f.sequence(field)
		*out.sequence(field) = append(make([]string, 0, len(src)), src...)
	}
	return out
}

// IsDefault reports whether no facet differs from its default.
func (f Filters) IsDefault() bool {
	return len(EncodeFilters(f)) == 0
}

// Update replaces one field. Only the Go type of value is checked.
func (f *Filters) Update(field Field, value any) error {
	switch field {
	case FieldQuery:
		return setString(&f.Query, field, value)
	case FieldLocation:
		return setString(&f.Location, field, value)
	case FieldSalaryRange:
		switch v := value.(type) {
		case SalaryRange:
			f.SalaryRange = v
		case [2]int:
			f.SalaryRange = SalaryRange(v)
		case []int:
			if len(v) != 2 {
				return fmt.Errorf("%w: %s wants 2 values, got %d", ErrFieldType, field, len(v))
			}
			f.SalaryRange = SalaryRange{v[0], v[1]}
		default:
			return typeError(field, value)
		}
		return nil
	case FieldFeatured:
		return setTriState(&f.Featured, field, value)
	case FieldUrgent:
		return setTriState(&f.Urgent, field, value)
	case FieldPostedWithin:
		switch v := value.(type) {
		case PostedWithin:
			f.PostedWithin = v
		case string:
			f.PostedWithin = PostedWithin(v)
		default:
			return typeError(field, value)
		}
		return nil
	case FieldSortBy:
		switch v := value.(type) {
		case SortBy:
			f.SortBy = v
		case string:
			f.SortBy = SortBy(v)
		default:
			return typeError(field, value)
		}
		return nil
	case FieldSortOrder:
		switch v := value.(type) {
		case SortOrder:
			f.SortOrder = v
		case string:
			f.SortOrder = SortOrder(v)
		default:
			return typeError(field, value)
		}
		return nil
	}

	seq := f.sequence(field)
	if seq == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	v, ok := value.([]string)
	if !ok {
		return typeError(field, value)
	}
	*seq = append(make([]string, 0, len(v)), v...)
	return nil
}

// Toggle adds value to a sequence field when absent and removes it when
// present. Insertion order is kept.
func (f *Filters) Toggle(field Field, value string) error {
	seq := f.sequence(field)
	if seq == nil {
		if slices.Contains(Fields, field) {
			return fmt.Errorf("%w: %q", ErrNotSequence, field)
		}
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	// Copies of a Filters share backing arrays; never write through them.
	next := make([]string, 0, len(*seq)+1)
	if i := slices.Index(*seq, value); i >= 0 {
		next = append(append(next, (*seq)[:i]...), (*seq)[i+1:]...)
	} else {
		next = append(append(next, *seq...), value)
	}
	*seq = next
	return nil
}

// Values returns the contents of a sequence field, or nil for scalars.
func (f Filters) Values(field Field) []string {
	seq := f.sequence(field)
	if seq == nil {
		return nil
	}
	return *seq
}

var sequenceFields = []Field{
	FieldRemoteType, FieldJobType, FieldExperience, FieldIndustry, FieldSkills,
	FieldEducation, FieldLanguages, FieldBenefits, FieldCompanySize,
}

func IsSequence(field Field) bool {
	return slices.Contains(sequenceFields, field)
}

func (f *Filters) sequence(field Field) *[]string {
	switch field {
	case FieldRemoteType:
		return &f.RemoteType
	case FieldJobType:
		return &f.JobType
	case FieldExperience:
		return &f.Experience
	case FieldIndustry:
		return &f.Industry
	case FieldSkills:
		return &f.Skills
	case FieldEducation:
		return &f.Education
	case FieldLanguages:
		return &f.Languages
	case FieldBenefits:
		return &f.Benefits
	case FieldCompanySize:
		return &f.CompanySize
	default:
		return nil
	}
}

func setString(dst *string, field Field, value any) error {
	v, ok := value.(string)
	if !ok {
		return typeError(field, value)
	}
	*dst = v
	return nil
}

func setTriState(dst *TriState, field Field, value any) error {
	switch v := value.(type) {
	case TriState:
		*dst = v
	case bool:
		*dst = TriFrom(v)
	case *bool:
		if v == nil {
			*dst = Unset
			return nil
		}
		*dst = TriFrom(*v)
	default:
		return typeError(field, value)
	}
	return nil
}

func typeError(field Field, value any) error {
	return fmt.Errorf("%w: %s got %T", ErrFieldType, field, value)
}

// ValidationError lists every facet that failed Validate.
type ValidationError struct {
	Problems map[Field]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "invalid filters"
	}
	parts := make([]string, 0, len(e.Problems))
	for _, field := range Fields {
		if p, ok := e.Problems[field]; ok {
			parts = append(parts, string(field)+": "+p)
		}
	}
	return "invalid filters: " + strings.Join(parts, "; ")
}

// Validate checks enum membership and the salary range. The client model
// never calls it; the listing endpoint does.
func (f Filters) Validate() error {
	problems := map[Field]string{}

	for _, v := range f.RemoteType {
		if !slices.Contains(RemoteTypes, RemoteType(v)) {
			problems[FieldRemoteType] = fmt.Sprintf("unknown value %q", v)
			break
		}
	}
	for _, v := range f.JobType {
		if !slices.Contains(JobTypes, JobType(v)) {
			problems[FieldJobType] = fmt.Sprintf("unknown value %q", v)
			break
		}
	}
	if !slices.Contains(PostedWithinValues, f.PostedWithin) {
		problems[FieldPostedWithin] = fmt.Sprintf("unknown value %q", f.PostedWithin)
	}
	if f.SortBy != "" && !slices.Contains(SortKeys, f.SortBy) {
		problems[FieldSortBy] = fmt.Sprintf("unknown value %q", f.SortBy)
	}
	if f.SortOrder != "" && f.SortOrder != OrderAsc && f.SortOrder != OrderDesc {
		problems[FieldSortOrder] = fmt.Sprintf("unknown value %q", f.SortOrder)
	}
	if f.SalaryRange[0] < 0 || f.SalaryRange[1] < 0 {
		problems[FieldSalaryRange] = "must not be negative"
	} else if f.SalaryRange[0] > f.SalaryRange[1] {
		problems[FieldSalaryRange] = "min must not exceed max"
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
