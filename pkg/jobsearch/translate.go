package jobsearch

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100

	ParamPage  = "page"
	ParamLimit = "limit"
)

const listSeparator = ","

var ErrInvalidQuery = errors.New("invalid search query")

// Page is the pagination position merged into a listing request.
type Page struct {
	Number int `json:"page"`
	Size   int `json:"limit"`
}

func FirstPage() Page {
	return Page{Number: 1, Size: DefaultPageSize}
}

func (p Page) normalized() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	return p
}

// Offset is the zero-based row offset of the page.
func (p Page) Offset() int {
	p = p.normalized()
	return (p.Number - 1) * p.Size
}

// Encode flattens filters into query values. Empty sequences and scalars
// equal to their empty sentinel are left out; page and limit are always
// present.
func Encode(f Filters, page Page) url.Values {
	v := EncodeFilters(f)
	page = page.normalized()
	v.Set(ParamPage, strconv.Itoa(page.Number))
	v.Set(ParamLimit, strconv.Itoa(page.Size))
	return v
}

// EncodeFilters is Encode without the pagination keys.
func EncodeFilters(f Filters) url.Values {
	v := url.Values{}
	for _, field := range Fields {
		if s, ok := encodeField(f, field); ok {
			v.Set(string(field), s)
		}
	}
	return v
}

// QueryString is the URL-encoded form of Encode.
func QueryString(f Filters, page Page) string {
	return Encode(f, page).Encode()
}

func encodeField(f Filters, field Field) (string, bool) {
	if IsSequence(field) {
		seq := f.Values(field)
		if len(seq) == 0 {
			return "", false
		}
		return strings.Join(seq, listSeparator), true
	}

	switch field {
	case FieldQuery:
		return f.Query, f.Query != ""
	case FieldLocation:
		return f.Location, f.Location != ""
	case FieldSalaryRange:
		if f.SalaryRange.IsDefault() {
			return "", false
		}
		return strconv.Itoa(f.SalaryRange[0]) + listSeparator + strconv.Itoa(f.SalaryRange[1]), true
	case FieldFeatured:
		return f.Featured.String(), f.Featured.IsSet()
	case FieldUrgent:
		return f.Urgent.String(), f.Urgent.IsSet()
	case FieldPostedWithin:
		return string(f.PostedWithin), f.PostedWithin != PostedAny
	case FieldSortBy:
		return string(f.SortBy), f.SortBy != "" && f.SortBy != SortRelevance
	case FieldSortOrder:
		return string(f.SortOrder), f.SortOrder != "" && f.SortOrder != OrderDesc
	}
	return "", false
}

// Decode is the lenient inverse of Encode: unknown keys are ignored and
// unparsable values fall back to their defaults. query and location are
// trimmed and the lower-case enums postedWithin, sortBy and sortOrder are
// lowercased; sequence tokens are kept as given, unknown values included.
func Decode(values url.Values) (Filters, Page) {
	f, p, _ := decode(values, false)
	return f, p
}

// ParseQuery is the strict form of Decode used by the listing endpoint.
// Malformed numbers, booleans and salary ranges are reported; enum
// membership is left to Filters.Validate.
func ParseQuery(values url.Values) (Filters, Page, error) {
	return decode(values, true)
}

// ParseFiltersString decodes a stored query string such as the one kept
// by a saved search.
func ParseFiltersString(raw string) (Filters, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return Filters{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	f, _, err := decode(values, true)
	return f, err
}

func decode(values url.Values, strict bool) (Filters, Page, error) {
	f := DefaultFilters()
	page := FirstPage()
	var errs []string

	f.Query = strings.TrimSpace(values.Get(string(FieldQuery)))
	f.Location = strings.TrimSpace(values.Get(string(FieldLocation)))

	for _, field := range sequenceFields {
		raw, ok := values[string(field)]
		if !ok {
			continue
		}
		*f.sequence(field) = splitList(raw)
	}

	if raw := values.Get(string(FieldSalaryRange)); raw != "" {
		r, err := parseSalaryRange(raw)
		if err != nil {
			errs = append(errs, err.Error())
		} else {
			f.SalaryRange = r
		}
	}

	for _, field := range []Field{FieldFeatured, FieldUrgent} {
		t, err := ParseTriState(values.Get(string(field)))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", field, err))
			continue
		}
		if field == FieldFeatured {
			f.Featured = t
		} else {
			f.Urgent = t
		}
	}

	if s := values.Get(string(FieldPostedWithin)); s != "" {
		f.PostedWithin = PostedWithin(strings.ToLower(s))
	}
	if s := values.Get(string(FieldSortBy)); s != "" {
		f.SortBy = SortBy(strings.ToLower(s))
	}
	if s := values.Get(string(FieldSortOrder)); s != "" {
		f.SortOrder = SortOrder(strings.ToLower(s))
	}

	if s := values.Get(ParamPage); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			errs = append(errs, fmt.Sprintf("page: invalid value %q", s))
		} else {
			page.Number = n
		}
	}
	if s := values.Get(ParamLimit); s != "" {
		n, err := strconv.Atoi(s)
		switch {
		case err != nil || n < 1:
			errs = append(errs, fmt.Sprintf("limit: invalid value %q", s))
		case n > MaxPageSize:
			errs = append(errs, fmt.Sprintf("limit: must not exceed %d", MaxPageSize))
			page.Size = MaxPageSize
		default:
			page.Size = n
		}
	}

	if strict && len(errs) > 0 {
		return f, page, fmt.Errorf("%w: %s", ErrInvalidQuery, strings.Join(errs, "; "))
	}
	return f, page, nil
}

func splitList(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		for _, p := range strings.Split(r, listSeparator) {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

func parseSalaryRange(raw string) (SalaryRange, error) {
	parts := strings.Split(raw, listSeparator)
	if len(parts) != 2 {
		return SalaryRange{}, fmt.Errorf("salaryRange: want two values, got %q", raw)
	}
	lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return SalaryRange{}, fmt.Errorf("salaryRange: invalid min %q", parts[0])
	}
	hi, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return SalaryRange{}, fmt.Errorf("salaryRange: invalid max %q", parts[1])
	}
	return SalaryRange{lo, hi}, nil
}
