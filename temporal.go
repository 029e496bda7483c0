package recast

import (
	"time"

	"github.com/recastlab/recast/schema"
)

// Temporal builtins are named references intercepted before catalog lookup:
// they denote externally-defined leaf values with textual interchange forms
// rather than structural shapes. Each accepts the standard string form or a
// value already in the target representation.
const (
	moduleDate        = "date"
	moduleDateTime    = "datetime"
	moduleUTCDateTime = "utc_datetime"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02T15:04:05"
)

// decodeTemporal reports (result, handled, err). handled is false when the
// ref is not a temporal builtin and catalog resolution should proceed.
func decodeTemporal(path string, v any, t schema.RefType) (any, bool, error) {
	if t.Name != DefaultTypeName {
		return nil, false, nil
	}
	switch t.Module {
	case moduleDate:
		out, err := decodeDate(path, v)
		return out, true, err
	case moduleDateTime:
		out, err := decodeDateTime(path, v)
		return out, true, err
	case moduleUTCDateTime:
		out, err := decodeUTCDateTime(path, v)
		return out, true, err
	default:
		return nil, false, nil
	}
}

func decodeDate(path string, v any) (any, error) {
	switch s := v.(type) {
	case Date:
		return s, nil
	case string:
		t, err := time.Parse(layoutDate, s)
		if err != nil {
			return nil, failGot(path, CodeInvalidFormat, "ISO 8601 date (2006-01-02)", v)
		}
		return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
	default:
		return nil, failGot(path, CodeInvalidType, "date", v)
	}
}

func decodeDateTime(path string, v any) (any, error) {
	switch s := v.(type) {
	case DateTime:
		return s, nil
	case string:
		t, err := parseLocalDateTime(s)
		if err != nil {
			return nil, failGot(path, CodeInvalidFormat, "ISO 8601 datetime (2006-01-02T15:04:05)", v)
		}
		return DateTime{
			Date: Date{Year: t.Year(), Month: t.Month(), Day: t.Day()},
			Hour: t.Hour(), Min: t.Minute(), Sec: t.Second(), Nsec: t.Nanosecond(),
		}, nil
	default:
		return nil, failGot(path, CodeInvalidType, "datetime", v)
	}
}

func decodeUTCDateTime(path string, v any) (any, error) {
	switch s := v.(type) {
	case time.Time:
		return s, nil
	case string:
		t, err := parseRFC3339(s)
		if err != nil {
			return nil, failGot(path, CodeInvalidFormat, "RFC3339 datetime", v)
		}
		return t, nil
	default:
		return nil, failGot(path, CodeInvalidType, "zoned datetime", v)
	}
}

func parseLocalDateTime(s string) (time.Time, error) {
	// Fractional seconds are optional.
	t, err := time.Parse(layoutDateTime, s)
	if err != nil {
		if t2, err2 := time.Parse(layoutDateTime+".999999999", s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}
