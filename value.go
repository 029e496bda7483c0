package recast

import (
	"fmt"
	"time"

	"github.com/recastlab/recast/sym"
)

// Tuple is a fixed-arity positional value, distinct from []any so that
// schemas can tell tuples and lists apart.
type Tuple []any

// Record is a tagged, field-addressed value. Name is its kind discriminant;
// Fields are keyed by interned symbols.
type Record struct {
	Name   sym.Symbol
	Fields map[sym.Symbol]any
}

// Date is a zone-less calendar date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DateTime is a zone-less wall-clock timestamp.
type DateTime struct {
	Date Date
	Hour int
	Min  int
	Sec  int
	Nsec int
}

func (dt DateTime) String() string {
	s := fmt.Sprintf("%sT%02d:%02d:%02d", dt.Date, dt.Hour, dt.Min, dt.Sec)
	if dt.Nsec != 0 {
		s += fmt.Sprintf(".%09d", dt.Nsec)
	}
	return s
}
