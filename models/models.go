package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownSortMode is returned by ParseSortMode for values the sort control
// does not offer.
var ErrUnknownSortMode = errors.New("unknown sort mode")

type Credentials struct {
	Username string
	Password string
}

type Field string

const (
	FieldName  Field = "name"
	FieldPrice Field = "price"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortMode is one option of the inventory sort control. Value is the option
// value the control accepts.
type SortMode struct {
	Field     Field
	Direction Direction
	Value     string
}

var (
	SortNameAsc   = SortMode{Field: FieldName, Direction: Asc, Value: "az"}
	SortNameDesc  = SortMode{Field: FieldName, Direction: Desc, Value: "za"}
	SortPriceAsc  = SortMode{Field: FieldPrice, Direction: Asc, Value: "lohi"}
	SortPriceDesc = SortMode{Field: FieldPrice, Direction: Desc, Value: "hilo"}
)

var SortModes = []SortMode{SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc}

func (m SortMode) String() string {
	return fmt.Sprintf("%s-%s", m.Field, m.Direction)
}

// ParseSortMode accepts either the option value ("za") or the
// field-direction form ("name-desc").
func ParseSortMode(s string) (SortMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range SortModes {
		if s == m.Value || s == m.String() {
			return m, nil
		}
	}
	return SortMode{}, fmt.Errorf("%w: %q", ErrUnknownSortMode, s)
}

// Case is one independent test case of the suite.
type Case struct {
	Name string
	Mode SortMode
}

type Dropped struct {
	Position int
	Raw      string
	Reason   string
}

type CheckResult struct {
	RunID      string
	Case       string
	Mode       SortMode
	Raw        []string
	Values     []string
	Dropped    []Dropped
	Passed     bool
	Divergence int // first diverging position, -1 when none
	Err        string
	Duration   time.Duration
	CheckedAt  time.Time
}
