package transactions

import (
	"fmt"
	"strings"
)

// SortField is a transaction attribute a view can be ordered by
type SortField string

const (
	SortByDate        SortField = "date"
	SortByDescription SortField = "description"
	SortByCategory    SortField = "category"
	SortByAmount      SortField = "amount"
)

// Direction is the sort order
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Sort selects the field and direction of a view
type Sort struct {
	Field     SortField `json:"field"`
	Direction Direction `json:"direction"`
}

// DefaultSort orders by most recent first
func DefaultSort() Sort {
	return Sort{Field: SortByDate, Direction: Descending}
}

// Select returns the sort after the user picks field: the same field flips the
// direction, a new field starts descending.
func (s Sort) Select(field SortField) Sort {
	if field == s.Field {
		return Sort{Field: field, Direction: s.Direction.Flip()}
	}
	return Sort{Field: field, Direction: Descending}
}

// Flip returns the opposite direction
func (d Direction) Flip() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// ParseSort validates user supplied sort parameters. Empty values fall back to
// the default sort.
func ParseSort(field, dir string) (Sort, error) {
	s := DefaultSort()

	if field != "" {
		f := SortField(strings.ToLower(strings.TrimSpace(field)))
		switch f {
		case SortByDate, SortByDescription, SortByCategory, SortByAmount:
			s.Field = f
		default:
			return Sort{}, fmt.Errorf("unsupported sort field %q", field)
		}
	}

	if dir != "" {
		d := Direction(strings.ToLower(strings.TrimSpace(dir)))
		switch d {
		case Ascending, Descending:
			s.Direction = d
		default:
			return Sort{}, fmt.Errorf("unsupported sort direction %q", dir)
		}
	}

	return s, nil
}
