package tablestate

import (
	"cmp"
	"fmt"
	"math"
	"strings"
	"time"
)

// SelectColumnID is the id of the injected row selection column.
const SelectColumnID = "_select"

// Column describes one column of rows of type T.
type Column[T any] struct {
	ID         string
	Header     string
	Accessor   func(T) any
	Sortable   bool
	Searchable bool
	// Pinned columns cannot be hidden.
	Pinned bool
}

// Value returns the raw cell value of row for the column.
func (c Column[T]) Value(row T) any {
	if c.Accessor == nil {
		return nil
	}
	return c.Accessor(row)
}

// Text renders the cell value as a string.
func (c Column[T]) Text(row T) string {
	return FormatValue(c.Value(row))
}

func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case *string:
		if val == nil {
			return ""
		}
		return *val
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(time.DateOnly)
	case *time.Time:
		if val == nil || val.IsZero() {
			return ""
		}
		return val.Format(time.DateOnly)
	case []string:
		return strings.Join(val, ", ")
	default:
		return fmt.Sprint(val)
	}
}

// ColumnIDs returns the ids of columns in order.
func ColumnIDs[T any](columns []Column[T]) []string {
	ids := make([]string, 0, len(columns))
	for _, c := range columns {
		ids = append(ids, c.ID)
	}
	return ids
}

// SortableColumnIDs returns the ids of sortable columns in order.
func SortableColumnIDs[T any](columns []Column[T]) []string {
	var ids []string
	for _, c := range columns {
		if c.Sortable {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// SearchableColumnIDs lists the ids of columns with Searchable set.
func SearchableColumnIDs[T any](columns []Column[T]) []string {
	var ids []string
	for _, c := range columns {
		if c.Searchable {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// CompareValues orders two cell values. nil sorts first and NaN last;
// values of different types are compared by their text.
func CompareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(strings.ToLower(x), strings.ToLower(y))
		}
	case int:
		if y, ok := b.(int); ok {
			return cmp.Compare(x, y)
		}
	case int64:
		if y, ok := b.(int64); ok {
			return cmp.Compare(x, y)
		}
	case float64:
		if y, ok := b.(float64); ok {
			return compareFloat64s(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			return compareBools(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case *time.Time:
		if y, ok := b.(*time.Time); ok {
			switch {
			case x == nil && y == nil:
				return 0
			case x == nil:
				return -1
			case y == nil:
				return 1
			}
			return x.Compare(*y)
		}
	}

	return strings.Compare(strings.ToLower(FormatValue(a)), strings.ToLower(FormatValue(b)))
}

// compareBools compares two bool values (false < true)
func compareBools(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

func compareFloat64s(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}
	return cmp.Compare(a, b)
}
