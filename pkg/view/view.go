package view

import (
	"fmt"
	"strings"

	"tableflip.dev/tick/pkg/task"
)

// Filter narrows the displayed collection by status. It never reorders:
// projection preserves the synchronized ordering of whatever it keeps.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

func (f Filter) Valid() bool {
	return f == FilterAll || f == FilterPending || f == FilterCompleted
}

// Next cycles all -> pending -> completed -> all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterPending
	case FilterPending:
		return FilterCompleted
	default:
		return FilterAll
	}
}

func (f Filter) String() string {
	return string(f)
}

// ParseFilter resolves a user-supplied filter name. The empty string means
// no narrowing.
func ParseFilter(v string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(v))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterPending:
		return FilterPending, nil
	case FilterCompleted:
		return FilterCompleted, nil
	}
	return FilterAll, fmt.Errorf("unknown filter %q, expected all, pending, or completed", v)
}

// Project applies the filter to an ordered collection. The input is never
// mutated; the result is a fresh slice sharing the task pointers.
func Project(tasks []*task.Task, f Filter) []*task.Task {
	out := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t == nil {
			continue
		}
		switch f {
		case FilterPending:
			if t.Status != task.Pending {
				continue
			}
		case FilterCompleted:
			if t.Status != task.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}
