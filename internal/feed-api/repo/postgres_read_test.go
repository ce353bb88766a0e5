package repo

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildListQuery(t *testing.T) {
	tests := []struct {
		name     string
		filter   ListFilter
		wantSub  []string
		wantArgs int
	}{
		{
			name:     "no filters",
			filter:   ListFilter{},
			wantSub:  []string{"FROM event e"},
			wantArgs: 0,
		},
		{
			name:     "sport filter joins and lowers",
			filter:   ListFilter{Sport: "Golf"},
			wantSub:  []string{"JOIN market m", "lower(s.name) = lower($1)"},
			wantArgs: 1,
		},
		{
			name:     "name filter",
			filter:   ListFilter{Name: "Open Championship"},
			wantSub:  []string{"WHERE e.name = $1"},
			wantArgs: 1,
		},
		{
			name:     "sport and name shift placeholders",
			filter:   ListFilter{Sport: "Golf", Name: "Open Championship"},
			wantSub:  []string{"lower($1)", "WHERE e.name = $2"},
			wantArgs: 2,
		},
		{
			name:     "startTime orders descending",
			filter:   ListFilter{Ordering: "startTime"},
			wantSub:  []string{"ORDER BY e.start_time DESC"},
			wantArgs: 0,
		},
		{
			name:     "ordering is case-insensitive",
			filter:   ListFilter{Ordering: "STARTTIME"},
			wantSub:  []string{"ORDER BY e.start_time DESC"},
			wantArgs: 0,
		},
		{
			name:     "name orders ascending",
			filter:   ListFilter{Ordering: "name"},
			wantSub:  []string{"ORDER BY e.name"},
			wantArgs: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, args, err := buildListQuery(tt.filter)
			if err != nil {
				t.Fatalf("buildListQuery: %v", err)
			}
			for _, sub := range tt.wantSub {
				if !strings.Contains(q, sub) {
					t.Errorf("query missing %q:\n%s", sub, q)
				}
			}
			if len(args) != tt.wantArgs {
				t.Errorf("args = %d, want %d", len(args), tt.wantArgs)
			}
		})
	}

	t.Run("name ordering must not be descending", func(t *testing.T) {
		q, _, err := buildListQuery(ListFilter{Ordering: "name"})
		if err != nil {
			t.Fatalf("buildListQuery: %v", err)
		}
		if strings.Contains(q, "DESC") {
			t.Errorf("ascending field ordered descending:\n%s", q)
		}
	})
}

func TestBuildListQuery_BadOrdering(t *testing.T) {
	for _, field := range []string{"odd", "start_time; DROP TABLE event", "unknown"} {
		if _, _, err := buildListQuery(ListFilter{Ordering: field}); !errors.Is(err, ErrBadOrdering) {
			t.Errorf("ordering %q: err = %v, want ErrBadOrdering", field, err)
		}
	}
}
