// Package query implements the read-side view engine: filtering, stage
// grouping, and the two sorting surfaces (the pipeline table and the
// board columns). Every function takes a snapshot slice and returns a
// new slice; the store's data is never reordered in place.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/bertagmachine/recruit-funnel/internal/models"
)

// AllDivisions is the sentinel division filter meaning "no division
// restriction".
const AllDivisions = "All Divisions"

// Filter narrows a college slice by free-text search and division.
//
// The search term is trimmed and lowercased, then matched as a substring
// against name, location, division, and every coach name. The division
// filter is an exact match unless it is AllDivisions. Relative order of
// the input is preserved.
func Filter(colleges []models.College, search, division string) []models.College {
	term := strings.ToLower(strings.TrimSpace(search))

	out := []models.College{}
	for _, c := range colleges {
		if division != "" && division != AllDivisions && c.Division != division {
			continue
		}
		if term != "" && !matchesSearch(c, term) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// lastDate is the ISO date of the most recent interaction, or "" when
// nothing has been logged. ISO dates compare correctly as strings.
func lastDate(c models.College) string {
	if in := c.LastInteraction(); in != nil {
		return in.Date
	}
	return ""
}

func matchesSearch(c models.College, term string) bool {
	if strings.Contains(strings.ToLower(c.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Location), term) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Division), term) {
		return true
	}
	for _, coach := range c.Coaches {
		if strings.Contains(strings.ToLower(coach.Name), term) {
			return true
		}
	}
	return false
}

// StageGroup is one column of the pipeline board.
type StageGroup struct {
	Stage    models.RecruitingStage `json:"stage"`
	Colleges []models.College       `json:"colleges"`
}

// GroupByStage partitions colleges into one group per recruiting stage,
// in funnel order. Every stage gets a group, empty or not, and relative
// order within a group follows the input.
func GroupByStage(colleges []models.College) []StageGroup {
	byStage := map[models.RecruitingStage][]models.College{}
	for _, c := range colleges {
		byStage[c.Stage] = append(byStage[c.Stage], c)
	}

	groups := make([]StageGroup, 0, len(models.Stages()))
	for _, stage := range models.Stages() {
		cs := byStage[stage]
		if cs == nil {
			cs = []models.College{}
		}
		groups = append(groups, StageGroup{Stage: stage, Colleges: cs})
	}
	return groups
}

// TableSortKey names a sortable column of the pipeline table.
type TableSortKey string

const (
	SortByName            TableSortKey = "name"
	SortByLastInteraction TableSortKey = "lastInteraction"
	SortByStage           TableSortKey = "stage"
	SortByInterest        TableSortKey = "interest"
	SortByCount           TableSortKey = "count"
	SortByStatus          TableSortKey = "status"
)

// TableSort is the table's current sort state.
type TableSort struct {
	Key       TableSortKey `json:"key"`
	Ascending bool         `json:"ascending"`
}

// DefaultTableSort is the sort state the table opens with.
func DefaultTableSort() TableSort {
	return TableSort{Key: SortByName, Ascending: true}
}

// NextTableSort advances the table sort state for a header click on key:
// clicking the active column flips direction, clicking a new column
// selects it ascending.
func NextTableSort(cur TableSort, key TableSortKey) TableSort {
	if cur.Key == key {
		return TableSort{Key: key, Ascending: !cur.Ascending}
	}
	return TableSort{Key: key, Ascending: true}
}

// SortTable returns the colleges ordered by the given sort state. The
// sort is stable, so equal keys keep their collection order.
func SortTable(colleges []models.College, s TableSort) []models.College {
	out := append([]models.College{}, colleges...)
	cl := collate.New(language.English, collate.IgnoreCase)

	less := func(a, b models.College) int {
		switch s.Key {
		case SortByLastInteraction:
			// Colleges with no interactions sort before any dated one
			return strings.Compare(lastDate(a), lastDate(b))
		case SortByStage:
			return strings.Compare(string(a.Stage), string(b.Stage))
		case SortByInterest:
			return a.Interest - b.Interest
		case SortByCount, SortByStatus:
			return len(a.Interactions) - len(b.Interactions)
		default:
			return cl.CompareString(a.Name, b.Name)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		cmp := less(out[i], out[j])
		if s.Ascending {
			return cmp < 0
		}
		return cmp > 0
	})
	return out
}

// ColumnSortMode names the sort applied within one board column.
type ColumnSortMode string

const (
	ColumnSortName     ColumnSortMode = "name"
	ColumnSortInterest ColumnSortMode = "interest"
	ColumnSortActivity ColumnSortMode = "activity"
)

// NextColumnSort cycles a board column through its three sort modes:
// name, then interest, then activity, then back to name.
func NextColumnSort(cur ColumnSortMode) ColumnSortMode {
	switch cur {
	case ColumnSortName:
		return ColumnSortInterest
	case ColumnSortInterest:
		return ColumnSortActivity
	default:
		return ColumnSortName
	}
}

// SortColumn orders one board column's colleges: name ascending,
// interest descending, or activity (most logged interactions first).
// Stable, like the table sort.
func SortColumn(colleges []models.College, mode ColumnSortMode) []models.College {
	out := append([]models.College{}, colleges...)
	cl := collate.New(language.English, collate.IgnoreCase)

	sort.SliceStable(out, func(i, j int) bool {
		switch mode {
		case ColumnSortInterest:
			return out[i].Interest > out[j].Interest
		case ColumnSortActivity:
			return len(out[i].Interactions) > len(out[j].Interactions)
		default:
			return cl.CompareString(out[i].Name, out[j].Name) < 0
		}
	})
	return out
}
