package query

import (
	"testing"

	"github.com/bertagmachine/recruit-funnel/internal/models"
)

func college(id, name, division, location string, stage models.RecruitingStage, interest int) models.College {
	return models.College{
		ID:           id,
		Name:         name,
		Division:     division,
		Location:     location,
		Stage:        stage,
		Interest:     interest,
		Interactions: []models.Interaction{},
		Coaches:      []models.Coach{},
	}
}

func testColleges() []models.College {
	florida := college("1", "University of Florida", "NCAA D1", "Gainesville, FL", models.StageVisitScheduled, 5)
	florida.Coaches = []models.Coach{{Name: "Billy Napier", Title: "Head Coach"}}
	florida.Interactions = []models.Interaction{
		{ID: "i1", Date: "2026-02-12", Type: models.InteractionText},
		{ID: "i2", Date: "2026-01-15", Type: models.InteractionCall},
	}

	michigan := college("2", "University of Michigan", "NCAA D1", "Ann Arbor, MI", models.StageContacted, 4)
	michigan.Interactions = []models.Interaction{
		{ID: "i3", Date: "2026-02-11", Type: models.InteractionEmail},
	}

	bccc := college("3", "Baltimore City Community College", "NJCAA D2", "Baltimore, MD", models.StageIdentified, 1)
	ohioState := college("4", "Ohio State University", "NCAA D1", "Columbus, OH", models.StageIdentified, 4)

	return []models.College{florida, michigan, bccc, ohioState}
}

func names(cs []models.College) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	colleges := testColleges()

	tests := []struct {
		name     string
		search   string
		division string
		wantIDs  []string
	}{
		{"empty filters pass everything", "", "", []string{"1", "2", "3", "4"}},
		{"all divisions sentinel passes everything", "", AllDivisions, []string{"1", "2", "3", "4"}},
		{"search matches name substring", "florida", "", []string{"1"}},
		{"search is case insensitive", "FLORIDA", "", []string{"1"}},
		{"search is trimmed", "  florida  ", "", []string{"1"}},
		{"search matches location", "baltimore", "", []string{"3"}},
		{"search matches coach name", "napier", "", []string{"1"}},
		{"search matches division text", "njcaa", "", []string{"3"}},
		{"division filter is exact", "", "NJCAA D2", []string{"3"}},
		{"search and division combine", "university", "NCAA D1", []string{"1", "2", "4"}},
		{"no matches yields empty", "zzz", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(colleges, tt.search, tt.division)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d colleges, want %d: %v", len(got), len(tt.wantIDs), names(got))
			}
			for i, c := range got {
				if c.ID != tt.wantIDs[i] {
					t.Errorf("result[%d].ID = %q, want %q", i, c.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	colleges := testColleges()
	before := names(colleges)
	Filter(colleges, "florida", "")
	after := names(colleges)
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("Filter reordered its input")
		}
	}
}

func TestGroupByStage(t *testing.T) {
	colleges := testColleges()
	groups := GroupByStage(colleges)

	if len(groups) != len(models.Stages()) {
		t.Fatalf("expected %d groups, got %d", len(models.Stages()), len(groups))
	}

	// Groups come back in funnel order, every stage present
	for i, stage := range models.Stages() {
		if groups[i].Stage != stage {
			t.Errorf("group %d stage = %q, want %q", i, groups[i].Stage, stage)
		}
		if groups[i].Colleges == nil {
			t.Errorf("group %q has nil college slice", stage)
		}
	}

	counted := 0
	for _, g := range groups {
		for _, c := range g.Colleges {
			if c.Stage != g.Stage {
				t.Errorf("college %q in group %q has stage %q", c.Name, g.Stage, c.Stage)
			}
			counted++
		}
	}
	if counted != len(colleges) {
		t.Errorf("partition lost colleges: %d grouped of %d", counted, len(colleges))
	}
}

func TestGroupByStagePreservesOrder(t *testing.T) {
	colleges := testColleges()
	groups := GroupByStage(colleges)

	for _, g := range groups {
		if g.Stage == models.StageIdentified {
			if len(g.Colleges) != 2 {
				t.Fatalf("expected 2 identified colleges, got %d", len(g.Colleges))
			}
			if g.Colleges[0].ID != "3" || g.Colleges[1].ID != "4" {
				t.Errorf("group order %v does not follow collection order", names(g.Colleges))
			}
		}
	}
}

func TestNextTableSort(t *testing.T) {
	cur := DefaultTableSort()

	// Clicking a new column selects it ascending
	cur = NextTableSort(cur, SortByInterest)
	if cur.Key != SortByInterest || !cur.Ascending {
		t.Errorf("expected interest ascending, got %+v", cur)
	}

	// Clicking the active column flips direction
	cur = NextTableSort(cur, SortByInterest)
	if cur.Key != SortByInterest || cur.Ascending {
		t.Errorf("expected interest descending, got %+v", cur)
	}

	// Moving to another column resets to ascending
	cur = NextTableSort(cur, SortByName)
	if cur.Key != SortByName || !cur.Ascending {
		t.Errorf("expected name ascending, got %+v", cur)
	}
}

func TestSortTable(t *testing.T) {
	colleges := testColleges()

	tests := []struct {
		name    string
		sort    TableSort
		wantIDs []string
	}{
		{"name ascending", TableSort{SortByName, true}, []string{"3", "4", "1", "2"}},
		{"name descending", TableSort{SortByName, false}, []string{"2", "1", "4", "3"}},
		{"interest ascending", TableSort{SortByInterest, true}, []string{"3", "2", "4", "1"}},
		{"interest descending", TableSort{SortByInterest, false}, []string{"1", "2", "4", "3"}},
		{"last interaction ascending puts never-contacted first", TableSort{SortByLastInteraction, true}, []string{"3", "4", "2", "1"}},
		{"interaction count ascending", TableSort{SortByCount, true}, []string{"3", "4", "2", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortTable(colleges, tt.sort)
			for i, c := range got {
				if c.ID != tt.wantIDs[i] {
					t.Errorf("result[%d].ID = %q, want %q (%v)", i, c.ID, tt.wantIDs[i], names(got))
				}
			}
		})
	}
}

func TestSortTableIsStable(t *testing.T) {
	// Michigan and Ohio State tie at interest 4; collection order breaks the tie
	colleges := testColleges()
	got := SortTable(colleges, TableSort{SortByInterest, false})
	if got[1].ID != "2" || got[2].ID != "4" {
		t.Errorf("tie not broken by collection order: %v", names(got))
	}
}

func TestNextColumnSortCycles(t *testing.T) {
	mode := ColumnSortName
	mode = NextColumnSort(mode)
	if mode != ColumnSortInterest {
		t.Errorf("expected interest after name, got %q", mode)
	}
	mode = NextColumnSort(mode)
	if mode != ColumnSortActivity {
		t.Errorf("expected activity after interest, got %q", mode)
	}
	mode = NextColumnSort(mode)
	if mode != ColumnSortName {
		t.Errorf("expected cycle back to name, got %q", mode)
	}
}

func TestSortColumn(t *testing.T) {
	a := college("a", "Clemson", "NCAA D1", "", models.StageIdentified, 2)
	b := college("b", "Auburn", "NCAA D1", "", models.StageIdentified, 5)
	c := college("c", "Duke", "NCAA D1", "", models.StageIdentified, 3)
	b.Interactions = []models.Interaction{{ID: "x", Date: "2026-01-01"}}
	c.Interactions = []models.Interaction{{ID: "y", Date: "2026-02-01"}, {ID: "z", Date: "2026-01-10"}}
	cs := []models.College{a, b, c}

	byName := SortColumn(cs, ColumnSortName)
	if byName[0].ID != "b" || byName[1].ID != "a" || byName[2].ID != "c" {
		t.Errorf("name sort order wrong: %v", names(byName))
	}

	byInterest := SortColumn(cs, ColumnSortInterest)
	if byInterest[0].Interest != 5 || byInterest[1].Interest != 3 || byInterest[2].Interest != 2 {
		t.Errorf("interest sort not descending: %v", names(byInterest))
	}

	byActivity := SortColumn(cs, ColumnSortActivity)
	if byActivity[0].ID != "c" || byActivity[1].ID != "b" || byActivity[2].ID != "a" {
		t.Errorf("activity sort not by interaction count: %v", names(byActivity))
	}
}
