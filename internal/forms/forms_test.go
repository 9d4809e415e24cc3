package forms

import (
	"context"
	"fmt"
	"testing"

	"github.com/bertagmachine/recruit-funnel/internal/colleges"
	"github.com/bertagmachine/recruit-funnel/internal/models"
	"github.com/bertagmachine/recruit-funnel/internal/store"
)

func TestAthleteEditorSave(t *testing.T) {
	s := store.NewMemoryStore()
	e := NewAthleteEditor(s)

	buf, err := e.Begin()
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if !e.Editing() {
		t.Fatal("expected session in progress after Begin")
	}

	buf.GPA = "4.0"
	if err := e.SetStat("Bench Press", "365 lbs"); err != nil {
		t.Fatalf("SetStat failed: %v", err)
	}

	// Nothing is visible until Save
	state, _ := s.GetState()
	if state.Athlete.GPA == "4.0" {
		t.Error("buffer edit leaked into store before Save")
	}

	if err := e.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if e.Editing() {
		t.Error("session should end after Save")
	}

	state, _ = s.GetState()
	if state.Athlete.GPA != "4.0" {
		t.Errorf("GPA = %q after save, want 4.0", state.Athlete.GPA)
	}
	if state.Athlete.Stat("Bench Press") != "365 lbs" {
		t.Errorf("stat not saved: %q", state.Athlete.Stat("Bench Press"))
	}
}

func TestAthleteEditorCancel(t *testing.T) {
	s := store.NewMemoryStore()
	e := NewAthleteEditor(s)

	buf, _ := e.Begin()
	buf.Name = "Changed Name"
	e.Cancel()

	if e.Editing() {
		t.Error("session should end after Cancel")
	}
	state, _ := s.GetState()
	if state.Athlete.Name == "Changed Name" {
		t.Error("cancelled edit reached the store")
	}
}

func TestAthleteEditorSaveWithoutSession(t *testing.T) {
	e := NewAthleteEditor(store.NewMemoryStore())
	if err := e.Save(); err == nil {
		t.Error("expected error saving without a session")
	}
}

func TestInteractionFormValidate(t *testing.T) {
	tests := []struct {
		name    string
		form    InteractionForm
		wantErr bool
	}{
		{"valid", InteractionForm{models.InteractionEmail, "Coach Smith", "Sent film."}, false},
		{"unknown type", InteractionForm{"Carrier Pigeon", "Coach Smith", "Sent film."}, true},
		{"missing coach", InteractionForm{models.InteractionCall, "  ", "Talked."}, true},
		{"missing notes", InteractionForm{models.InteractionCall, "Coach Smith", ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInteractionFormSubmit(t *testing.T) {
	s := store.NewMemoryStore()
	f := InteractionForm{Type: models.InteractionText, CoachName: "Rob Sale", Notes: "Checked in."}

	in, err := f.Submit(s, "1")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if in == nil {
		t.Fatal("expected interaction back from Submit")
	}
	if in.Date == "" {
		t.Error("date not stamped at submit")
	}

	c, _ := s.GetCollege("1")
	if c.Interactions[0].ID != in.ID {
		t.Error("submitted interaction not at front of log")
	}
}

func TestInteractionFormSubmitAbsentCollege(t *testing.T) {
	s := store.NewMemoryStore()
	f := InteractionForm{Type: models.InteractionText, CoachName: "X", Notes: "Y"}

	in, err := f.Submit(s, "gone")
	if err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	if in != nil {
		t.Error("expected nil interaction for absent college")
	}
}

func TestCollegeForm(t *testing.T) {
	f := NewCollegeForm()
	if f.Division != colleges.Divisions()[0] {
		t.Errorf("new form division = %q, want first option", f.Division)
	}
	if err := f.Validate(); err == nil {
		t.Error("expected validation failure with empty name")
	}

	f.ApplySuggestion(colleges.Candidate{Name: "Clemson University", Division: "NCAA D1", Location: "Clemson, SC"})
	if err := f.Validate(); err != nil {
		t.Errorf("Validate after suggestion failed: %v", err)
	}

	s := store.NewMemoryStore()
	c, err := f.Submit(s)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if c.Name != "Clemson University" || c.Location != "Clemson, SC" {
		t.Errorf("submitted college = %+v", c)
	}
	if c.Stage != models.StageIdentified {
		t.Errorf("new college stage = %q, want Identified", c.Stage)
	}
}

type fakeRemote struct {
	results []colleges.Candidate
	err     error
	calls   int
}

func (f *fakeRemote) Search(ctx context.Context, name string) ([]colleges.Candidate, error) {
	f.calls++
	return f.results, f.err
}

func TestSuggest(t *testing.T) {
	remote := &fakeRemote{results: []colleges.Candidate{
		{Name: "University of Michigan", Division: "NCAA D1/D2/D3 (4-Year)", Location: "Ann Arbor, MI"},
		{Name: "Michigan Technological University", Division: "NCAA D1/D2/D3 (4-Year)", Location: "Houghton, MI"},
	}}
	sg := NewSuggester(remote)

	got := sg.Suggest(context.Background(), "michigan")
	if remote.calls != 1 {
		t.Errorf("remote called %d times, want 1", remote.calls)
	}

	// Local "University of Michigan" and the remote duplicate collapse to one
	seen := map[string]int{}
	for _, c := range got {
		seen[c.Name]++
	}
	if seen["University of Michigan"] != 1 {
		t.Errorf("expected one University of Michigan entry, got %d", seen["University of Michigan"])
	}
	if seen["Michigan Technological University"] != 1 {
		t.Error("remote-only result missing")
	}

	// Local match wins the dedupe, keeping its richer division label
	for _, c := range got {
		if c.Name == "University of Michigan" && c.Division != "NCAA D1" {
			t.Errorf("local entry overwritten by remote: division = %q", c.Division)
		}
	}
}

func TestSuggestShortQuery(t *testing.T) {
	remote := &fakeRemote{}
	sg := NewSuggester(remote)

	if got := sg.Suggest(context.Background(), "m"); len(got) != 0 {
		t.Errorf("expected no suggestions for one-character query, got %d", len(got))
	}
	if remote.calls != 0 {
		t.Error("remote should not be consulted for short queries")
	}
}

func TestSuggestRemoteFailure(t *testing.T) {
	remote := &fakeRemote{err: fmt.Errorf("network down")}
	sg := NewSuggester(remote)

	got := sg.Suggest(context.Background(), "alabama")
	if len(got) == 0 {
		t.Error("expected local results despite remote failure")
	}
}

func TestSuggestCap(t *testing.T) {
	many := make([]colleges.Candidate, 20)
	for i := range many {
		many[i] = colleges.Candidate{Name: fmt.Sprintf("State University %02d", i)}
	}
	sg := NewSuggester(&fakeRemote{results: many})

	got := sg.Suggest(context.Background(), "state")
	if len(got) > 8 {
		t.Errorf("suggestions not capped: got %d", len(got))
	}
}

func TestSuggestNilRemote(t *testing.T) {
	sg := NewSuggester(nil)
	got := sg.Suggest(context.Background(), "alabama")
	if len(got) != 1 {
		t.Errorf("expected 1 local result, got %d", len(got))
	}
}
