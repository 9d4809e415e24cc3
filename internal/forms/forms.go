// Package forms holds the edit-buffer workflows: the athlete profile
// editor, the interaction log form, and the add-college form with its
// name suggestions. Forms validate and stage input; committing goes
// through the store.
package forms

import (
	"context"
	"fmt"
	"strings"

	"github.com/bertagmachine/recruit-funnel/internal/colleges"
	"github.com/bertagmachine/recruit-funnel/internal/models"
	"github.com/bertagmachine/recruit-funnel/internal/store"
)

// AthleteEditor buffers edits to the athlete profile. Begin copies the
// current profile into a scratch buffer; mutations touch only the
// buffer until Save replaces the stored profile wholesale. Cancel
// discards the buffer and the stored profile is untouched.
type AthleteEditor struct {
	store store.PipelineStore
	buf   *models.Athlete
}

func NewAthleteEditor(s store.PipelineStore) *AthleteEditor {
	return &AthleteEditor{store: s}
}

// Begin starts an editing session and returns the scratch buffer.
func (e *AthleteEditor) Begin() (*models.Athlete, error) {
	state, err := e.store.GetState()
	if err != nil {
		return nil, err
	}
	buf := state.Athlete
	buf.Stats = append([]models.StatEntry{}, state.Athlete.Stats...)
	e.buf = &buf
	return e.buf, nil
}

// Editing reports whether a session is in progress.
func (e *AthleteEditor) Editing() bool {
	return e.buf != nil
}

// Buffer returns the scratch buffer, or nil outside a session.
func (e *AthleteEditor) Buffer() *models.Athlete {
	return e.buf
}

// SetStat updates one stat in the buffer by label.
func (e *AthleteEditor) SetStat(label, value string) error {
	if e.buf == nil {
		return fmt.Errorf("no editing session in progress")
	}
	for i := range e.buf.Stats {
		if e.buf.Stats[i].Label == label {
			e.buf.Stats[i].Value = value
			return nil
		}
	}
	e.buf.Stats = append(e.buf.Stats, models.StatEntry{Label: label, Value: value})
	return nil
}

// Save commits the buffer as the new athlete profile and ends the
// session. The replacement is wholesale, not a merge.
func (e *AthleteEditor) Save() error {
	if e.buf == nil {
		return fmt.Errorf("no editing session in progress")
	}
	if err := e.store.ReplaceAthlete(e.buf); err != nil {
		return err
	}
	e.buf = nil
	return nil
}

// Cancel discards the buffer and ends the session.
func (e *AthleteEditor) Cancel() {
	e.buf = nil
}

// InteractionForm captures one logged interaction. The date is not a
// form field; it is stamped with today's date at submit time.
type InteractionForm struct {
	Type      models.InteractionType `json:"type"`
	CoachName string                 `json:"coachName"`
	Notes     string                 `json:"notes"`
}

// Validate checks the required fields.
func (f InteractionForm) Validate() error {
	if !models.ValidInteractionType(f.Type) {
		return fmt.Errorf("invalid interaction type: %q", f.Type)
	}
	if strings.TrimSpace(f.CoachName) == "" {
		return fmt.Errorf("coach name is required")
	}
	if strings.TrimSpace(f.Notes) == "" {
		return fmt.Errorf("notes are required")
	}
	return nil
}

// Submit validates and logs the interaction against a college. A nil
// interaction with nil error means the college no longer exists.
func (f InteractionForm) Submit(s store.PipelineStore, collegeID string) (*models.Interaction, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return s.AddInteraction(collegeID, models.Interaction{
		Type:      f.Type,
		CoachName: strings.TrimSpace(f.CoachName),
		Notes:     strings.TrimSpace(f.Notes),
	})
}

// CollegeForm captures a new college. Division starts at the first
// division option; location may stay empty and fall to the store
// default.
type CollegeForm struct {
	Name     string `json:"name"`
	Division string `json:"division"`
	Location string `json:"location"`
}

// NewCollegeForm returns a form with the default division selected.
func NewCollegeForm() CollegeForm {
	return CollegeForm{Division: colleges.Divisions()[0]}
}

// ApplySuggestion fills the form from a picked suggestion.
func (f *CollegeForm) ApplySuggestion(c colleges.Candidate) {
	f.Name = c.Name
	f.Division = c.Division
	f.Location = c.Location
}

// Validate checks that a name was entered.
func (f CollegeForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("college name is required")
	}
	return nil
}

// Submit validates and adds the college to the pipeline.
func (f CollegeForm) Submit(s store.PipelineStore) (*models.College, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return s.AddCollege(&models.College{
		Name:     strings.TrimSpace(f.Name),
		Division: f.Division,
		Location: f.Location,
	})
}

// RemoteSearcher looks up colleges in an external dataset.
type RemoteSearcher interface {
	Search(ctx context.Context, name string) ([]colleges.Candidate, error)
}

const (
	localSuggestionCap = 5
	suggestionCap      = 8
)

// Suggester combines the built-in program database with a remote
// college search into one suggestion list.
type Suggester struct {
	remote RemoteSearcher
}

// NewSuggester creates a suggester. remote may be nil, in which case
// only the built-in database is consulted.
func NewSuggester(remote RemoteSearcher) *Suggester {
	return &Suggester{remote: remote}
}

// Suggest returns suggestions for a partially typed college name: local
// matches first, then remote results, deduplicated by name and capped.
// Queries of one character or less yield nothing, and a failed remote
// lookup silently degrades to local-only results.
func (s *Suggester) Suggest(ctx context.Context, query string) []colleges.Candidate {
	if len(strings.TrimSpace(query)) <= 1 {
		return []colleges.Candidate{}
	}

	combined := colleges.LocalSearch(query, localSuggestionCap)

	if s.remote != nil {
		if apiResults, err := s.remote.Search(ctx, query); err == nil {
			combined = append(combined, apiResults...)
		}
	}

	seen := map[string]bool{}
	out := []colleges.Candidate{}
	for _, c := range combined {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		out = append(out, c)
		if len(out) == suggestionCap {
			break
		}
	}
	return out
}
