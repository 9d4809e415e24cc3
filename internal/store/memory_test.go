package store

import (
	"strings"
	"testing"
	"time"

	"github.com/bertagmachine/recruit-funnel/internal/models"
)

func TestNewMemoryStoreSeeds(t *testing.T) {
	s := NewMemoryStore()
	state, err := s.GetState()
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}
	if len(state.Colleges) != 7 {
		t.Errorf("expected 7 seeded colleges, got %d", len(state.Colleges))
	}
	if state.Athlete.Name != "Bertag Machine" {
		t.Errorf("expected seeded athlete, got %q", state.Athlete.Name)
	}
}

func TestAddCollegeDefaults(t *testing.T) {
	tests := []struct {
		name    string
		partial *models.College
		want    models.College
	}{
		{
			name:    "nil partial gets all defaults",
			partial: nil,
			want: models.College{
				Name:     "New College",
				Division: "NCAA D1",
				Location: "Unknown",
				Stage:    models.StageIdentified,
				Interest: 3,
			},
		},
		{
			name:    "empty partial gets all defaults",
			partial: &models.College{},
			want: models.College{
				Name:     "New College",
				Division: "NCAA D1",
				Location: "Unknown",
				Stage:    models.StageIdentified,
				Interest: 3,
			},
		},
		{
			name: "caller fields override defaults",
			partial: &models.College{
				Name:     "Georgia Tech",
				Division: "NCAA D1",
				Location: "Atlanta, GA",
				Stage:    models.StageContacted,
				Interest: 5,
			},
			want: models.College{
				Name:     "Georgia Tech",
				Division: "NCAA D1",
				Location: "Atlanta, GA",
				Stage:    models.StageContacted,
				Interest: 5,
			},
		},
		{
			name:    "partial override keeps remaining defaults",
			partial: &models.College{Name: "Clemson"},
			want: models.College{
				Name:     "Clemson",
				Division: "NCAA D1",
				Location: "Unknown",
				Stage:    models.StageIdentified,
				Interest: 3,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemoryStore()
			got, err := s.AddCollege(tt.partial)
			if err != nil {
				t.Fatalf("AddCollege failed: %v", err)
			}
			if got.ID == "" {
				t.Error("expected generated id")
			}
			if got.Name != tt.want.Name {
				t.Errorf("Name = %q, want %q", got.Name, tt.want.Name)
			}
			if got.Division != tt.want.Division {
				t.Errorf("Division = %q, want %q", got.Division, tt.want.Division)
			}
			if got.Location != tt.want.Location {
				t.Errorf("Location = %q, want %q", got.Location, tt.want.Location)
			}
			if got.Stage != tt.want.Stage {
				t.Errorf("Stage = %q, want %q", got.Stage, tt.want.Stage)
			}
			if got.Interest != tt.want.Interest {
				t.Errorf("Interest = %d, want %d", got.Interest, tt.want.Interest)
			}
			if got.Interactions == nil || got.Coaches == nil {
				t.Error("expected non-nil interaction and coach slices")
			}
		})
	}
}

func TestAddCollegePrepends(t *testing.T) {
	s := NewMemoryStore()
	added, err := s.AddCollege(&models.College{Name: "Auburn University"})
	if err != nil {
		t.Fatalf("AddCollege failed: %v", err)
	}

	state, _ := s.GetState()
	if len(state.Colleges) != 8 {
		t.Fatalf("expected 8 colleges, got %d", len(state.Colleges))
	}
	if state.Colleges[0].ID != added.ID {
		t.Errorf("new college not at front: got %q at index 0", state.Colleges[0].Name)
	}
}

func TestRemoveCollege(t *testing.T) {
	s := NewMemoryStore()

	if err := s.RemoveCollege("3"); err != nil {
		t.Fatalf("RemoveCollege failed: %v", err)
	}
	state, _ := s.GetState()
	if len(state.Colleges) != 6 {
		t.Fatalf("expected 6 colleges after removal, got %d", len(state.Colleges))
	}
	for _, c := range state.Colleges {
		if c.ID == "3" {
			t.Error("college 3 still present after removal")
		}
	}

	// Removing again is a no-op
	if err := s.RemoveCollege("3"); err != nil {
		t.Fatalf("second RemoveCollege errored: %v", err)
	}
	state, _ = s.GetState()
	if len(state.Colleges) != 6 {
		t.Errorf("idempotent removal changed collection size to %d", len(state.Colleges))
	}
}

func TestUpdateStage(t *testing.T) {
	s := NewMemoryStore()

	if err := s.UpdateStage("2", models.StageOffer); err != nil {
		t.Fatalf("UpdateStage failed: %v", err)
	}
	c, _ := s.GetCollege("2")
	if c.Stage != models.StageOffer {
		t.Errorf("Stage = %q, want %q", c.Stage, models.StageOffer)
	}

	// Absent id is a silent no-op
	if err := s.UpdateStage("nope", models.StageCommitted); err != nil {
		t.Errorf("UpdateStage on absent id errored: %v", err)
	}
}

func TestUpdateInterest(t *testing.T) {
	s := NewMemoryStore()

	if err := s.UpdateInterest("1", 2); err != nil {
		t.Fatalf("UpdateInterest failed: %v", err)
	}
	c, _ := s.GetCollege("1")
	if c.Interest != 2 {
		t.Errorf("Interest = %d, want 2", c.Interest)
	}

	if err := s.UpdateInterest("absent", 5); err != nil {
		t.Errorf("UpdateInterest on absent id errored: %v", err)
	}
}

func TestAddInteraction(t *testing.T) {
	s := NewMemoryStore()

	in, err := s.AddInteraction("1", models.Interaction{
		Type:      models.InteractionEmail,
		CoachName: "Rob Sale",
		Notes:     "Sent updated film.",
	})
	if err != nil {
		t.Fatalf("AddInteraction failed: %v", err)
	}
	if in.ID == "" {
		t.Error("expected generated interaction id")
	}
	if !strings.HasPrefix(in.ID, "interaction_") {
		t.Errorf("unexpected id format: %q", in.ID)
	}
	if in.Date != time.Now().Format("2006-01-02") {
		t.Errorf("expected today's date stamp, got %q", in.Date)
	}

	c, _ := s.GetCollege("1")
	if len(c.Interactions) != 3 {
		t.Fatalf("expected 3 interactions, got %d", len(c.Interactions))
	}
	if c.Interactions[0].ID != in.ID {
		t.Error("new interaction not at index 0")
	}
}

func TestAddInteractionAbsentCollege(t *testing.T) {
	s := NewMemoryStore()
	in, err := s.AddInteraction("missing", models.Interaction{Type: models.InteractionCall})
	if err != nil {
		t.Fatalf("expected silent no-op, got error: %v", err)
	}
	if in != nil {
		t.Errorf("expected nil interaction for absent college, got %+v", in)
	}
}

func TestAddInteractionKeepsExplicitDate(t *testing.T) {
	s := NewMemoryStore()
	in, err := s.AddInteraction("1", models.Interaction{
		Date: "2026-03-01",
		Type: models.InteractionCamp,
	})
	if err != nil {
		t.Fatalf("AddInteraction failed: %v", err)
	}
	if in.Date != "2026-03-01" {
		t.Errorf("explicit date overwritten: got %q", in.Date)
	}
}

func TestReplaceAthlete(t *testing.T) {
	s := NewMemoryStore()

	updated := models.Athlete{
		Name:  "Bertag Machine",
		Sport: "Football",
		GPA:   "3.95",
	}
	if err := s.ReplaceAthlete(&updated); err != nil {
		t.Fatalf("ReplaceAthlete failed: %v", err)
	}

	state, _ := s.GetState()
	if state.Athlete.GPA != "3.95" {
		t.Errorf("GPA = %q, want 3.95", state.Athlete.GPA)
	}
	// Replacement is wholesale, not a merge
	if state.Athlete.Position != "" {
		t.Errorf("expected position cleared by wholesale replace, got %q", state.Athlete.Position)
	}
}

func TestReset(t *testing.T) {
	s := NewMemoryStore()
	s.RemoveCollege("1")
	s.RemoveCollege("2")
	s.ReplaceAthlete(&models.Athlete{Name: "Someone Else"})

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	state, _ := s.GetState()
	if len(state.Colleges) != 7 {
		t.Errorf("expected seed restored, got %d colleges", len(state.Colleges))
	}
	if state.Athlete.Name != "Bertag Machine" {
		t.Errorf("expected seed athlete restored, got %q", state.Athlete.Name)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := NewMemoryStore()

	state, _ := s.GetState()
	state.Colleges[0].Name = "Mutated"
	state.Colleges[0].Interactions[0].Notes = "Mutated"
	state.Athlete.Stats[0].Value = "Mutated"

	fresh, _ := s.GetState()
	if fresh.Colleges[0].Name == "Mutated" {
		t.Error("snapshot mutation leaked into store college")
	}
	if fresh.Colleges[0].Interactions[0].Notes == "Mutated" {
		t.Error("snapshot mutation leaked into store interactions")
	}
	if fresh.Athlete.Stats[0].Value == "Mutated" {
		t.Error("snapshot mutation leaked into store athlete stats")
	}
}

func TestGenIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := genID("college")
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}
