package outreach

import (
	"context"
	"strings"
	"testing"

	"github.com/bertagmachine/recruit-funnel/internal/models"
)

func TestUnconfiguredGeneratorReturnsSentinel(t *testing.T) {
	gen, err := New(context.Background(), "")
	if err != nil {
		t.Fatalf("New with empty key failed: %v", err)
	}

	draft := gen.GenerateDraft(context.Background(), &models.Athlete{Name: "Test"}, &models.College{Name: "Test U"})
	if draft != ErrorDraft {
		t.Errorf("expected error sentinel, got %q", draft)
	}
}

func TestBuildPrompt(t *testing.T) {
	athlete := &models.Athlete{
		Name:     "Bertag Machine",
		Sport:    "Football",
		Position: "Offensive Line (OT/OG)",
		Class:    "2027",
		GPA:      "3.85",
		Bio:      "Dominant offensive lineman.",
	}
	college := &models.College{
		Name:     "University of Florida",
		Division: "NCAA D1",
	}

	prompt := buildPrompt(athlete, college)

	for _, want := range []string{
		"Bertag Machine",
		"Football",
		"Offensive Line (OT/OG)",
		"2027",
		"3.85",
		"University of Florida",
		"NCAA D1",
		"Dominant offensive lineman.",
		"call to action",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
