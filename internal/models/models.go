package models

// RecruitingStage represents how far along a college is in the funnel
type RecruitingStage string

const (
	StageIdentified       RecruitingStage = "Identified"
	StageContacted        RecruitingStage = "Contacted"
	StageTwoWayInterest   RecruitingStage = "Two-Way Interest"
	StageVisitScheduled   RecruitingStage = "Visit Scheduled"
	StageOffer            RecruitingStage = "Offer"
	StageCommitted        RecruitingStage = "Committed"
	StageNotMovingForward RecruitingStage = "Not Moving Forward"
)

// Stages returns all recruiting stages in funnel order. Board and list
// views render one column/section per entry in this order.
func Stages() []RecruitingStage {
	return []RecruitingStage{
		StageIdentified,
		StageContacted,
		StageTwoWayInterest,
		StageVisitScheduled,
		StageOffer,
		StageCommitted,
		StageNotMovingForward,
	}
}

// ValidStage reports whether s is one of the known recruiting stages.
func ValidStage(s RecruitingStage) bool {
	for _, stage := range Stages() {
		if s == stage {
			return true
		}
	}
	return false
}

// InteractionType classifies a logged contact event
type InteractionType string

const (
	InteractionEmail InteractionType = "Email"
	InteractionText  InteractionType = "Text"
	InteractionCall  InteractionType = "Call"
	InteractionVisit InteractionType = "Visit"
	InteractionDM    InteractionType = "DM"
	InteractionCamp  InteractionType = "Camp"
)

// InteractionTypes returns the closed set of interaction types.
func InteractionTypes() []InteractionType {
	return []InteractionType{
		InteractionEmail,
		InteractionText,
		InteractionCall,
		InteractionVisit,
		InteractionDM,
		InteractionCamp,
	}
}

// ValidInteractionType reports whether t is a known interaction type.
func ValidInteractionType(t InteractionType) bool {
	for _, known := range InteractionTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Coach is a staff contact at a college. Coaches have no identity of
// their own; they live and die with their college.
type Coach struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Email string `json:"email,omitempty"`
}

// Interaction is a single logged contact with a college's staff.
// Interactions are immutable once created; a college's list is kept
// newest-first so index 0 is always the most recent.
type Interaction struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"` // ISO date, YYYY-MM-DD
	Type      InteractionType `json:"type"`
	CoachName string          `json:"coachName"`
	Notes     string          `json:"notes"`
}

// College is a prospective program in the recruiting pipeline
type College struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Division     string          `json:"division"`
	Location     string          `json:"location"`
	Stage        RecruitingStage `json:"stage"`
	Interest     int             `json:"interest"` // 1-5, athlete-side enthusiasm
	Engagement   int             `json:"engagement"`
	Interactions []Interaction   `json:"interactions"`
	Coaches      []Coach         `json:"coaches"`
}

// LastInteraction returns the most recent interaction, or nil if none
// has been logged yet.
func (c *College) LastInteraction() *Interaction {
	if len(c.Interactions) == 0 {
		return nil
	}
	return &c.Interactions[0]
}

// StatEntry is one labelled measurement on the athlete profile. Entries
// are a slice rather than a map because display order matters; the
// reserved "Wingspan" label is rendered separately from the rest.
type StatEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// WingspanStat is the reserved stat label shown outside the main grid.
const WingspanStat = "Wingspan"

// SocialLinks holds the athlete's public profiles
type SocialLinks struct {
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Hudl      string `json:"hudl,omitempty"`
}

// Athlete is the singleton profile being recruited. Exactly one instance
// exists for the process lifetime and saves replace it wholesale.
type Athlete struct {
	Name           string      `json:"name"`
	Sport          string      `json:"sport"`
	Position       string      `json:"position"`
	Class          string      `json:"class"`
	GPA            string      `json:"gpa"`
	Height         string      `json:"height"`
	Weight         string      `json:"weight"`
	Hometown       string      `json:"hometown"`
	Highschool     string      `json:"highschool"`
	Stats          []StatEntry `json:"stats"`
	Bio            string      `json:"bio"`
	ProfileImage   string      `json:"profileImage,omitempty"`
	HighlightVideo string      `json:"highlightVideoUrl,omitempty"`
	SocialLinks    SocialLinks `json:"socialLinks"`
}

// Stat returns the value for a stat label, or "" if the athlete has no
// entry under that label.
func (a *Athlete) Stat(label string) string {
	for _, s := range a.Stats {
		if s.Label == label {
			return s.Value
		}
	}
	return ""
}

// PipelineState is the complete snapshot handed to views: the tracked
// college collection (insertion order, newest first) plus the athlete.
type PipelineState struct {
	Colleges []College `json:"colleges"`
	Athlete  Athlete   `json:"athlete"`
}
