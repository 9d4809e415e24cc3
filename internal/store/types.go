package store

import "github.com/bertagmachine/recruit-funnel/internal/models"

// PipelineStore is the single source of truth for the college collection
// and the athlete singleton. All mutation goes through this operation
// set; views only ever read snapshots.
//
// Mutations that target a college id with no matching record are silent
// no-ops, never errors. Errors are reserved for the storage backend
// itself (a failed query, a closed connection).
type PipelineStore interface {
	GetState() (*models.PipelineState, error)
	GetCollege(id string) (*models.College, error)
	AddCollege(partial *models.College) (*models.College, error)
	RemoveCollege(id string) error
	UpdateStage(id string, stage models.RecruitingStage) error
	UpdateInterest(id string, rating int) error
	SetEngagement(id string, score int) error
	AddInteraction(collegeID string, in models.Interaction) (*models.Interaction, error)
	ReplaceAthlete(athlete *models.Athlete) error
	Reset() error
	Close() error
}
