package store

import (
	"sync"

	"github.com/bertagmachine/recruit-funnel/internal/models"
)

// MemoryStore implements PipelineStore with in-memory storage. It is the
// default backend: pipeline state is volatile for the lifetime of one
// session, which is exactly what the tracker needs.
type MemoryStore struct {
	mu       sync.RWMutex
	colleges []models.College
	athlete  models.Athlete
}

// NewMemoryStore creates an in-memory store seeded with the starter
// pipeline and athlete profile.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		colleges: seedColleges(),
		athlete:  seedAthlete(),
	}
}

func (m *MemoryStore) GetState() (*models.PipelineState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state := &models.PipelineState{
		Colleges: make([]models.College, len(m.colleges)),
		Athlete:  copyAthlete(m.athlete),
	}
	for i := range m.colleges {
		state.Colleges[i] = copyCollege(m.colleges[i])
	}
	return state, nil
}

func (m *MemoryStore) GetCollege(id string) (*models.College, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.colleges {
		if m.colleges[i].ID == id {
			c := copyCollege(m.colleges[i])
			return &c, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) AddCollege(partial *models.College) (*models.College, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := applyCollegeDefaults(partial)
	// Newest colleges go to the front of the collection
	m.colleges = append([]models.College{c}, m.colleges...)

	out := copyCollege(c)
	return &out, nil
}

func (m *MemoryStore) RemoveCollege(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.colleges {
		if m.colleges[i].ID == id {
			m.colleges = append(m.colleges[:i], m.colleges[i+1:]...)
			return nil
		}
	}
	// Absent id: nothing to do
	return nil
}

func (m *MemoryStore) UpdateStage(id string, stage models.RecruitingStage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.colleges {
		if m.colleges[i].ID == id {
			m.colleges[i].Stage = stage
			return nil
		}
	}
	return nil
}

func (m *MemoryStore) UpdateInterest(id string, rating int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.colleges {
		if m.colleges[i].ID == id {
			m.colleges[i].Interest = rating
			return nil
		}
	}
	return nil
}

func (m *MemoryStore) SetEngagement(id string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.colleges {
		if m.colleges[i].ID == id {
			m.colleges[i].Engagement = score
			return nil
		}
	}
	return nil
}

func (m *MemoryStore) AddInteraction(collegeID string, in models.Interaction) (*models.Interaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.colleges {
		if m.colleges[i].ID == collegeID {
			in.ID = genID("interaction")
			if in.Date == "" {
				in.Date = today()
			}
			// Prepend: index 0 is always the most recent interaction
			m.colleges[i].Interactions = append([]models.Interaction{in}, m.colleges[i].Interactions...)
			out := in
			return &out, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) ReplaceAthlete(athlete *models.Athlete) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.athlete = copyAthlete(*athlete)
	return nil
}

func (m *MemoryStore) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.colleges = seedColleges()
	m.athlete = seedAthlete()
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

// copyCollege deep-copies a college so callers can't mutate store state
// through a snapshot.
func copyCollege(c models.College) models.College {
	out := c
	out.Interactions = append([]models.Interaction{}, c.Interactions...)
	out.Coaches = append([]models.Coach{}, c.Coaches...)
	return out
}

// copyAthlete deep-copies the athlete, including the stats slice, so
// edit buffers and snapshots never alias store-owned data.
func copyAthlete(a models.Athlete) models.Athlete {
	out := a
	out.Stats = append([]models.StatEntry{}, a.Stats...)
	return out
}
