package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/bertagmachine/recruit-funnel/internal/models"
)

// genID generates a short random identifier with a type prefix,
// e.g. "college_3fa9c21b".
func genID(prefix string) string {
	b := make([]byte, 4)
	rand.Read(b)
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(b))
}

// today returns the current calendar date as an ISO YYYY-MM-DD string,
// the format interaction dates are stored in.
func today() string {
	return time.Now().Format("2006-01-02")
}

// applyCollegeDefaults fills the fields the caller left zero-valued on a
// new college. Defaults are total: every field of the returned record is
// defined, so nothing downstream needs to handle a half-built college.
func applyCollegeDefaults(partial *models.College) models.College {
	c := models.College{
		Name:         "New College",
		Division:     "NCAA D1",
		Location:     "Unknown",
		Stage:        models.StageIdentified,
		Interest:     3,
		Interactions: []models.Interaction{},
		Coaches:      []models.Coach{},
	}
	if partial != nil {
		if partial.Name != "" {
			c.Name = partial.Name
		}
		if partial.Division != "" {
			c.Division = partial.Division
		}
		if partial.Location != "" {
			c.Location = partial.Location
		}
		if partial.Stage != "" {
			c.Stage = partial.Stage
		}
		if partial.Interest != 0 {
			c.Interest = partial.Interest
		}
		if partial.Engagement != 0 {
			c.Engagement = partial.Engagement
		}
		if len(partial.Interactions) > 0 {
			c.Interactions = append([]models.Interaction{}, partial.Interactions...)
		}
		if len(partial.Coaches) > 0 {
			c.Coaches = append([]models.Coach{}, partial.Coaches...)
		}
	}
	c.ID = genID("college")
	return c
}
