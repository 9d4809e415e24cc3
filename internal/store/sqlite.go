package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bertagmachine/recruit-funnel/internal/models"
)

// SQLiteStore implements PipelineStore using SQLite, for anyone who wants
// the pipeline to survive a restart.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite-backed store at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS colleges (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		division TEXT NOT NULL,
		location TEXT NOT NULL,
		stage TEXT NOT NULL,
		interest INTEGER NOT NULL DEFAULT 3,
		engagement INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL,
		coaches TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS interactions (
		id TEXT PRIMARY KEY,
		college_id TEXT NOT NULL,
		date TEXT NOT NULL,
		type TEXT NOT NULL,
		coach_name TEXT NOT NULL,
		notes TEXT NOT NULL,
		seq INTEGER NOT NULL,
		FOREIGN KEY (college_id) REFERENCES colleges(id)
	);

	CREATE TABLE IF NOT EXISTS athlete (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		data TEXT NOT NULL
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Seed default data if empty
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM athlete").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		return s.seedData()
	}
	return nil
}

func (s *SQLiteStore) seedData() error {
	colleges := seedColleges()
	for i, c := range colleges {
		coachesJSON, err := json.Marshal(c.Coaches)
		if err != nil {
			return err
		}
		// Seed order is newest-first, so position ascends with the slice index
		_, err = s.db.Exec(`
			INSERT INTO colleges (id, name, division, location, stage, interest, engagement, position, coaches)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.Name, c.Division, c.Location, string(c.Stage), c.Interest, c.Engagement, i, string(coachesJSON))
		if err != nil {
			return err
		}

		// Seed interactions newest-first: earlier index gets a higher seq
		for j, in := range c.Interactions {
			_, err = s.db.Exec(`
				INSERT INTO interactions (id, college_id, date, type, coach_name, notes, seq)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, in.ID, c.ID, in.Date, string(in.Type), in.CoachName, in.Notes, len(c.Interactions)-j)
			if err != nil {
				return err
			}
		}
	}

	athlete := seedAthlete()
	data, err := json.Marshal(athlete)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO athlete (id, data) VALUES (1, ?)`, string(data))
	return err
}

func (s *SQLiteStore) GetState() (*models.PipelineState, error) {
	colleges, err := s.loadColleges()
	if err != nil {
		return nil, err
	}

	athlete, err := s.loadAthlete()
	if err != nil {
		return nil, err
	}

	return &models.PipelineState{Colleges: colleges, Athlete: *athlete}, nil
}

func (s *SQLiteStore) loadColleges() ([]models.College, error) {
	rows, err := s.db.Query(`
		SELECT id, name, division, location, stage, interest, engagement, coaches
		FROM colleges ORDER BY position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colleges := []models.College{}
	for rows.Next() {
		var c models.College
		var stage, coachesJSON string
		if err := rows.Scan(&c.ID, &c.Name, &c.Division, &c.Location, &stage, &c.Interest, &c.Engagement, &coachesJSON); err != nil {
			return nil, err
		}
		c.Stage = models.RecruitingStage(stage)
		c.Coaches = []models.Coach{}
		if err := json.Unmarshal([]byte(coachesJSON), &c.Coaches); err != nil {
			return nil, fmt.Errorf("failed to decode coaches for %s: %w", c.ID, err)
		}
		c.Interactions = []models.Interaction{}
		colleges = append(colleges, c)
	}

	for i := range colleges {
		interactions, err := s.loadInteractions(colleges[i].ID)
		if err != nil {
			return nil, err
		}
		colleges[i].Interactions = interactions
	}

	return colleges, nil
}

func (s *SQLiteStore) loadInteractions(collegeID string) ([]models.Interaction, error) {
	rows, err := s.db.Query(`
		SELECT id, date, type, coach_name, notes
		FROM interactions WHERE college_id = ? ORDER BY seq DESC
	`, collegeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interactions := []models.Interaction{}
	for rows.Next() {
		var in models.Interaction
		var typ string
		if err := rows.Scan(&in.ID, &in.Date, &typ, &in.CoachName, &in.Notes); err != nil {
			return nil, err
		}
		in.Type = models.InteractionType(typ)
		interactions = append(interactions, in)
	}
	return interactions, nil
}

func (s *SQLiteStore) loadAthlete() (*models.Athlete, error) {
	var data string
	if err := s.db.QueryRow(`SELECT data FROM athlete WHERE id = 1`).Scan(&data); err != nil {
		return nil, err
	}
	var athlete models.Athlete
	if err := json.Unmarshal([]byte(data), &athlete); err != nil {
		return nil, fmt.Errorf("failed to decode athlete: %w", err)
	}
	return &athlete, nil
}

func (s *SQLiteStore) GetCollege(id string) (*models.College, error) {
	var c models.College
	var stage, coachesJSON string
	err := s.db.QueryRow(`
		SELECT id, name, division, location, stage, interest, engagement, coaches
		FROM colleges WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.Division, &c.Location, &stage, &c.Interest, &c.Engagement, &coachesJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.Stage = models.RecruitingStage(stage)
	c.Coaches = []models.Coach{}
	if err := json.Unmarshal([]byte(coachesJSON), &c.Coaches); err != nil {
		return nil, fmt.Errorf("failed to decode coaches for %s: %w", c.ID, err)
	}

	interactions, err := s.loadInteractions(c.ID)
	if err != nil {
		return nil, err
	}
	c.Interactions = interactions
	return &c, nil
}

func (s *SQLiteStore) AddCollege(partial *models.College) (*models.College, error) {
	c := applyCollegeDefaults(partial)

	coachesJSON, err := json.Marshal(c.Coaches)
	if err != nil {
		return nil, err
	}

	// New colleges go to the front: take a position below the current minimum
	var minPos sql.NullInt64
	if err := s.db.QueryRow(`SELECT MIN(position) FROM colleges`).Scan(&minPos); err != nil {
		return nil, err
	}
	position := int64(0)
	if minPos.Valid {
		position = minPos.Int64 - 1
	}

	_, err = s.db.Exec(`
		INSERT INTO colleges (id, name, division, location, stage, interest, engagement, position, coaches)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Division, c.Location, string(c.Stage), c.Interest, c.Engagement, position, string(coachesJSON))
	if err != nil {
		return nil, err
	}

	for j, in := range c.Interactions {
		_, err = s.db.Exec(`
			INSERT INTO interactions (id, college_id, date, type, coach_name, notes, seq)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, in.ID, c.ID, in.Date, string(in.Type), in.CoachName, in.Notes, len(c.Interactions)-j)
		if err != nil {
			return nil, err
		}
	}

	return &c, nil
}

func (s *SQLiteStore) RemoveCollege(id string) error {
	// Interactions die with their college; absent ids fall through as no-ops
	if _, err := s.db.Exec(`DELETE FROM interactions WHERE college_id = ?`, id); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM colleges WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) UpdateStage(id string, stage models.RecruitingStage) error {
	_, err := s.db.Exec(`UPDATE colleges SET stage = ? WHERE id = ?`, string(stage), id)
	return err
}

func (s *SQLiteStore) UpdateInterest(id string, rating int) error {
	_, err := s.db.Exec(`UPDATE colleges SET interest = ? WHERE id = ?`, rating, id)
	return err
}

func (s *SQLiteStore) SetEngagement(id string, score int) error {
	_, err := s.db.Exec(`UPDATE colleges SET engagement = ? WHERE id = ?`, score, id)
	return err
}

func (s *SQLiteStore) AddInteraction(collegeID string, in models.Interaction) (*models.Interaction, error) {
	var exists int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM colleges WHERE id = ?`, collegeID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, nil
	}

	in.ID = genID("interaction")
	if in.Date == "" {
		in.Date = today()
	}

	var maxSeq sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(seq) FROM interactions WHERE college_id = ?`, collegeID).Scan(&maxSeq); err != nil {
		return nil, err
	}
	seq := int64(1)
	if maxSeq.Valid {
		seq = maxSeq.Int64 + 1
	}

	_, err := s.db.Exec(`
		INSERT INTO interactions (id, college_id, date, type, coach_name, notes, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, in.ID, collegeID, in.Date, string(in.Type), in.CoachName, in.Notes, seq)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *SQLiteStore) ReplaceAthlete(athlete *models.Athlete) error {
	data, err := json.Marshal(athlete)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`UPDATE athlete SET data = ? WHERE id = 1`, string(data))
	return err
}

func (s *SQLiteStore) Reset() error {
	for _, table := range []string{"interactions", "colleges", "athlete"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}
	return s.seedData()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
