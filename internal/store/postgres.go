package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/bertagmachine/recruit-funnel/internal/models"
)

// PostgresStore implements PipelineStore backed by PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to PostgreSQL using the provided connection string.
func NewPostgresStore(connString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	// Connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// Retry ping with backoff; postgres may still be starting up
	maxRetries := 5
	retryDelay := 5 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var pingErr error
	for i := 0; i < maxRetries; i++ {
		pingErr = db.PingContext(ctx)
		if pingErr == nil {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if pingErr != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres after %d retries: %w", maxRetries, pingErr)
	}

	s := &PostgresStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) initSchema() error {
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
		coaches JSONB NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS interactions (
		id TEXT PRIMARY KEY,
		college_id TEXT NOT NULL REFERENCES colleges(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		type TEXT NOT NULL,
		coach_name TEXT NOT NULL,
		notes TEXT NOT NULL,
		seq BIGINT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS athlete (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		data JSONB NOT NULL
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM athlete").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		return s.seedData()
	}
	return nil
}

func (s *PostgresStore) seedData() error {
	for i, c := range seedColleges() {
		coachesJSON, err := json.Marshal(c.Coaches)
		if err != nil {
			return err
		}
		_, err = s.db.Exec(`
			INSERT INTO colleges (id, name, division, location, stage, interest, engagement, position, coaches)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, c.ID, c.Name, c.Division, c.Location, string(c.Stage), c.Interest, c.Engagement, i, string(coachesJSON))
		if err != nil {
			return err
		}

		for j, in := range c.Interactions {
			_, err = s.db.Exec(`
				INSERT INTO interactions (id, college_id, date, type, coach_name, notes, seq)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, in.ID, c.ID, in.Date, string(in.Type), in.CoachName, in.Notes, len(c.Interactions)-j)
			if err != nil {
				return err
			}
		}
	}

	data, err := json.Marshal(seedAthlete())
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO athlete (id, data) VALUES (1, $1)`, string(data))
	return err
}

func (s *PostgresStore) GetState() (*models.PipelineState, error) {
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

func (s *PostgresStore) loadColleges() ([]models.College, error) {
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

func (s *PostgresStore) loadInteractions(collegeID string) ([]models.Interaction, error) {
	rows, err := s.db.Query(`
		SELECT id, date, type, coach_name, notes
		FROM interactions WHERE college_id = $1 ORDER BY seq DESC
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

func (s *PostgresStore) loadAthlete() (*models.Athlete, error) {
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

func (s *PostgresStore) GetCollege(id string) (*models.College, error) {
	var c models.College
	var stage, coachesJSON string
	err := s.db.QueryRow(`
		SELECT id, name, division, location, stage, interest, engagement, coaches
		FROM colleges WHERE id = $1
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

func (s *PostgresStore) AddCollege(partial *models.College) (*models.College, error) {
	c := applyCollegeDefaults(partial)

	coachesJSON, err := json.Marshal(c.Coaches)
	if err != nil {
		return nil, err
	}

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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, c.ID, c.Name, c.Division, c.Location, string(c.Stage), c.Interest, c.Engagement, position, string(coachesJSON))
	if err != nil {
		return nil, err
	}

	for j, in := range c.Interactions {
		_, err = s.db.Exec(`
			INSERT INTO interactions (id, college_id, date, type, coach_name, notes, seq)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, in.ID, c.ID, in.Date, string(in.Type), in.CoachName, in.Notes, len(c.Interactions)-j)
		if err != nil {
			return nil, err
		}
	}

	return &c, nil
}

func (s *PostgresStore) RemoveCollege(id string) error {
	// ON DELETE CASCADE cleans up the interactions
	_, err := s.db.Exec(`DELETE FROM colleges WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) UpdateStage(id string, stage models.RecruitingStage) error {
	_, err := s.db.Exec(`UPDATE colleges SET stage = $1 WHERE id = $2`, string(stage), id)
	return err
}

func (s *PostgresStore) UpdateInterest(id string, rating int) error {
	_, err := s.db.Exec(`UPDATE colleges SET interest = $1 WHERE id = $2`, rating, id)
	return err
}

func (s *PostgresStore) SetEngagement(id string, score int) error {
	_, err := s.db.Exec(`UPDATE colleges SET engagement = $1 WHERE id = $2`, score, id)
	return err
}

func (s *PostgresStore) AddInteraction(collegeID string, in models.Interaction) (*models.Interaction, error) {
	var exists int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM colleges WHERE id = $1`, collegeID).Scan(&exists); err != nil {
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
	if err := s.db.QueryRow(`SELECT MAX(seq) FROM interactions WHERE college_id = $1`, collegeID).Scan(&maxSeq); err != nil {
		return nil, err
	}
	seq := int64(1)
	if maxSeq.Valid {
		seq = maxSeq.Int64 + 1
	}

	_, err := s.db.Exec(`
		INSERT INTO interactions (id, college_id, date, type, coach_name, notes, seq)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, in.ID, collegeID, in.Date, string(in.Type), in.CoachName, in.Notes, seq)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *PostgresStore) ReplaceAthlete(athlete *models.Athlete) error {
	data, err := json.Marshal(athlete)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`UPDATE athlete SET data = $1 WHERE id = 1`, string(data))
	return err
}

func (s *PostgresStore) Reset() error {
	for _, table := range []string{"interactions", "colleges", "athlete"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}
	return s.seedData()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
