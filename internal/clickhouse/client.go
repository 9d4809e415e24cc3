// Package clickhouse computes coach-side engagement scores from the
// profile-view analytics dataset. The scores land on each college's
// Engagement field via a periodic sync.
package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Client provides ClickHouse integration for engagement scores
type Client struct {
	conn driver.Conn
}

// NewClient creates a new ClickHouse client
func NewClient(addr, database, username, password string) (*Client, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: database,
			Username: username,
			Password: password,
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &Client{conn: conn}, nil
}

// GetEngagement computes the engagement score for one college from its
// recent profile views: distinct coach viewers weigh heaviest, then raw
// view count, then total time on the profile.
func (c *Client) GetEngagement(collegeID string) (int, error) {
	var score int

	query := `
		SELECT
			toInt32(
				countDistinct(viewer_id) * 10 +  -- Unique coaches who viewed
				count() / 10 +                    -- Total profile views
				sum(duration) / 60                -- Time on profile (seconds to minutes)
			) as engagement
		FROM recruiting_profile_views
		WHERE college_id = $1
		AND timestamp >= now() - INTERVAL 30 DAY
	`

	row := c.conn.QueryRow(context.Background(), query, collegeID)
	if err := row.Scan(&score); err != nil {
		return 0, err
	}

	return score, nil
}

// GetAllEngagement retrieves engagement scores for every college with
// recent profile views.
func (c *Client) GetAllEngagement() (map[string]int, error) {
	scores := make(map[string]int)

	query := `
		SELECT
			college_id,
			toInt32(
				countDistinct(viewer_id) * 10 +
				count() / 10 +
				sum(duration) / 60
			) as engagement
		FROM recruiting_profile_views
		WHERE timestamp >= now() - INTERVAL 30 DAY
		GROUP BY college_id
	`

	rows, err := c.conn.Query(context.Background(), query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var score int
		if err := rows.Scan(&id, &score); err != nil {
			return nil, err
		}
		scores[id] = score
	}

	return scores, nil
}

// SyncEngagement pushes fresh engagement scores through updateFunc,
// typically the store's SetEngagement. Called periodically.
func (c *Client) SyncEngagement(updateFunc func(collegeID string, score int) error) error {
	scores, err := c.GetAllEngagement()
	if err != nil {
		return err
	}

	for collegeID, score := range scores {
		if err := updateFunc(collegeID, score); err != nil {
			return fmt.Errorf("failed to update engagement for %s: %w", collegeID, err)
		}
	}

	return nil
}

// Close closes the ClickHouse connection
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
