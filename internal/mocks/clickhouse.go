package mocks

import (
	"math/rand"

	"github.com/bertagmachine/recruit-funnel/internal/logger"
)

// MockClickHouseClient provides a mock ClickHouse client for local development
type MockClickHouseClient struct {
	baseScores map[string]int
}

// NewMockClickHouseClient creates a mock ClickHouse client seeded with
// plausible engagement scores for the starter pipeline.
func NewMockClickHouseClient() *MockClickHouseClient {
	logger.Info("Using MOCK ClickHouse client for local development")

	return &MockClickHouseClient{
		baseScores: map[string]int{
			"1": 84, // University of Florida
			"2": 61, // University of Michigan
			"3": 47, // Utah State University
			"4": 12, // Baltimore City CC
			"5": 38, // Ohio State University
			"6": 72, // University of Alabama
			"7": 91, // Miles Community College
		},
	}
}

// GetEngagement returns a mock engagement score with slight variation
func (m *MockClickHouseClient) GetEngagement(collegeID string) (int, error) {
	base, ok := m.baseScores[collegeID]
	if !ok {
		base = 20 // Default for colleges added after seeding
	}
	return jitter(base), nil
}

// GetAllEngagement returns mock engagement scores for every known college
func (m *MockClickHouseClient) GetAllEngagement() (map[string]int, error) {
	result := make(map[string]int)
	for id, base := range m.baseScores {
		result[id] = jitter(base)
	}
	return result, nil
}

// SyncEngagement pushes mock scores through updateFunc
func (m *MockClickHouseClient) SyncEngagement(updateFunc func(collegeID string, score int) error) error {
	scores, err := m.GetAllEngagement()
	if err != nil {
		return err
	}
	for id, score := range scores {
		if err := updateFunc(id, score); err != nil {
			return err
		}
	}
	return nil
}

// Close is a no-op for mock
func (m *MockClickHouseClient) Close() error {
	return nil
}

// jitter adds ±10% variance so dev dashboards don't look frozen.
func jitter(base int) int {
	if base < 10 {
		return base
	}
	variance := rand.Intn(base/5+1) - base/10
	return base + variance
}
