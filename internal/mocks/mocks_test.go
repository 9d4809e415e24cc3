package mocks

import (
	"os"
	"testing"
	"time"

	"github.com/bertagmachine/recruit-funnel/internal/logger"
	"github.com/bertagmachine/recruit-funnel/internal/pubsub"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestMockClickHouseEngagement(t *testing.T) {
	ch := NewMockClickHouseClient()

	score, err := ch.GetEngagement("1")
	if err != nil {
		t.Fatalf("GetEngagement failed: %v", err)
	}
	// Base 84 with ±10% jitter
	if score < 70 || score > 100 {
		t.Errorf("score %d outside jitter range for base 84", score)
	}

	// Unknown colleges get the default baseline
	score, err = ch.GetEngagement("brand-new")
	if err != nil {
		t.Fatalf("GetEngagement failed: %v", err)
	}
	if score < 15 || score > 25 {
		t.Errorf("default score %d outside expected range", score)
	}
}

func TestMockClickHouseSync(t *testing.T) {
	ch := NewMockClickHouseClient()

	synced := map[string]int{}
	err := ch.SyncEngagement(func(collegeID string, score int) error {
		synced[collegeID] = score
		return nil
	})
	if err != nil {
		t.Fatalf("SyncEngagement failed: %v", err)
	}
	if len(synced) != 7 {
		t.Errorf("synced %d colleges, want 7", len(synced))
	}
}

func TestMockNATSPubSub(t *testing.T) {
	ps := NewMockNATSPubSub()
	defer ps.Close()

	ch := ps.Subscribe()
	ps.Publish(pubsub.CollegeEvent(pubsub.EventCollegeAdd, "42"))

	select {
	case event := <-ch:
		if event.Type != pubsub.EventCollegeAdd {
			t.Errorf("event type = %q", event.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}
