package match

import (
	"fmt"
	"time"
)

// Status mirrors the lifecycle reported by the external fixture feed.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

// Match is an upcoming or running cricket fixture contests attach to.
type Match struct {
	ID       string
	Team1    string
	Team2    string
	Venue    string
	StartsAt time.Time
	Status   Status
}

// Started reports whether the match has begun relative to now. The feed's
// status wins when it is already past upcoming; the start time covers feeds
// that lag behind the clock.
func (m Match) Started(now time.Time) bool {
	if m.Status != StatusUpcoming {
		return true
	}
	return !now.Before(m.StartsAt)
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.Team1 == "" || m.Team2 == "" {
		return fmt.Errorf("both match teams are required")
	}
	if m.StartsAt.IsZero() {
		return fmt.Errorf("match start time is required")
	}
	switch m.Status {
	case StatusUpcoming, StatusLive, StatusCompleted:
	default:
		return fmt.Errorf("invalid match status: %s", m.Status)
	}

	return nil
}
