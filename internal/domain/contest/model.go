package contest

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrAlreadyJoined       = errors.New("user already joined this contest")
	ErrContestFull         = errors.New("contest is full")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrTeamMismatch        = errors.New("team does not match contest")
	ErrContestClosed       = errors.New("contest is closed")
)

// State is the contest lifecycle. Transitions are monotonic: Open → Full →
// Locked → Settled. Open/Full derive from the spot counter, Locked from the
// match start, Settled from the stored settlement flag.
type State string

const (
	StateOpen    State = "open"
	StateFull    State = "full"
	StateLocked  State = "locked"
	StateSettled State = "settled"
)

// Participant is one user's entry into a contest via one fantasy team.
// Points arrive from the external scoring feed; Rank is assigned exactly once
// at settlement.
type Participant struct {
	UserID   string
	TeamID   string
	Points   int64
	Rank     *int
	JoinedAt time.Time
}

// Contest is a paid, capacity-limited pool attached to one match.
type Contest struct {
	ID           string
	MatchID      string
	TotalSpots   int
	SpotsFilled  int
	EntryFee     int64
	PrizePool    int64
	Settled      bool
	Participants []Participant
}

// StateAt derives the lifecycle state. matchStarted is an external fact owned
// by the match feed.
func (c Contest) StateAt(matchStarted bool) State {
	switch {
	case c.Settled:
		return StateSettled
	case matchStarted:
		return StateLocked
	case c.SpotsFilled >= c.TotalSpots:
		return StateFull
	default:
		return StateOpen
	}
}

func (c Contest) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("contest id is required")
	}
	if c.MatchID == "" {
		return fmt.Errorf("contest match id is required")
	}
	if c.TotalSpots <= 0 {
		return fmt.Errorf("contest total spots must be greater than zero")
	}
	if c.SpotsFilled < 0 || c.SpotsFilled > c.TotalSpots {
		return fmt.Errorf("contest spots filled out of range: %d/%d", c.SpotsFilled, c.TotalSpots)
	}
	if c.EntryFee < 0 {
		return fmt.Errorf("contest entry fee cannot be negative")
	}
	if c.PrizePool < 0 {
		return fmt.Errorf("contest prize pool cannot be negative")
	}

	return nil
}
