package fantasy

import (
	"fmt"
	"time"
)

// Team is one user's locked-in 11 for a match, with captain picks.
// Teams are immutable after creation; there is no edit path.
type Team struct {
	ID            string
	UserID        string
	MatchID       string
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
	TotalCredits  int64
	CreatedAt     time.Time
}

func (t Team) ValidateBasic() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if t.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	if len(t.PlayerIDs) == 0 {
		return fmt.Errorf("team players are required")
	}
	if t.CaptainID == "" || t.ViceCaptainID == "" {
		return fmt.Errorf("captain and vice-captain are required")
	}

	return nil
}
