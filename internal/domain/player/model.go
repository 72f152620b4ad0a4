package player

import "fmt"

// Position represents cricket position categories used in fantasy rules.
type Position string

const (
	PositionWicketkeeper Position = "wicketkeeper"
	PositionBatsman      Position = "batsman"
	PositionAllrounder   Position = "allrounder"
	PositionBowler       Position = "bowler"
)

var AllPositions = map[Position]struct{}{
	PositionWicketkeeper: {},
	PositionBatsman:      {},
	PositionAllrounder:   {},
	PositionBowler:       {},
}

// Player is a selectable athlete in the match player pool.
type Player struct {
	ID       string
	Name     string
	Team     string
	Position Position
	Credits  int64
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Team == "" {
		return fmt.Errorf("player team is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Credits < 0 {
		return fmt.Errorf("player credits cannot be negative")
	}

	return nil
}
