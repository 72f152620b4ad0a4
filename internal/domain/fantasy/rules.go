package fantasy

import (
	"errors"
	"fmt"

	"github.com/pitchside/fantasy-cricket/internal/domain/player"
)

var (
	ErrInvalidRosterSize      = errors.New("invalid roster size")
	ErrDuplicatePlayerInTeam  = errors.New("duplicate player in team")
	ErrPositionOutOfBounds    = errors.New("position count out of bounds")
	ErrUnknownPlayerPosition  = errors.New("unknown player position")
	ErrExceededBudget         = errors.New("credit budget exceeded")
	ErrCaptainNotInRoster     = errors.New("captain is not in the roster")
	ErrViceCaptainNotInRoster = errors.New("vice-captain is not in the roster")
	ErrCaptainIsViceCaptain   = errors.New("captain and vice-captain must differ")
)

// PositionBound caps how many players of one position a roster may carry.
type PositionBound struct {
	Min int
	Max int
}

// Rules stores fantasy roster validation parameters.
type Rules struct {
	RosterSize int
	BudgetCap  int64
	Bounds     map[player.Position]PositionBound
}

func DefaultRules() Rules {
	return Rules{
		RosterSize: 11,
		BudgetCap:  100,
		Bounds: map[player.Position]PositionBound{
			player.PositionWicketkeeper: {Min: 1, Max: 4},
			player.PositionBatsman:      {Min: 3, Max: 6},
			player.PositionAllrounder:   {Min: 1, Max: 4},
			player.PositionBowler:       {Min: 3, Max: 6},
		},
	}
}

// ValidateRoster checks a candidate roster against composition and budget
// rules, short-circuiting on the first violation. It is re-applied server-side
// regardless of what a client already validated.
func ValidateRoster(picks []player.Player, captainID, viceCaptainID string, rules Rules) error {
	if len(picks) != rules.RosterSize {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidRosterSize, rules.RosterSize, len(picks))
	}

	positionCounter := make(map[player.Position]int)
	playerSet := make(map[string]struct{}, len(picks))
	var totalCredits int64

	for _, pick := range picks {
		if pick.ID == "" {
			return fmt.Errorf("player id is required")
		}
		if _, exists := playerSet[pick.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayerInTeam, pick.ID)
		}
		playerSet[pick.ID] = struct{}{}

		if _, ok := player.AllPositions[pick.Position]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPlayerPosition, pick.Position)
		}

		positionCounter[pick.Position]++
		totalCredits += pick.Credits
	}

	for pos, bound := range rules.Bounds {
		count := positionCounter[pos]
		if count < bound.Min || count > bound.Max {
			return fmt.Errorf("%w: pos=%s min=%d max=%d current=%d", ErrPositionOutOfBounds, pos, bound.Min, bound.Max, count)
		}
	}

	if totalCredits > rules.BudgetCap {
		return fmt.Errorf("%w: cap=%d used=%d", ErrExceededBudget, rules.BudgetCap, totalCredits)
	}

	if _, ok := playerSet[captainID]; !ok {
		return fmt.Errorf("%w: %s", ErrCaptainNotInRoster, captainID)
	}
	if _, ok := playerSet[viceCaptainID]; !ok {
		return fmt.Errorf("%w: %s", ErrViceCaptainNotInRoster, viceCaptainID)
	}
	if captainID == viceCaptainID {
		return fmt.Errorf("%w: %s", ErrCaptainIsViceCaptain, captainID)
	}

	return nil
}
