package fantasy

import (
	"errors"
	"testing"

	"github.com/pitchside/fantasy-cricket/internal/domain/player"
)

func validRoster() []player.Player {
	// 1 wicketkeeper, 5 batsmen, 1 allrounder, 4 bowlers, 95 credits total.
	return []player.Player{
		{ID: "p1", Name: "WK One", Team: "IND", Position: player.PositionWicketkeeper, Credits: 9},
		{ID: "p2", Name: "Bat One", Team: "IND", Position: player.PositionBatsman, Credits: 10},
		{ID: "p3", Name: "Bat Two", Team: "IND", Position: player.PositionBatsman, Credits: 9},
		{ID: "p4", Name: "Bat Three", Team: "AUS", Position: player.PositionBatsman, Credits: 9},
		{ID: "p5", Name: "Bat Four", Team: "AUS", Position: player.PositionBatsman, Credits: 8},
		{ID: "p6", Name: "Bat Five", Team: "AUS", Position: player.PositionBatsman, Credits: 8},
		{ID: "p7", Name: "All One", Team: "IND", Position: player.PositionAllrounder, Credits: 9},
		{ID: "p8", Name: "Bowl One", Team: "AUS", Position: player.PositionBowler, Credits: 9},
		{ID: "p9", Name: "Bowl Two", Team: "IND", Position: player.PositionBowler, Credits: 8},
		{ID: "p10", Name: "Bowl Three", Team: "AUS", Position: player.PositionBowler, Credits: 8},
		{ID: "p11", Name: "Bowl Four", Team: "IND", Position: player.PositionBowler, Credits: 8},
	}
}

func TestValidateRoster(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func([]player.Player) []player.Player
		captain     string
		viceCaptain string
		targetErr   error
	}{
		{
			name:        "valid roster",
			mutate:      func(picks []player.Player) []player.Player { return picks },
			captain:     "p2",
			viceCaptain: "p8",
			targetErr:   nil,
		},
		{
			name: "too few players",
			mutate: func(picks []player.Player) []player.Player {
				return picks[:10]
			},
			captain:     "p2",
			viceCaptain: "p8",
			targetErr:   ErrInvalidRosterSize,
		},
		{
			name: "duplicate player",
			mutate: func(picks []player.Player) []player.Player {
				picks[1] = picks[0]
				return picks
			},
			captain:     "p1",
			viceCaptain: "p8",
			targetErr:   ErrDuplicatePlayerInTeam,
		},
		{
			name: "no wicketkeeper",
			mutate: func(picks []player.Player) []player.Player {
				picks[0].Position = player.PositionBatsman
				return picks
			},
			captain:     "p2",
			viceCaptain: "p8",
			targetErr:   ErrPositionOutOfBounds,
		},
		{
			name: "too many batsmen",
			mutate: func(picks []player.Player) []player.Player {
				picks[6].Position = player.PositionBatsman
				picks[7].Position = player.PositionBatsman
				return picks
			},
			captain:     "p2",
			viceCaptain: "p9",
			targetErr:   ErrPositionOutOfBounds,
		},
		{
			name: "unknown position",
			mutate: func(picks []player.Player) []player.Player {
				picks[3].Position = player.Position("twelfth-man")
				return picks
			},
			captain:     "p2",
			viceCaptain: "p8",
			targetErr:   ErrUnknownPlayerPosition,
		},
		{
			name: "budget exceeded",
			mutate: func(picks []player.Player) []player.Player {
				picks[1].Credits = 16
				return picks
			},
			captain:     "p2",
			viceCaptain: "p8",
			targetErr:   ErrExceededBudget,
		},
		{
			name:        "captain outside roster",
			mutate:      func(picks []player.Player) []player.Player { return picks },
			captain:     "p99",
			viceCaptain: "p8",
			targetErr:   ErrCaptainNotInRoster,
		},
		{
			name:        "vice-captain outside roster",
			mutate:      func(picks []player.Player) []player.Player { return picks },
			captain:     "p2",
			viceCaptain: "p99",
			targetErr:   ErrViceCaptainNotInRoster,
		},
		{
			name:        "captain equals vice-captain",
			mutate:      func(picks []player.Player) []player.Player { return picks },
			captain:     "p2",
			viceCaptain: "p2",
			targetErr:   ErrCaptainIsViceCaptain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			picks := tt.mutate(validRoster())

			err := ValidateRoster(picks, tt.captain, tt.viceCaptain, DefaultRules())
			if tt.targetErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected error %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestValidateRoster_BoundsAreInclusive(t *testing.T) {
	// 4 wicketkeepers, 3 batsmen, 1 allrounder, 3 bowlers sits exactly on the
	// upper and lower bounds.
	picks := validRoster()
	picks[1].Position = player.PositionWicketkeeper
	picks[2].Position = player.PositionWicketkeeper
	picks[3].Position = player.PositionWicketkeeper
	picks[8].Position = player.PositionBatsman

	if err := ValidateRoster(picks, "p1", "p11", DefaultRules()); err != nil {
		t.Fatalf("expected boundary roster to validate, got %v", err)
	}
}
