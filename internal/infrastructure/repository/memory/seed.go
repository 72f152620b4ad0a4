package memory

import (
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/contest"
	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/domain/player"
)

const (
	MatchIDIndAus = "t20-ind-aus"
	MatchIDEngSa  = "t20-eng-sa"
	MatchIDNzPak  = "t20-nz-pak"

	ContestIDMega       = "contest-mega-ind-aus"
	ContestIDHeadToHead = "contest-h2h-ind-aus"
	ContestIDEngSa      = "contest-mega-eng-sa"
)

func SeedMatches() []match.Match {
	now := time.Now().UTC()

	return []match.Match{
		{
			ID:       MatchIDIndAus,
			Team1:    "India",
			Team2:    "Australia",
			Venue:    "Wankhede Stadium, Mumbai",
			StartsAt: now.Add(48 * time.Hour),
			Status:   match.StatusUpcoming,
		},
		{
			ID:       MatchIDEngSa,
			Team1:    "England",
			Team2:    "South Africa",
			Venue:    "Lord's, London",
			StartsAt: now.Add(-2 * time.Hour),
			Status:   match.StatusLive,
		},
		{
			ID:       MatchIDNzPak,
			Team1:    "New Zealand",
			Team2:    "Pakistan",
			Venue:    "Eden Park, Auckland",
			StartsAt: now.Add(-30 * time.Hour),
			Status:   match.StatusCompleted,
		},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "ind-wk-01", Name: "Rishabh Pant", Team: "India", Position: player.PositionWicketkeeper, Credits: 10},
		{ID: "ind-bat-01", Name: "Virat Kohli", Team: "India", Position: player.PositionBatsman, Credits: 11},
		{ID: "ind-bat-02", Name: "Rohit Sharma", Team: "India", Position: player.PositionBatsman, Credits: 10},
		{ID: "ind-bat-03", Name: "Shubman Gill", Team: "India", Position: player.PositionBatsman, Credits: 9},
		{ID: "ind-bat-04", Name: "Shreyas Iyer", Team: "India", Position: player.PositionBatsman, Credits: 8},
		{ID: "ind-ar-01", Name: "Hardik Pandya", Team: "India", Position: player.PositionAllrounder, Credits: 10},
		{ID: "ind-ar-02", Name: "Ravindra Jadeja", Team: "India", Position: player.PositionAllrounder, Credits: 9},
		{ID: "ind-bowl-01", Name: "Jasprit Bumrah", Team: "India", Position: player.PositionBowler, Credits: 10},
		{ID: "ind-bowl-02", Name: "Mohammed Siraj", Team: "India", Position: player.PositionBowler, Credits: 8},
		{ID: "ind-bowl-03", Name: "Kuldeep Yadav", Team: "India", Position: player.PositionBowler, Credits: 8},
		{ID: "aus-wk-01", Name: "Alex Carey", Team: "Australia", Position: player.PositionWicketkeeper, Credits: 8},
		{ID: "aus-bat-01", Name: "Steve Smith", Team: "Australia", Position: player.PositionBatsman, Credits: 10},
		{ID: "aus-bat-02", Name: "Travis Head", Team: "Australia", Position: player.PositionBatsman, Credits: 10},
		{ID: "aus-bat-03", Name: "Marnus Labuschagne", Team: "Australia", Position: player.PositionBatsman, Credits: 9},
		{ID: "aus-bat-04", Name: "David Warner", Team: "Australia", Position: player.PositionBatsman, Credits: 8},
		{ID: "aus-ar-01", Name: "Glenn Maxwell", Team: "Australia", Position: player.PositionAllrounder, Credits: 10},
		{ID: "aus-ar-02", Name: "Cameron Green", Team: "Australia", Position: player.PositionAllrounder, Credits: 8},
		{ID: "aus-bowl-01", Name: "Pat Cummins", Team: "Australia", Position: player.PositionBowler, Credits: 10},
		{ID: "aus-bowl-02", Name: "Mitchell Starc", Team: "Australia", Position: player.PositionBowler, Credits: 9},
		{ID: "aus-bowl-03", Name: "Adam Zampa", Team: "Australia", Position: player.PositionBowler, Credits: 8},
	}
}

func SeedContests() []contest.Contest {
	return []contest.Contest{
		{
			ID:         ContestIDMega,
			MatchID:    MatchIDIndAus,
			TotalSpots: 10,
			EntryFee:   49,
			PrizePool:  400,
		},
		{
			ID:         ContestIDHeadToHead,
			MatchID:    MatchIDIndAus,
			TotalSpots: 2,
			EntryFee:   25,
			PrizePool:  45,
		},
		{
			ID:         ContestIDEngSa,
			MatchID:    MatchIDEngSa,
			TotalSpots: 5,
			EntryFee:   10,
			PrizePool:  40,
		},
	}
}
