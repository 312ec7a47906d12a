package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterSession(scores ...int) *Session {
	names := []string{"Alpha Diner", "Bravo Bistro", "Charlie Cafe", "Delta Deli"}
	s := &Session{ID: "s1", Status: StatusPlaying}
	for i, score := range scores {
		s.Players = append(s.Players, Entrant{
			PlayerID:       PlayerID(rune('a' + i)),
			RestaurantName: names[i],
			Score:          score,
		})
	}
	return s
}

func TestGetEntrantReturnsMutableEntry(t *testing.T) {
	s := rosterSession(1, 2)

	e := s.GetEntrant("a")
	require.NotNil(t, e)
	e.Score += 10

	assert.Equal(t, 11, s.Players[0].Score, "GetEntrant should point into the roster")
	assert.Nil(t, s.GetEntrant("nobody"))
}

func TestAllReady(t *testing.T) {
	s := rosterSession(0, 0)
	assert.False(t, s.AllReady())

	s.Players[0].IsReady = true
	assert.False(t, s.AllReady())

	s.Players[1].IsReady = true
	assert.True(t, s.AllReady())
}

func TestAllReadyEmptyRoster(t *testing.T) {
	s := rosterSession()
	assert.True(t, s.AllReady())
}

func TestWinningRestaurant(t *testing.T) {
	s := rosterSession(3, 8, 5)

	winner, ok := s.WinningRestaurant()
	require.True(t, ok)
	assert.Equal(t, "Bravo Bistro", winner)
}

func TestWinningRestaurantTieGoesToEarliestEntrant(t *testing.T) {
	s := rosterSession(5, 9, 9)

	winner, ok := s.WinningRestaurant()
	require.True(t, ok)
	assert.Equal(t, "Bravo Bistro", winner, "first of the tied entrants wins")
}

func TestWinningRestaurantEmptyRoster(t *testing.T) {
	s := rosterSession()

	_, ok := s.WinningRestaurant()
	assert.False(t, ok)
}

func TestLeaderboardOrdersByScoreDescending(t *testing.T) {
	s := rosterSession(3, 8, 5)

	board := s.Leaderboard()
	require.Len(t, board, 3)
	assert.Equal(t, "Bravo Bistro", board[0].RestaurantName)
	assert.Equal(t, "Charlie Cafe", board[1].RestaurantName)
	assert.Equal(t, "Alpha Diner", board[2].RestaurantName)
}

func TestLeaderboardKeepsRosterOrderForTies(t *testing.T) {
	s := rosterSession(7, 2, 7, 2)

	board := s.Leaderboard()
	require.Len(t, board, 4)
	assert.Equal(t, "Alpha Diner", board[0].RestaurantName)
	assert.Equal(t, "Charlie Cafe", board[1].RestaurantName)
	assert.Equal(t, "Bravo Bistro", board[2].RestaurantName)
	assert.Equal(t, "Delta Deli", board[3].RestaurantName)
}

func TestLeaderboardDoesNotMutateRoster(t *testing.T) {
	s := rosterSession(1, 9)

	_ = s.Leaderboard()

	assert.Equal(t, "Alpha Diner", s.Players[0].RestaurantName)
	assert.Equal(t, 1, s.Players[0].Score)
}
