package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Session:
		o.printSession(v)
	case SessionList:
		o.printSessionList(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player Player `json:"player"`
	Token  string `json:"token"`
}

// Entrant response type
type Entrant struct {
	PlayerID       string    `json:"player_id"`
	RestaurantName string    `json:"restaurant_name"`
	Score          int       `json:"score"`
	IsReady        bool      `json:"is_ready"`
	JoinedAt       time.Time `json:"joined_at"`
}

// Session response type
type Session struct {
	ID        string    `json:"id"`
	ShortCode string    `json:"short_code"`
	CreatorID string    `json:"creator_id"`
	Status    string    `json:"status"`
	Players   []Entrant `json:"players"`
	Winner    *string   `json:"winner,omitempty"`
}

// SessionList response type
type SessionList struct {
	Sessions []Session `json:"sessions"`
}

// Leaderboard response type
type Leaderboard struct {
	Entries []Entrant `json:"entries"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.ID)
	fmt.Printf("Code: %s\n", s.ShortCode)
	fmt.Printf("Status: %s\n", s.Status)
	if s.Winner != nil {
		fmt.Printf("Winner: %s\n", *s.Winner)
	}
	fmt.Printf("Players (%d):\n", len(s.Players))
	for _, p := range s.Players {
		readyStr := ""
		if p.IsReady {
			readyStr = " [ready]"
		}
		fmt.Printf("  - %s (%s) - %d points%s\n", p.RestaurantName, p.PlayerID, p.Score, readyStr)
	}
}

func (o *Output) printSessionList(l SessionList) {
	if len(l.Sessions) == 0 {
		fmt.Println("No sessions found")
		return
	}
	for i, s := range l.Sessions {
		if i > 0 {
			fmt.Println()
		}
		o.printSession(s)
	}
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Println("Leaderboard:")
	for i, e := range l.Entries {
		fmt.Printf("  %d. %s - %d points\n", i+1, e.RestaurantName, e.Score)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
