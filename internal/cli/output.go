package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/donothingclub/donothing/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// UserView wraps a user for display
type UserView struct {
	User model.User `json:"user"`
}

// LeaderboardView wraps one board scope for display
type LeaderboardView struct {
	Scope   string                   `json:"scope"`
	Entries []model.LeaderboardEntry `json:"entries"`
}

// SessionSummary reports an ended session
type SessionSummary struct {
	Elapsed int64 `json:"elapsed"`
	Total   int64 `json:"total"`
}

// HealthView reports service availability
type HealthView struct {
	Status string `json:"status"`
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
		return
	}
	o.printText(data)
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
		return
	}
	fmt.Println(msg)
}

// PrintStatus outputs a one-line accrual status during a running session
func (o *Output) PrintStatus(total int64, globalRank int) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]any{"total": total, "global_rank": globalRank})
		fmt.Println(string(data))
		return
	}
	if globalRank > 0 {
		fmt.Printf("accrued %s of nothing (global rank #%d)\n", formatSeconds(total), globalRank)
	} else {
		fmt.Printf("accrued %s of nothing\n", formatSeconds(total))
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case UserView:
		o.printUser(v.User)
	case LeaderboardView:
		o.printLeaderboard(v)
	case SessionSummary:
		o.printSessionSummary(v)
	case HealthView:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printUser(u model.User) {
	fmt.Printf("User: %s\n", u.ID)
	if u.Username != "" {
		fmt.Printf("Username: %s\n", u.Username)
	}
	registered := "no"
	if u.Registered {
		registered = "yes"
	}
	fmt.Printf("Registered: %s\n", registered)
	if u.Country != "" {
		fmt.Printf("Country: %s (%s)\n", u.Country, u.CountryCode)
	}
	fmt.Printf("Total time: %s\n", formatSeconds(u.TotalTime))
	if !u.LastActive.IsZero() {
		fmt.Printf("Last active: %s\n", u.LastActive.Format(time.RFC3339))
	}
}

func (o *Output) printLeaderboard(v LeaderboardView) {
	fmt.Printf("Leaderboard (%s):\n", v.Scope)
	if len(v.Entries) == 0 {
		fmt.Println("  nobody is doing nothing yet")
		return
	}
	for i, e := range v.Entries {
		name := e.Username
		if name == "" {
			name = "anonymous"
		}
		country := ""
		if e.CountryCode != "" {
			country = fmt.Sprintf(" [%s]", e.CountryCode)
		}
		fmt.Printf("  %3d. %s%s - %s\n", i+1, name, country, formatSeconds(e.Time))
	}
}

func (o *Output) printSessionSummary(v SessionSummary) {
	fmt.Printf("Session over: %s of nothing this session, %s all time\n",
		formatSeconds(v.Elapsed), formatSeconds(v.Total))
}

// formatSeconds renders an accrued second count as h/m/s
func formatSeconds(seconds int64) string {
	return (time.Duration(seconds) * time.Second).String()
}
