package league

import "context"

// Provider exposes the read-only league endpoints of the fantasy platform.
type Provider interface {
	GetSeasonState(ctx context.Context, sport string) (SeasonState, error)
	ListUsers(ctx context.Context, leagueID string) ([]User, error)
	ListRosters(ctx context.Context, leagueID string) ([]Roster, error)
	ListMatchups(ctx context.Context, leagueID string, week int) ([]Matchup, error)
}
