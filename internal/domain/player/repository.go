package player

import "context"

// Provider fetches the full player dictionary for a sport.
type Provider interface {
	ListPlayers(ctx context.Context, sport string) (Dictionary, error)
}
