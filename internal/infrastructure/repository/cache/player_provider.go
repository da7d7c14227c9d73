package cache

import (
	"context"
	"strings"

	"github.com/riskibarqy/lineup-readiness/internal/domain/player"
	basecache "github.com/riskibarqy/lineup-readiness/internal/platform/cache"
)

// PlayerProvider caches the player dictionary per sport. The dictionary is
// league independent, so every league load shares one entry.
type PlayerProvider struct {
	next  player.Provider
	cache *basecache.Store
}

func NewPlayerProvider(next player.Provider, cache *basecache.Store) *PlayerProvider {
	return &PlayerProvider{next: next, cache: cache}
}

// ListPlayers returns the shared cached dictionary; callers must not modify it.
func (p *PlayerProvider) ListPlayers(ctx context.Context, sport string) (player.Dictionary, error) {
	key := "players:" + strings.ToLower(strings.TrimSpace(sport))
	v, err := p.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := p.next.ListPlayers(ctx, sport)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = player.Dictionary{}
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.(player.Dictionary)
	return items, nil
}
