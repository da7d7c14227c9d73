package sleeper

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/riskibarqy/lineup-readiness/external/sleeper/sleepertest"
	"github.com/riskibarqy/lineup-readiness/internal/platform/resilience"
	"github.com/riskibarqy/lineup-readiness/internal/usecase"
)

func newTestClient(baseURL string, retries int) *Client {
	return NewClient(ClientConfig{
		HTTPClient:   &http.Client{Timeout: 5 * time.Second},
		BaseURL:      baseURL,
		MaxRetries:   retries,
		RetryBackoff: time.Millisecond,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})
}

func TestClient_GetSeasonState(t *testing.T) {
	t.Parallel()

	fake := sleepertest.NewServer()
	defer fake.Close()

	state, err := newTestClient(fake.URL(), 0).GetSeasonState(context.Background(), "nfl")
	if err != nil {
		t.Fatalf("get season state: %v", err)
	}
	if state.Week != 5 || state.DisplayWeek != 5 || state.SeasonType != "regular" || state.Season != "2025" {
		t.Fatalf("unexpected state: %+v", state)
	}
	if state.CurrentWeek() != 5 || state.IsPreseason() {
		t.Fatalf("unexpected derived state: week=%d preseason=%v", state.CurrentWeek(), state.IsPreseason())
	}
}

func TestClient_ListUsersFlattensNullableFields(t *testing.T) {
	t.Parallel()

	fake := sleepertest.NewServer()
	defer fake.Close()

	users, err := newTestClient(fake.URL(), 0).ListUsers(context.Background(), sleepertest.LeagueID)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	if users[0].TeamName != "Gus's Bus" || users[0].Avatar != "a1b2c3" {
		t.Fatalf("unexpected first user: %+v", users[0])
	}
	if users[1].TeamName != "" || users[1].Avatar != "" || users[1].DisplayName != "Longshot" {
		t.Fatalf("unexpected second user: %+v", users[1])
	}
	if users[2].DisplayName != "" || users[2].Username != "blitz" {
		t.Fatalf("unexpected third user: %+v", users[2])
	}
}

func TestClient_UnknownLeagueNullBodyIsEmpty(t *testing.T) {
	t.Parallel()

	fake := sleepertest.NewServer()
	defer fake.Close()

	client := newTestClient(fake.URL(), 0)
	users, err := client.ListUsers(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Fatalf("expected empty non-nil users, got %#v", users)
	}

	rosters, err := client.ListRosters(context.Background(), "does-not-exist")
	if err != nil || len(rosters) != 0 {
		t.Fatalf("expected empty rosters, got %v %v", rosters, err)
	}
}

func TestClient_ListRostersAndMatchups(t *testing.T) {
	t.Parallel()

	fake := sleepertest.NewServer()
	defer fake.Close()

	client := newTestClient(fake.URL(), 0)
	rosters, err := client.ListRosters(context.Background(), sleepertest.LeagueID)
	if err != nil {
		t.Fatalf("list rosters: %v", err)
	}
	if len(rosters) != 4 || rosters[0].OwnerID != "u1" || rosters[3].OwnerID != "" {
		t.Fatalf("unexpected rosters: %+v", rosters)
	}

	matchups, err := client.ListMatchups(context.Background(), sleepertest.LeagueID, 5)
	if err != nil {
		t.Fatalf("list matchups: %v", err)
	}
	if len(matchups) != 4 {
		t.Fatalf("expected 4 matchups, got %d", len(matchups))
	}
	if matchups[0].MatchupID != 1 || matchups[0].Starters[0] != "KC" {
		t.Fatalf("unexpected first matchup: %+v", matchups[0])
	}
	if matchups[3].MatchupID != 0 {
		t.Fatalf("expected null matchup id to decode as 0, got %d", matchups[3].MatchupID)
	}
}

func TestClient_ListPlayersKeysDefenseByMapKey(t *testing.T) {
	t.Parallel()

	fake := sleepertest.NewServer()
	defer fake.Close()

	players, err := newTestClient(fake.URL(), 0).ListPlayers(context.Background(), "nfl")
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(players) != 7 {
		t.Fatalf("expected 7 players, got %d", len(players))
	}
	kelce := players["1023"]
	if kelce.FullName() != "Travis Kelce" || kelce.Team != "KC" || kelce.InjuryStatus != "Questionable" {
		t.Fatalf("unexpected player: %+v", kelce)
	}
	if players["4046"].InjuryStatus != "" {
		t.Fatalf("expected null injury status to be empty")
	}
	if def, ok := players["KC"]; !ok || def.ID != "KC" {
		t.Fatalf("expected defense keyed by map key, got %+v", def)
	}
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	fake := sleepertest.NewServer()
	defer fake.Close()
	fake.FailNext("/state/nfl", 1)

	if _, err := newTestClient(fake.URL(), 1).GetSeasonState(context.Background(), "nfl"); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if got := fake.Hits("/state/nfl"); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestClient_OpensCircuitAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	fake := sleepertest.NewServer()
	defer fake.Close()
	fake.FailNext("/state/nfl", 10)

	client := newTestClient(fake.URL(), 0)
	for i := 0; i < 2; i++ {
		_, err := client.GetSeasonState(context.Background(), "nfl")
		if err == nil {
			t.Fatalf("expected failure on attempt %d", i)
		}
		if errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("breaker should still be closed on attempt %d", i)
		}
	}

	_, err := client.GetSeasonState(context.Background(), "nfl")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable from open breaker, got %v", err)
	}
	if got := fake.Hits("/state/nfl"); got != 2 {
		t.Fatalf("expected open breaker to short-circuit, server saw %d requests", got)
	}
}

func TestClient_NotFoundDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	fake := sleepertest.NewServer()
	defer fake.Close()

	client := newTestClient(fake.URL()+"/missing", 3)
	for i := 0; i < 3; i++ {
		_, err := client.GetSeasonState(context.Background(), "nfl")
		if !errors.Is(err, usecase.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	}
	if client.breaker.State() != resilience.CircuitStateClosed {
		t.Fatalf("expected breaker closed after 404s, got %s", client.breaker.State())
	}
}

func TestClient_CancelledCallerDoesNotFailSharedRequest(t *testing.T) {
	t.Parallel()

	fake := sleepertest.NewServer()
	defer fake.Close()
	fake.Hold()

	client := newTestClient(fake.URL(), 0)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := client.GetSeasonState(firstCtx, "nfl")
		firstErr <- err
	}()
	waitForHits(t, fake, "/state/nfl", 1)

	secondErr := make(chan error, 1)
	secondWeek := make(chan int, 1)
	go func() {
		state, err := client.GetSeasonState(context.Background(), "nfl")
		secondWeek <- state.CurrentWeek()
		secondErr <- err
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected first caller to see its cancellation, got %v", err)
	}

	fake.Release()
	if err := <-secondErr; err != nil {
		t.Fatalf("expected joined caller to succeed, got %v", err)
	}
	if week := <-secondWeek; week != 5 {
		t.Fatalf("unexpected week %d", week)
	}
	if got := fake.Hits("/state/nfl"); got != 1 {
		t.Fatalf("expected one upstream request, got %d", got)
	}
}

func TestClient_JoinedCallerHonoursOwnDeadline(t *testing.T) {
	t.Parallel()

	fake := sleepertest.NewServer()
	defer fake.Close()
	fake.Hold()

	client := newTestClient(fake.URL(), 0)
	go func() { _, _ = client.ListPlayers(context.Background(), "nfl") }()
	waitForHits(t, fake, "/players/nfl", 1)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := client.ListPlayers(ctx, "nfl")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected own deadline while waiting, got %v", err)
	}
}

func waitForHits(t *testing.T, fake *sleepertest.Server, path string, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if fake.Hits(path) >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d hits on %s", n, path)
}
