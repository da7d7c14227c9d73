package sleeper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/lineup-readiness/internal/domain/league"
	"github.com/riskibarqy/lineup-readiness/internal/domain/player"
	"github.com/riskibarqy/lineup-readiness/internal/platform/logging"
	"github.com/riskibarqy/lineup-readiness/internal/platform/resilience"
	"github.com/riskibarqy/lineup-readiness/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL      = "https://api.sleeper.app/v1"
	defaultTimeout      = 30 * time.Second
	defaultRetryBackoff = 500 * time.Millisecond
	maxResponseBytes    = 64 << 20
)

var errSleeperTransient = crerr.New("sleeper transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads league state from the Sleeper public API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	retryBackoff   time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.Flight[[]byte]
}

var (
	_ league.Provider = (*Client)(nil)
	_ player.Provider = (*Client)(nil)
)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	breakerCfg := cfg.CircuitBreaker.WithDefaults()

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     max(cfg.MaxRetries, 0),
		retryBackoff:   backoff,
		logger:         logger.Named("sleeper"),
		breaker:        resilience.FromConfig(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) GetSeasonState(ctx context.Context, sport string) (league.SeasonState, error) {
	var out stateResponse
	if err := c.doJSON(ctx, "/state/"+url.PathEscape(sport), &out); err != nil {
		return league.SeasonState{}, fmt.Errorf("fetch %s state: %w", sport, err)
	}
	return out.toDomain(), nil
}

func (c *Client) ListUsers(ctx context.Context, leagueID string) ([]league.User, error) {
	var items []userResponse
	if err := c.doJSON(ctx, "/league/"+url.PathEscape(leagueID)+"/users", &items); err != nil {
		return nil, fmt.Errorf("fetch users league_id=%s: %w", leagueID, err)
	}

	out := make([]league.User, 0, len(items))
	for _, item := range items {
		out = append(out, item.toDomain())
	}
	return out, nil
}

func (c *Client) ListRosters(ctx context.Context, leagueID string) ([]league.Roster, error) {
	var items []rosterResponse
	if err := c.doJSON(ctx, "/league/"+url.PathEscape(leagueID)+"/rosters", &items); err != nil {
		return nil, fmt.Errorf("fetch rosters league_id=%s: %w", leagueID, err)
	}

	out := make([]league.Roster, 0, len(items))
	for _, item := range items {
		out = append(out, item.toDomain())
	}
	return out, nil
}

func (c *Client) ListMatchups(ctx context.Context, leagueID string, week int) ([]league.Matchup, error) {
	path := "/league/" + url.PathEscape(leagueID) + "/matchups/" + strconv.Itoa(week)
	var items []matchupResponse
	if err := c.doJSON(ctx, path, &items); err != nil {
		return nil, fmt.Errorf("fetch matchups league_id=%s week=%d: %w", leagueID, week, err)
	}

	out := make([]league.Matchup, 0, len(items))
	for _, item := range items {
		out = append(out, item.toDomain())
	}
	return out, nil
}

func (c *Client) ListPlayers(ctx context.Context, sport string) (player.Dictionary, error) {
	var items map[string]playerResponse
	if err := c.doJSON(ctx, "/players/"+url.PathEscape(sport), &items); err != nil {
		return nil, fmt.Errorf("fetch %s players: %w", sport, err)
	}

	out := make(player.Dictionary, len(items))
	for key, item := range items {
		p := item.toDomain(key)
		out[p.ID] = p
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	fullURL := c.baseURL + path

	raw, shared, err := c.flight.Do(ctx, fullURL, func(ctx context.Context) ([]byte, error) {
		if !c.circuitEnabled {
			return c.executeRequest(ctx, fullURL)
		}

		var raw []byte
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isCircuitFailure)
		if crerr.Is(execErr, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "sleeper circuit breaker rejected request", "path", path, "state", c.breaker.State())
			return nil, fmt.Errorf("%w: league data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return raw, execErr
	})
	if err != nil {
		return err
	}
	if shared {
		c.logger.DebugContext(ctx, "sleeper request shared with in-flight call", "path", path)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, err := c.send(ctx, fullURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !isCircuitFailure(err) || ctx.Err() != nil {
			break
		}
		if attempt == c.maxRetries {
			break
		}

		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "sleeper request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) send(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "send request"), errSleeperTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read response body"), errSleeperTransient)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: provider status=404", usecase.ErrNotFound)
	case isRetryableStatus(resp.StatusCode):
		return nil, crerr.Mark(crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw)), errSleeperTransient)
	default:
		return nil, crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	}
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errSleeperTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
