package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/lineup-readiness/internal/domain/byeweek"
	"github.com/riskibarqy/lineup-readiness/internal/domain/league"
	"github.com/riskibarqy/lineup-readiness/internal/domain/player"
	"github.com/riskibarqy/lineup-readiness/internal/domain/readiness"
	"github.com/riskibarqy/lineup-readiness/internal/platform/id"
	"github.com/riskibarqy/lineup-readiness/internal/platform/logging"
)

const (
	defaultSport           = "nfl"
	defaultBatchWorkers    = 4
	defaultBatchMaxLeagues = 20
)

type ReadinessConfig struct {
	Sport           string
	AvatarBaseURL   string
	Rules           readiness.ClassificationRules
	BatchWorkers    int
	BatchMaxLeagues int
}

// Report is the outcome of one completed league load.
type Report struct {
	LoadID     string
	LeagueID   string
	Season     string
	SeasonType string
	Week       int
	Preseason  bool
	ByeTeams   []string
	Groups     readiness.Groups
	TeamCount  int
	LoadedAt   time.Time
}

type BatchResult struct {
	LeagueID string
	Report   *Report
	Err      error
}

type ReadinessService struct {
	leagues  league.Provider
	players  player.Provider
	byeWeeks byeweek.Source
	ids      id.Generator
	cfg      ReadinessConfig
	logger   *logging.Logger
	now      func() time.Time
}

func NewReadinessService(
	leagues league.Provider,
	players player.Provider,
	byeWeeks byeweek.Source,
	ids id.Generator,
	cfg ReadinessConfig,
	logger *logging.Logger,
) *ReadinessService {
	if strings.TrimSpace(cfg.Sport) == "" {
		cfg.Sport = defaultSport
	}
	if strings.TrimSpace(cfg.AvatarBaseURL) == "" {
		cfg.AvatarBaseURL = readiness.DefaultAvatarBaseURL
	}
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = defaultBatchWorkers
	}
	if cfg.BatchMaxLeagues <= 0 {
		cfg.BatchMaxLeagues = defaultBatchMaxLeagues
	}
	if ids == nil {
		ids = id.NewRandomGenerator("load")
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ReadinessService{
		leagues:  leagues,
		players:  players,
		byeWeeks: byeWeeks,
		ids:      ids,
		cfg:      cfg,
		logger:   logger.Named("readiness"),
		now:      time.Now,
	}
}

func (s *ReadinessService) Sport() string {
	return s.cfg.Sport
}

// Load fetches every input of a league's current week and classifies all
// rostered teams. Any failed fetch aborts the load; no partial report is
// returned.
func (s *ReadinessService) Load(ctx context.Context, leagueID string) (Report, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return Report{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.ReadinessService.Load")
	defer span.End()

	loadID, err := s.ids.NewID()
	if err != nil {
		return Report{}, fmt.Errorf("generate load id: %w", err)
	}
	start := s.now()
	logger := s.logger.With("load_id", loadID, "league_id", leagueID)

	state, err := s.leagues.GetSeasonState(ctx, s.cfg.Sport)
	if err != nil {
		logger.WarnContext(ctx, "season state fetch failed", "error", err)
		return Report{}, fetchError("season state", err)
	}
	week := state.CurrentWeek()

	var (
		users    []league.User
		rosters  []league.Roster
		matchups []league.Matchup
		players  player.Dictionary
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		items, err := s.leagues.ListUsers(ctx, leagueID)
		if err != nil {
			return fetchError("league users", err)
		}
		users = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.leagues.ListRosters(ctx, leagueID)
		if err != nil {
			return fetchError("league rosters", err)
		}
		rosters = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.leagues.ListMatchups(ctx, leagueID, week)
		if err != nil {
			return fetchError(fmt.Sprintf("matchups week=%d", week), err)
		}
		matchups = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.players.ListPlayers(ctx, s.cfg.Sport)
		if err != nil {
			return fetchError("player dictionary", err)
		}
		players = items
		return nil
	})
	if err := p.Wait(); err != nil {
		logger.WarnContext(ctx, "league load aborted", "week", week, "error", err)
		return Report{}, err
	}

	table, err := s.byeWeeks.Table(ctx)
	if err != nil {
		logger.WarnContext(ctx, "bye week table read failed", "week", week, "error", err)
		return Report{}, fetchError("bye week table", err)
	}
	byeTeams := table.TeamsOnBye(week)

	teams := readiness.ResolveTeams(users, rosters, matchups, s.cfg.AvatarBaseURL)
	groups := readiness.Group(readiness.Evaluate(teams, players, byeTeams, s.cfg.Rules))

	report := Report{
		LoadID:     loadID,
		LeagueID:   leagueID,
		Season:     state.Season,
		SeasonType: state.SeasonType,
		Week:       week,
		Preseason:  state.IsPreseason(),
		ByeTeams:   byeTeams.Sorted(),
		Groups:     groups,
		TeamCount:  groups.Total(),
		LoadedAt:   s.now().UTC(),
	}

	logger.InfoContext(ctx, "league readiness loaded",
		"week", week,
		"teams", report.TeamCount,
		"ok", len(groups.OK),
		"potential", len(groups.Potential),
		"incomplete", len(groups.Incomplete),
		"duration_ms", s.now().Sub(start).Milliseconds(),
	)
	return report, nil
}

// LoadBatch loads several leagues on a bounded worker pool. Per-league
// failures are reported in the result rows; only invalid input fails the
// whole batch.
func (s *ReadinessService) LoadBatch(ctx context.Context, leagueIDs []string) ([]BatchResult, error) {
	ids := normalizeLeagueIDs(leagueIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one league id is required", ErrInvalidInput)
	}
	if len(ids) > s.cfg.BatchMaxLeagues {
		return nil, fmt.Errorf("%w: at most %d league ids per batch", ErrInvalidInput, s.cfg.BatchMaxLeagues)
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.ReadinessService.LoadBatch")
	defer span.End()

	workerCount := s.cfg.BatchWorkers
	if workerCount > len(ids) {
		workerCount = len(ids)
	}

	workers, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	results := make(chan BatchResult, len(ids))
	var wg sync.WaitGroup
	for _, leagueID := range ids {
		leagueID := leagueID
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()

			row := BatchResult{LeagueID: leagueID}
			report, err := s.Load(ctx, leagueID)
			if err != nil {
				row.Err = err
			} else {
				row.Report = &report
			}
			results <- row
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit league load to worker pool: %w", err)
		}
	}

	wg.Wait()
	close(results)

	out := make([]BatchResult, 0, len(ids))
	for row := range results {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LeagueID < out[j].LeagueID
	})
	return out, nil
}

func normalizeLeagueIDs(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// fetchError keeps not-found and cancellation errors as they are and marks
// everything else as an upstream outage.
func fetchError(what string, err error) error {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrDependencyUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("fetch %s: %w", what, err)
	default:
		return fmt.Errorf("%w: fetch %s: %w", ErrDependencyUnavailable, what, err)
	}
}
