package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/lineup-readiness/external/sleeper"
	"github.com/riskibarqy/lineup-readiness/internal/config"
	"github.com/riskibarqy/lineup-readiness/internal/domain/byeweek"
	"github.com/riskibarqy/lineup-readiness/internal/domain/player"
	"github.com/riskibarqy/lineup-readiness/internal/domain/readiness"
	infrabye "github.com/riskibarqy/lineup-readiness/internal/infrastructure/byeweek"
	cacherepo "github.com/riskibarqy/lineup-readiness/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/lineup-readiness/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/lineup-readiness/internal/platform/cache"
	idgen "github.com/riskibarqy/lineup-readiness/internal/platform/id"
	"github.com/riskibarqy/lineup-readiness/internal/platform/logging"
	"github.com/riskibarqy/lineup-readiness/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	byeWeeks, err := newByeWeekSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	client := sleeper.NewClient(sleeper.ClientConfig{
		BaseURL:        cfg.SleeperBaseURL,
		Timeout:        cfg.SleeperTimeout,
		MaxRetries:     cfg.SleeperMaxRetries,
		Logger:         logger,
		CircuitBreaker: cfg.SleeperCircuit,
	})

	var players player.Provider = client
	if cfg.PlayersCacheEnabled {
		players = cacherepo.NewPlayerProvider(client, basecache.NewStore(cfg.PlayersCacheTTL))
	}

	readinessSvc := usecase.NewReadinessService(
		client,
		players,
		byeWeeks,
		idgen.NewRandomGenerator("load"),
		usecase.ReadinessConfig{
			Sport:           cfg.SleeperSport,
			AvatarBaseURL:   cfg.SleeperAvatarBaseURL,
			Rules:           readiness.DefaultRules(cfg.ClassifyPUPAsIncomplete),
			BatchWorkers:    cfg.ReadinessBatchWorkers,
			BatchMaxLeagues: cfg.ReadinessBatchMaxLeagues,
		},
		logger,
	)
	session := usecase.NewLoadCoordinator(readinessSvc, cfg.LoadTimeout, logger)

	handler := httpapi.NewHandler(readinessSvc, session, byeWeeks, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	server.RegisterOnShutdown(session.Close)

	return server, nil
}

func newByeWeekSource(cfg config.Config, logger *logging.Logger) (byeweek.Source, error) {
	if cfg.ByeWeeksFile == "" {
		logger.Warn("bye week table not configured, no team will be treated as on bye", "env", "BYE_WEEKS_FILE")
		return infrabye.NewStatic(byeweek.Table{}), nil
	}

	source, err := infrabye.LoadFile(cfg.ByeWeeksFile)
	if err != nil {
		return nil, fmt.Errorf("load bye weeks: %w", err)
	}

	table, _ := source.Table(context.Background())
	logger.Info("bye week table loaded", "path", cfg.ByeWeeksFile, "season", table.Season, "weeks", len(table.Weeks))
	return source, nil
}
