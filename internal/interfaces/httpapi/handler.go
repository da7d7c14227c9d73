package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/lineup-readiness/internal/domain/byeweek"
	"github.com/riskibarqy/lineup-readiness/internal/platform/logging"
	"github.com/riskibarqy/lineup-readiness/internal/usecase"
)

type Handler struct {
	readinessService *usecase.ReadinessService
	session          *usecase.LoadCoordinator
	byeWeeks         byeweek.Source
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	readinessService *usecase.ReadinessService,
	session *usecase.LoadCoordinator,
	byeWeeks byeweek.Source,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		readinessService: readinessService,
		session:          session,
		byeWeeks:         byeWeeks,
		logger:           logger.Named("handler"),
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
