package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/lineup-readiness/internal/usecase"
)

func (h *Handler) GetByeWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetByeWeek")
	defer span.End()

	raw := strings.TrimSpace(r.PathValue("week"))
	week, err := strconv.Atoi(raw)
	if err != nil || week < 1 {
		writeError(ctx, w, fmt.Errorf("%w: week must be a positive integer, got %q", usecase.ErrInvalidInput, raw))
		return
	}

	table, err := h.byeWeeks.Table(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "load bye week table failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, byeWeekDTO{
		Season: table.Season,
		Week:   week,
		Teams:  table.TeamsOnBye(week).Sorted(),
	})
}
