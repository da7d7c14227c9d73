package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/lineup-readiness/internal/usecase"
)

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSession")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(h.session.Snapshot()))
}

// SubmitSessionLeague switches the session to a new league. The load runs in
// the background; clients poll GET /v1/session.
func (h *Handler) SubmitSessionLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitSessionLeague")
	defer span.End()

	var req submitLeagueRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.session.Submit(req.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "submit session league failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, sessionToDTO(snapshot))
}
