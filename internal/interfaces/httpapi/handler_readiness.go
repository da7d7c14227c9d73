package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/lineup-readiness/internal/usecase"
)

const (
	batchStatusSuccess = "success"
	batchStatusFailed  = "failed"
)

func (h *Handler) GetLeagueReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueReadiness")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	report, err := h.readinessService.Load(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "load league readiness failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reportToDTO(report))
}

func (h *Handler) BatchReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BatchReadiness")
	defer span.End()

	var req batchReadinessRequest
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

	results, err := h.readinessService.LoadBatch(ctx, req.LeagueIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "batch readiness failed", "leagues", len(req.LeagueIDs), "error", err)
		writeError(ctx, w, err)
		return
	}

	out := batchReadinessDTO{Results: make([]batchResultDTO, 0, len(results))}
	for _, row := range results {
		item := batchResultDTO{LeagueID: row.LeagueID}
		if row.Err != nil {
			item.Status = batchStatusFailed
			item.Error = row.Err.Error()
			out.FailedCount++
		} else {
			report := reportToDTO(*row.Report)
			item.Status = batchStatusSuccess
			item.Report = &report
			out.SuccessCount++
		}
		out.Results = append(out.Results, item)
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
