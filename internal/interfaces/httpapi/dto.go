package httpapi

import (
	"time"

	"github.com/riskibarqy/lineup-readiness/internal/domain/readiness"
	"github.com/riskibarqy/lineup-readiness/internal/usecase"
)

type submitLeagueRequest struct {
	LeagueID string `json:"league_id" validate:"required,max=64"`
}

type batchReadinessRequest struct {
	LeagueIDs []string `json:"league_ids" validate:"required,min=1,max=100,dive,required,max=64"`
}

type flaggedPlayerDTO struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Reason   string `json:"reason"`
}

type teamReadinessDTO struct {
	RosterID  int                `json:"rosterId"`
	MatchupID int                `json:"matchupId"`
	Name      string             `json:"name"`
	AvatarURL string             `json:"avatarUrl,omitempty"`
	Verdict   string             `json:"verdict"`
	Flagged   []flaggedPlayerDTO `json:"flagged"`
}

type readinessGroupsDTO struct {
	OK         []teamReadinessDTO `json:"ok"`
	Potential  []teamReadinessDTO `json:"potential"`
	Incomplete []teamReadinessDTO `json:"incomplete"`
}

type readinessReportDTO struct {
	LeagueID   string             `json:"leagueId"`
	LoadID     string             `json:"loadId"`
	Season     string             `json:"season,omitempty"`
	SeasonType string             `json:"seasonType,omitempty"`
	Week       int                `json:"week"`
	Preseason  bool               `json:"preseason"`
	ByeTeams   []string           `json:"byeTeams"`
	TeamCount  int                `json:"teamCount"`
	Groups     readinessGroupsDTO `json:"groups"`
	LoadedAt   string             `json:"loadedAt"`
}

type batchResultDTO struct {
	LeagueID string              `json:"leagueId"`
	Status   string              `json:"status"`
	Error    string              `json:"error,omitempty"`
	Report   *readinessReportDTO `json:"report,omitempty"`
}

type batchReadinessDTO struct {
	Results      []batchResultDTO `json:"results"`
	SuccessCount int              `json:"successCount"`
	FailedCount  int              `json:"failedCount"`
}

type sessionDTO struct {
	LeagueID   string              `json:"leagueId,omitempty"`
	Generation uint64              `json:"generation"`
	Loading    bool                `json:"loading"`
	Error      string              `json:"error,omitempty"`
	Report     *readinessReportDTO `json:"report,omitempty"`
	UpdatedAt  string              `json:"updatedAt,omitempty"`
}

type byeWeekDTO struct {
	Season string   `json:"season,omitempty"`
	Week   int      `json:"week"`
	Teams  []string `json:"teams"`
}

func reportToDTO(report usecase.Report) readinessReportDTO {
	byeTeams := report.ByeTeams
	if byeTeams == nil {
		byeTeams = []string{}
	}

	return readinessReportDTO{
		LeagueID:   report.LeagueID,
		LoadID:     report.LoadID,
		Season:     report.Season,
		SeasonType: report.SeasonType,
		Week:       report.Week,
		Preseason:  report.Preseason,
		ByeTeams:   byeTeams,
		TeamCount:  report.TeamCount,
		Groups: readinessGroupsDTO{
			OK:         teamsToDTO(report.Groups.OK),
			Potential:  teamsToDTO(report.Groups.Potential),
			Incomplete: teamsToDTO(report.Groups.Incomplete),
		},
		LoadedAt: formatTime(report.LoadedAt),
	}
}

func teamsToDTO(teams []readiness.EvaluatedTeam) []teamReadinessDTO {
	out := make([]teamReadinessDTO, 0, len(teams))
	for _, t := range teams {
		flagged := make([]flaggedPlayerDTO, 0, len(t.Flagged))
		for _, f := range t.Flagged {
			flagged = append(flagged, flaggedPlayerDTO{
				PlayerID: f.PlayerID,
				Name:     f.Name,
				Reason:   f.Reason,
			})
		}
		out = append(out, teamReadinessDTO{
			RosterID:  t.RosterID,
			MatchupID: t.MatchupID,
			Name:      t.Name,
			AvatarURL: t.AvatarURL,
			Verdict:   string(t.Verdict),
			Flagged:   flagged,
		})
	}
	return out
}

func sessionToDTO(snapshot usecase.SessionSnapshot) sessionDTO {
	out := sessionDTO{
		LeagueID:   snapshot.LeagueID,
		Generation: snapshot.Generation,
		Loading:    snapshot.Loading,
		Error:      snapshot.Error,
		UpdatedAt:  formatTime(snapshot.UpdatedAt),
	}
	if snapshot.Report != nil {
		report := reportToDTO(*snapshot.Report)
		out.Report = &report
	}
	return out
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
