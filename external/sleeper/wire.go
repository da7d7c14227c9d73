package sleeper

import (
	"strings"

	"github.com/riskibarqy/lineup-readiness/internal/domain/league"
	"github.com/riskibarqy/lineup-readiness/internal/domain/player"
)

type stateResponse struct {
	Week        int    `json:"week"`
	DisplayWeek int    `json:"display_week"`
	Leg         int    `json:"leg"`
	Season      string `json:"season"`
	SeasonType  string `json:"season_type"`
}

type userResponse struct {
	UserID      string        `json:"user_id"`
	Username    *string       `json:"username"`
	DisplayName *string       `json:"display_name"`
	Avatar      *string       `json:"avatar"`
	Metadata    *userMetadata `json:"metadata"`
}

type userMetadata struct {
	TeamName *string `json:"team_name"`
}

type rosterResponse struct {
	RosterID int     `json:"roster_id"`
	OwnerID  *string `json:"owner_id"`
}

type matchupResponse struct {
	RosterID  int      `json:"roster_id"`
	MatchupID *int     `json:"matchup_id"`
	Starters  []string `json:"starters"`
}

type playerResponse struct {
	PlayerID     string  `json:"player_id"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Team         *string `json:"team"`
	Position     *string `json:"position"`
	InjuryStatus *string `json:"injury_status"`
	Status       *string `json:"status"`
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func (s stateResponse) toDomain() league.SeasonState {
	return league.SeasonState{
		Week:        s.Week,
		DisplayWeek: s.DisplayWeek,
		Leg:         s.Leg,
		Season:      strings.TrimSpace(s.Season),
		SeasonType:  strings.ToLower(strings.TrimSpace(s.SeasonType)),
	}
}

func (u userResponse) toDomain() league.User {
	out := league.User{
		UserID:      strings.TrimSpace(u.UserID),
		Username:    deref(u.Username),
		DisplayName: deref(u.DisplayName),
		Avatar:      deref(u.Avatar),
	}
	if u.Metadata != nil {
		out.TeamName = deref(u.Metadata.TeamName)
	}
	return out
}

func (r rosterResponse) toDomain() league.Roster {
	return league.Roster{
		RosterID: r.RosterID,
		OwnerID:  deref(r.OwnerID),
	}
}

func (m matchupResponse) toDomain() league.Matchup {
	out := league.Matchup{
		RosterID: m.RosterID,
		Starters: append([]string(nil), m.Starters...),
	}
	if m.MatchupID != nil {
		out.MatchupID = *m.MatchupID
	}
	return out
}

// toDomain keys by the map key when the record omits player_id, which is the
// case for team defense entries.
func (p playerResponse) toDomain(key string) player.Player {
	id := strings.TrimSpace(p.PlayerID)
	if id == "" {
		id = key
	}
	return player.Player{
		ID:           id,
		FirstName:    deref(p.FirstName),
		LastName:     deref(p.LastName),
		Team:         strings.ToUpper(deref(p.Team)),
		Position:     deref(p.Position),
		InjuryStatus: deref(p.InjuryStatus),
		Status:       deref(p.Status),
	}
}
