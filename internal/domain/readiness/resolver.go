package readiness

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/lineup-readiness/internal/domain/league"
)

const DefaultAvatarBaseURL = "https://sleepercdn.com/avatars/thumbs"

// TeamEntry is one matchup entry joined with its owner's identity.
type TeamEntry struct {
	RosterID  int
	MatchupID int
	Name      string
	AvatarURL string
	Starters  []string
}

// ResolveTeams produces one TeamEntry per matchup, in matchup order.
func ResolveTeams(users []league.User, rosters []league.Roster, matchups []league.Matchup, avatarBaseURL string) []TeamEntry {
	avatarBaseURL = strings.TrimRight(strings.TrimSpace(avatarBaseURL), "/")
	if avatarBaseURL == "" {
		avatarBaseURL = DefaultAvatarBaseURL
	}

	usersByID := make(map[string]league.User, len(users))
	for _, u := range users {
		usersByID[u.UserID] = u
	}
	ownerByRoster := make(map[int]string, len(rosters))
	for _, r := range rosters {
		ownerByRoster[r.RosterID] = strings.TrimSpace(r.OwnerID)
	}

	out := make([]TeamEntry, 0, len(matchups))
	for _, m := range matchups {
		ownerID := ownerByRoster[m.RosterID]
		entry := TeamEntry{
			RosterID:  m.RosterID,
			MatchupID: m.MatchupID,
			Starters:  m.Starters,
		}

		u, ok := usersByID[ownerID]
		if ok && ownerID != "" {
			entry.Name = teamDisplayName(u)
			if avatar := strings.TrimSpace(u.Avatar); avatar != "" {
				entry.AvatarURL = avatarBaseURL + "/" + avatar
			}
		} else {
			entry.Name = fallbackTeamName(ownerID, m.RosterID)
		}

		out = append(out, entry)
	}

	return out
}

func teamDisplayName(u league.User) string {
	if name := firstNonEmpty(u.TeamName, u.DisplayName, u.Username); name != "" {
		return strings.TrimSpace(name)
	}
	return fmt.Sprintf("Team %s", u.UserID)
}

func fallbackTeamName(ownerID string, rosterID int) string {
	if ownerID != "" {
		return "Team " + ownerID
	}
	return "Team " + strconv.Itoa(rosterID)
}
