package byeweek

import (
	"context"
	"regexp"
	"sort"
	"strings"
)

var teamCodePattern = regexp.MustCompile(`^[A-Z]{2,4}$`)

// IsTeamCode reports whether v has the shape of a team code (2-4 uppercase letters).
func IsTeamCode(v string) bool {
	return teamCodePattern.MatchString(v)
}

// TeamSet is a set of team codes.
type TeamSet map[string]struct{}

func NewTeamSet(codes ...string) TeamSet {
	out := make(TeamSet, len(codes))
	for _, code := range codes {
		out[code] = struct{}{}
	}
	return out
}

func (s TeamSet) Contains(code string) bool {
	if code == "" {
		return false
	}
	_, ok := s[code]
	return ok
}

// Sorted returns the codes in lexical order.
func (s TeamSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for code := range s {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Table maps a week number to the teams on bye that week.
// It is season configuration and must be refreshed every season.
type Table struct {
	Season string
	Weeks  map[int]TeamSet
}

// TeamsOnBye returns the bye set for week, empty when the week is absent.
func (t Table) TeamsOnBye(week int) TeamSet {
	set, ok := t.Weeks[week]
	if !ok || set == nil {
		return TeamSet{}
	}
	return set
}

// NormalizeCode upper-cases and trims a team code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Source supplies the active bye-week table.
type Source interface {
	Table(ctx context.Context) (Table, error)
}
