package byeweek

import (
	"context"
	"os"
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/lineup-readiness/internal/domain/byeweek"
)

type fileShape struct {
	Season string           `yaml:"season"`
	Weeks  map[int][]string `yaml:"weeks"`
}

// StaticSource serves a fixed bye-week table.
type StaticSource struct {
	table byeweek.Table
}

func NewStatic(table byeweek.Table) *StaticSource {
	if table.Weeks == nil {
		table.Weeks = map[int]byeweek.TeamSet{}
	}
	return &StaticSource{table: table}
}

func (s *StaticSource) Table(context.Context) (byeweek.Table, error) {
	return s.table, nil
}

// LoadFile reads a YAML bye-week table:
//
//	season: "2025"
//	weeks:
//	  5: [ATL, CHI, GB, PIT]
func LoadFile(path string) (*StaticSource, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, crerr.New("bye week file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read bye week file %q", path)
	}

	table, err := Parse(raw)
	if err != nil {
		return nil, crerr.Wrapf(err, "parse bye week file %q", path)
	}
	return NewStatic(table), nil
}

// Parse decodes and validates a YAML bye-week table. A team may appear in at
// most one week.
func Parse(raw []byte) (byeweek.Table, error) {
	var shape fileShape
	if err := yaml.Unmarshal(raw, &shape); err != nil {
		return byeweek.Table{}, crerr.Wrap(err, "decode yaml")
	}

	table := byeweek.Table{
		Season: strings.TrimSpace(shape.Season),
		Weeks:  make(map[int]byeweek.TeamSet, len(shape.Weeks)),
	}
	weeks := make([]int, 0, len(shape.Weeks))
	for week := range shape.Weeks {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)

	seenWeek := make(map[string]int)
	for _, week := range weeks {
		codes := shape.Weeks[week]
		if week <= 0 {
			return byeweek.Table{}, crerr.Newf("week %d must be positive", week)
		}
		set := make(byeweek.TeamSet, len(codes))
		for _, code := range codes {
			code = byeweek.NormalizeCode(code)
			if !byeweek.IsTeamCode(code) {
				return byeweek.Table{}, crerr.Newf("week %d: invalid team code %q", week, code)
			}
			if prev, ok := seenWeek[code]; ok && prev != week {
				return byeweek.Table{}, crerr.Newf("team %s is on bye in weeks %d and %d", code, prev, week)
			}
			seenWeek[code] = week
			set[code] = struct{}{}
		}
		table.Weeks[week] = set
	}

	return table, nil
}
