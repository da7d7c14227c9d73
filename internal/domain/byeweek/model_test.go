package byeweek

import "testing"

func TestIsTeamCode(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"KC":    true,
		"SF":    true,
		"JAX":   true,
		"WASH":  true,
		"K":     false,
		"KANSA": false,
		"kc":    false,
		"1023":  false,
		"K1":    false,
		"":      false,
	}
	for input, want := range cases {
		if got := IsTeamCode(input); got != want {
			t.Fatalf("IsTeamCode(%q)=%v want=%v", input, got, want)
		}
	}
}

func TestTable_TeamsOnByeMissingWeekIsEmpty(t *testing.T) {
	t.Parallel()

	table := Table{Weeks: map[int]TeamSet{5: NewTeamSet("KC", "BUF")}}

	if got := table.TeamsOnBye(5); !got.Contains("KC") || !got.Contains("BUF") || len(got) != 2 {
		t.Fatalf("unexpected week 5 set: %v", got.Sorted())
	}
	if got := table.TeamsOnBye(6); len(got) != 0 {
		t.Fatalf("expected empty set for week 6, got %v", got.Sorted())
	}

	var zero Table
	if got := zero.TeamsOnBye(1); got == nil || len(got) != 0 {
		t.Fatalf("expected non-nil empty set from zero table")
	}
}
