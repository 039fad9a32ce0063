package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	base := "+ PCB list (tick = 0)\nPID |Name |\n1   |init |\n"
	var longer []string
	for i := 0; i < 20; i++ {
		longer = append(longer, "row")
	}
	long := strings.Join(longer, "\n") + "\n"

	testCases := []struct {
		name     string
		expected string
		actual   string
		equal    bool
		hunks    int
		added    int
		removed  int
	}{
		{name: "identical", expected: base, actual: base, equal: true},
		{name: "changed line", expected: base, actual: strings.Replace(base, "init", "idle", 1), hunks: 1, added: 1, removed: 1},
		{name: "appended", expected: base, actual: base + "2   |sh   |\n", hunks: 1, added: 1},
		{
			name:     "two distant changes",
			expected: "first\n" + long + "last\n",
			actual:   "FIRST\n" + long + "LAST\n",
			hunks:    2, added: 2, removed: 2,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Compare([]byte(tc.expected), []byte(tc.actual), "run.txt")
			require.NoError(t, err)
			assert.Equal(t, tc.equal, result.Equal)
			assert.Equal(t, tc.hunks, result.Hunks)
			assert.Equal(t, tc.added, result.Added)
			assert.Equal(t, tc.removed, result.Removed)
			if tc.equal {
				assert.Empty(t, result.Diff)
				assert.Contains(t, result.String(), "matches")
				return
			}
			assert.Contains(t, result.Diff, "--- expected/run.txt")
			assert.Contains(t, result.Diff, "+++ actual/run.txt")
		})
	}
}
