package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNumber(t *testing.T) {
	cases := map[string]struct {
		date string
		want int
		fail bool
	}{
		"first day":      {date: "2025-12-04", want: 0},
		"next day":       {date: "2025-12-05", want: 1},
		"a year later":   {date: "2026-12-04", want: 365},
		"over leap days": {date: "2032-12-04", want: 2557},
		"garbage":        {date: "yesterday", fail: true},
		"not set":        {date: "", fail: true},
		"too early":      {date: "2025-12-03", fail: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := BuildNumber(tc.date)
			if tc.fail {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCurrent(t *testing.T) {
	old := BuildDate
	defer func() { BuildDate = old }()

	BuildDate = ""
	dev := Current()
	assert.False(t, dev.Known())
	assert.Contains(t, dev.String(), "dev build")

	BuildDate = "2025-12-05"
	b := Current()
	require.True(t, b.Known())
	assert.Equal(t, 1, b.Number)
	assert.Equal(t, Protocol, b.Protocol)
	assert.Contains(t, b.String(), "build 1 (2025-12-05), protocol "+Protocol)
}
