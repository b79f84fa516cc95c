package version

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// Заполняются через -ldflags "-X armory-server/internal/version.BuildDate=...".
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// День, с которого отсчитывается номер сборки.
var epoch = time.Date(2025, time.December, 4, 0, 0, 0, 0, time.UTC)

// Build - сведения о сборке. Отдается на /version и пишется в лог при старте.
type Build struct {
	Number   int    `json:"number"`
	Date     string `json:"date,omitempty"`
	Commit   string `json:"commit,omitempty"`
	Branch   string `json:"branch,omitempty"`
	CI       string `json:"ci,omitempty"`
	Protocol string `json:"protocol"`
	// Error - почему номер сборки не вычислен (локальная сборка без ldflags).
	Error string `json:"error,omitempty"`
}

// Known - номер сборки вычислен.
func (b Build) Known() bool { return b.Error == "" }

// BuildNumber - число дней от epoch до BuildDate.
func BuildNumber(date string) (int, error) {
	if date == "" {
		return 0, errors.New("build date is not set")
	}
	t, err := time.ParseInLocation(time.DateOnly, date, time.UTC)
	if err != nil {
		return 0, errors.Wrapf(err, "parse build date %q", date)
	}
	if t.Before(epoch) {
		return 0, errors.Newf("build date %s is before %s", date, epoch.Format(time.DateOnly))
	}
	return int(t.Sub(epoch) / (24 * time.Hour)), nil
}

// Current собирает сведения о текущем бинарнике.
func Current() Build {
	b := Build{
		Date:     BuildDate,
		Commit:   BuildCommit,
		Branch:   BuildBranch,
		CI:       BuildCI,
		Protocol: Protocol,
	}
	n, err := BuildNumber(BuildDate)
	if err != nil {
		b.Error = err.Error()
		return b
	}
	b.Number = n
	return b
}

func (b Build) String() string {
	if !b.Known() {
		return fmt.Sprintf("armory-server dev build, protocol %s (%s)", b.Protocol, b.Error)
	}
	return fmt.Sprintf("armory-server build %d (%s), protocol %s, commit %s@%s, ci %s",
		b.Number, b.Date, b.Protocol, or(b.Commit, "unknown"), or(b.Branch, "unknown"), or(b.CI, "local"))
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
