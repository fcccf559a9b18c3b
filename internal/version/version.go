package version

import (
	"fmt"
	"time"
)

// Project - имя сервиса в /version и в стартовом логе.
const Project = "tactics-server"

// Заполняются через -ldflags "-X tactics-server/internal/version.BuildDate=..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// Номер сборки = дни от первого коммита боевого ядра.
var buildEpoch = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

// VersionInfo - метаданные сборки для /version.
type VersionInfo struct {
	Project    string `json:"project"`
	BuildID    int    `json:"buildId"`
	BuildDate  string `json:"buildDate,omitempty"`
	Commit     string `json:"commit,omitempty"`
	Branch     string `json:"branch,omitempty"`
	CI         string `json:"ci,omitempty"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`
}

// BuildID считает номер сборки из BuildDate.
func BuildID() (int, error) {
	if BuildDate == "" {
		return 0, fmt.Errorf("build date is not set")
	}

	t, err := time.ParseInLocation(time.DateOnly, BuildDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", BuildDate, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("build date %s is before %s", BuildDate, buildEpoch.Format(time.DateOnly))
	}

	// Обе даты в UTC, поэтому деление часов на 24 точное
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info собирает VersionInfo. Без ldflags возвращает Calculated=false.
func Info() VersionInfo {
	info := VersionInfo{
		Project:   Project,
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		CI:        BuildCI,
	}

	id, err := BuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.BuildID = id
	info.Calculated = true
	return info
}

// String - строка для стартового лога.
func String() string {
	info := Info()
	if !info.Calculated {
		return fmt.Sprintf("%s build unknown (%s)", info.Project, info.Error)
	}

	return fmt.Sprintf("%s build %d (%s) commit[%s] branch[%s] ci[%s]",
		info.Project,
		info.BuildID,
		info.BuildDate,
		orDefault(info.Commit, "unknown"),
		orDefault(info.Branch, "unknown"),
		orDefault(info.CI, "local"),
	)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
