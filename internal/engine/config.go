package engine

import "time"

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. Матч N получает Seed + N,
	// поэтому при одинаковом Seed серия матчей воспроизводима.
	Seed int64

	// Scenario - имя сценария из каталога для новых матчей.
	Scenario string

	// ContentPath - YAML с архетипами и сценариями. Пусто - встроенный каталог.
	ContentPath string

	// ReplayDir - куда писать записи законченных матчей.
	ReplayDir string

	// RecordReplays - сохранять ли записи при закрытии матча.
	RecordReplays bool
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:          time.Now().UnixNano(),
		Scenario:      "crypt",
		ReplayDir:     "replays",
		RecordReplays: true,
	}
}
