package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// До вызова Init это обычный logrus.New() (уровень info, stderr), поэтому
// ядро можно использовать и тестировать без предварительной настройки.
var Log = logrus.New()

// Init настраивает глобальный логгер из переменных окружения и пишет в stdout.
// Вызывается один раз при старте приложения в main.go.
func Init() {
	InitWithOutput(os.Stdout)
}

// InitWithOutput делает то же самое, что Init, но с произвольным writer'ом.
// Используется в тестах и в cmd/skirmish (io.Discard / stderr).
func InitWithOutput(out io.Writer) {
	Log = logrus.New()

	// LOG_LEVEL: по умолчанию "info". Для отладки - "debug".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// LOG_FORMAT: "json" для продакшена, всё остальное - текст.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   out == os.Stdout,
		})
	}

	Log.SetOutput(out)
}

// Component возвращает entry с полем component - так помечают свои логи все системы.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
