package engine

import (
	"fmt"
	"tactics-server/pkg/api"
	"time"

	"github.com/sirupsen/logrus"
)

// AddLog добавляет запись в боевой лог инстанса
func (i *Instance) AddLog(text, logType string) {
	i.logSeq++
	i.Logs = append(i.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%s_%d", i.ID, i.logSeq),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	i.log().WithFields(logrus.Fields{
		"component": "game_log",
		"log_type":  logType,
	}).Info(text)
}
