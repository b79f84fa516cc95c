package engine

import (
	"fmt"
	"time"

	"armory-server/pkg/api"
	"armory-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// AddLog добавляет запись в лог игрока. Уйдет с ближайшим HUD.
func (s *Session) AddLog(text, logType string) {
	s.logSeq++
	s.Logs = append(s.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%s_%d", s.ID, s.logSeq),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	logger.WithComponent("game_log").WithFields(logrus.Fields{
		"player":   s.ID,
		"log_type": logType,
	}).Info(text)
}
