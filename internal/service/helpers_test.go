package service

import (
	"bytes"
	"sync"
	"testing"

	"github.com/shenikar/incident_map/internal/config"
	"github.com/shenikar/incident_map/internal/live"
	"github.com/sirupsen/logrus"
)

const (
	testUser  = "user-1"
	otherUser = "user-2"
	mb        = 1 << 20
)

// recordingBroadcaster запоминает разосланные сообщения
type recordingBroadcaster struct {
	mu   sync.Mutex
	msgs []live.Message
}

func (b *recordingBroadcaster) Broadcast(msg live.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, msg)
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.msgs))
	for i, m := range b.msgs {
		out[i] = m.Type
	}
	return out
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		MaxImageBytes:          4 * mb,
		MaxVideoBytes:          50 * mb,
		StatsTimeWindowMinutes: 60,
	}
}
