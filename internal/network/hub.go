package network

import (
	"sync"
	"tactics-server/pkg/api"
	"tactics-server/pkg/logger"
)

// Broadcaster занимается только рассылкой снимков подписчикам.
// Подписчик - это сессия (WebSocket-клиент или бот), ключ - токен сессии.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал для сессии.
// Повторная регистрация закрывает старый канал.
func (b *Broadcaster) Register(session string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[session]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, 100)
	b.subscribers[session] = ch
	return ch
}

// RegisterIfAbsent создает канал, только если у сессии еще нет подписчика.
// Проверка и регистрация идут под одной блокировкой.
func (b *Broadcaster) RegisterIfAbsent(session string) (chan api.ServerResponse, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subscribers[session]; ok {
		return nil, false
	}

	ch := make(chan api.ServerResponse, 100)
	b.subscribers[session] = ch
	return ch, true
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(session string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[session]; ok {
		close(ch)
		delete(b.subscribers, session)
	}
}

// SendTo отправляет снимок конкретной сессии. Медленный клиент теряет снимок,
// следующий все равно содержит полное состояние.
func (b *Broadcaster) SendTo(session string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[session]; ok {
		select {
		case ch <- msg:
		default:
			logger.Component("hub").WithField("session", session).Warn("Channel full, snapshot dropped")
		}
	}
}

// HasSubscriber проверяет, подключен ли кто-то к сессии
func (b *Broadcaster) HasSubscriber(session string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[session]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
