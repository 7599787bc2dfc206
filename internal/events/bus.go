package events

import (
	"sync"

	"yardwork_backend/internal/logger"
)

// Bus - внутрипроцессная шина событий переходов.
// Публикация не блокируется: у каждого подписчика буферизованный канал,
// при переполнении событие отбрасывается с предупреждением в лог.
type Bus struct {
	mu   sync.RWMutex
	subs []chan Event
	wg   sync.WaitGroup
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe регистрирует обработчик. Каждый обработчик получает события
// в собственной горутине, порядок между подписчиками не гарантируется.
// Возвращает функцию отписки.
func (b *Bus) Subscribe(handler func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, 100) // буфер, чтобы не блокировать публикующего
	b.subs = append(b.subs, ch)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for e := range ch {
			handler(e)
		}
	}()

	unsub := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, sub := range b.subs {
			if sub == ch {
				close(ch)
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				break
			}
		}
	}

	return unsub
}

// Publish отправляет событие всем подписчикам
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
			// Канал полон - отбрасываем, чтобы не блокировать приложение
			logger.Warn("event bus channel full, dropping event", "type", string(e.Type), "posting_id", e.PostingID)
		}
	}
}

// Close закрывает все подписки и дожидается обработчиков
func (b *Bus) Close() {
	b.mu.Lock()
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
	b.mu.Unlock()

	b.wg.Wait()
}
