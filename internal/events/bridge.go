package events

import (
	"context"
	"time"
)

// Bridge фасад моста синхронизации для пишущих usecase:
// локальная доставка через hub плюс, если настроен, relay в брокер.
// Ошибка relay не роняет запись - доставка best effort, консистентность
// обеспечивается re-fetch на стороне наблюдателя
type Bridge struct {
	hub    *Hub
	relay  *Relay
	logger Logger
}

// NewBridge создает мост
// relay может быть nil - тогда уведомления остаются внутри процесса
func NewBridge(hub *Hub, relay *Relay, logger Logger) *Bridge {
	return &Bridge{hub: hub, relay: relay, logger: logger}
}

// Hub возвращает локальный hub для подписок
func (b *Bridge) Hub() *Hub {
	return b.hub
}

// Notify публикует уведомление об изменении данных даты
func (b *Bridge) Notify(ctx context.Context, table string, date time.Time) {
	change := NewChange(table, date)

	b.hub.Publish(change)

	if b.relay != nil {
		if err := b.relay.Publish(ctx, change); err != nil {
			b.logger.Warn("events: relay publish failed for %s/%s: %v", change.Table, change.Date, err)
		}
	}
}
