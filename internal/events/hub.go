package events

import (
	"sync"

	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

// subscriptionBuffer размер буфера канала подписчика
// Переполнение буфера не теряет информацию: уже стоящее в очереди
// уведомление означает то же самое - "перечитай доступность даты"
const subscriptionBuffer = 8

// Subscription подписка одного наблюдателя на изменения одной даты
type Subscription struct {
	C    <-chan Change
	c    chan Change
	date string
	hub  *Hub
	once sync.Once
}

// Close отписывает наблюдателя
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
	})
}

// Hub in-process часть моста синхронизации: раздаёт уведомления всем
// активным подписчикам затронутой даты
type Hub struct {
	mu      sync.RWMutex
	subs    map[string]map[*Subscription]struct{} // date -> subscriptions
	metrics *metrics.Metrics
}

// NewHub создает hub
// metrics может быть nil, если сбор метрик выключен
func NewHub(m *metrics.Metrics) *Hub {
	return &Hub{
		subs:    make(map[string]map[*Subscription]struct{}),
		metrics: m,
	}
}

// Subscribe подписывает наблюдателя на изменения указанной даты
// (по обеим таблицам). Подписчик обязан вызвать Close
func (h *Hub) Subscribe(date string) *Subscription {
	sub := &Subscription{
		c:    make(chan Change, subscriptionBuffer),
		date: date,
		hub:  h,
	}
	sub.C = sub.c

	h.mu.Lock()
	if h.subs[date] == nil {
		h.subs[date] = make(map[*Subscription]struct{})
	}
	h.subs[date][sub] = struct{}{}
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.EventsSubscribersGauge.WithLabelValues("all").Inc()
	}

	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	if set, ok := h.subs[sub.date]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.date)
		}
	}
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.EventsSubscribersGauge.WithLabelValues("all").Dec()
	}
}

// Publish доставляет уведомление подписчикам затронутой даты
// Отправка неблокирующая: если буфер подписчика полон, там уже лежит
// эквивалентное уведомление
func (h *Hub) Publish(change Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.metrics != nil {
		h.metrics.EventsPublishedTotal.WithLabelValues(change.Table).Inc()
	}

	for sub := range h.subs[change.Date] {
		select {
		case sub.c <- change:
		default:
		}
	}
}
