package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Relay переносит уведомления между экземплярами сервиса через
// RabbitMQ topic exchange. Routing key: "<table>.changed".
// Очередь эксклюзивная для экземпляра - каждый экземпляр получает
// все уведомления и раздаёт их своему локальному hub
type Relay struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	queue    string
	hub      *Hub
	logger   Logger
}

// NewRelay подключается к брокеру и объявляет exchange и очередь
func NewRelay(url, exchange string, hub *Hub, logger Logger) (*Relay, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events: dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("events: open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("events: declare exchange: %w", err)
	}

	// Эксклюзивная неперсистентная очередь: нужна живая доставка,
	// а не история - пропущенное уведомление компенсируется
	// следующим re-fetch
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("events: declare queue: %w", err)
	}

	for _, key := range []string{TableAppointments + ".changed", TableOverrides + ".changed"} {
		if err := ch.QueueBind(q.Name, key, exchange, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("events: bind %s: %w", key, err)
		}
	}

	return &Relay{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		queue:    q.Name,
		hub:      hub,
		logger:   logger,
	}, nil
}

// Publish отправляет уведомление в exchange
func (r *Relay) Publish(ctx context.Context, change Change) error {
	body, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("events: marshal change: %w", err)
	}

	return r.ch.PublishWithContext(ctx, r.exchange, change.Table+".changed", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

// Run потребляет уведомления из очереди и передает их локальному hub
// Блокируется до отмены контекста или закрытия канала доставки
func (r *Relay) Run(ctx context.Context) error {
	deliveries, err := r.ch.ConsumeWithContext(ctx, r.queue, "", false, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("events: consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}

			var change Change
			if err := json.Unmarshal(d.Body, &change); err != nil {
				r.logger.Warn("events: malformed relay payload, dropping: %v", err)
				_ = d.Ack(false)
				continue
			}

			r.hub.Publish(change)
			_ = d.Ack(false)
		}
	}
}

// Close закрывает соединение с брокером
func (r *Relay) Close() error {
	if r.ch != nil {
		_ = r.ch.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
