package stream_availability

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStreamingUnsup = "потоковая передача не поддерживается"

	// heartbeatInterval период keep-alive комментариев, чтобы прокси
	// не закрывали простаивающее соединение
	heartbeatInterval = 25 * time.Second
)

type Handler struct {
	broadcaster Broadcaster
	logger      Logger
}

func NewHandler(broadcaster Broadcaster, logger Logger) *Handler {
	return &Handler{
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Handle GET /api/v1/availability/stream?date=YYYY-MM-DD
// SSE поток уведомлений об изменениях доступности даты. Уведомление
// не несёт состояния: клиент в ответ перечитывает GET /availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := domain.Today(time.Now())
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, raw, domain.ServiceLocation)
		if err != nil {
			h.logger.Warn("GET /availability/stream - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("GET /availability/stream - ResponseWriter does not support flushing")
		handlers.RespondError(w, http.StatusInternalServerError, msgStreamingUnsup)
		return
	}

	dateKey := date.Format(domain.DateFormat)
	sub := h.broadcaster.Subscribe(dateKey)
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Начальное событие подтверждает подписку до первого изменения
	fmt.Fprintf(w, "event: subscribed\ndata: {\"date\":%q}\n\n", dateKey)
	flusher.Flush()

	h.logger.Info("GET /availability/stream - Subscriber connected: date=%s", dateKey)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("GET /availability/stream - Subscriber disconnected: date=%s", dateKey)
			return

		case change := <-sub.C:
			payload, err := json.Marshal(change)
			if err != nil {
				h.logger.Error("GET /availability/stream - Failed to marshal change: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
			flusher.Flush()

		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}
