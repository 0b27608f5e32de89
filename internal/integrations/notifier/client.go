package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mentorgrid/MG-SessionService/internal/domain"
)

// События жизненного цикла сессии, отправляемые в сервис уведомлений
const (
	EventSessionBooked    = "session.booked"
	EventSessionCancelled = "session.cancelled"
	EventSessionCompleted = "session.completed"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client fire-and-forget клиент сервиса уведомлений (email-коллаборатор)
//
// Доставка уведомлений не участвует в результате операций ядра:
// ошибки логируются и проглатываются, успешные переходы статусов
// никогда не откатываются из-за недоставленного уведомления
type Client struct {
	baseURL    string
	enabled    bool
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений
// При enabled=false все вызовы становятся no-op
func NewClient(baseURL string, timeout time.Duration, enabled bool, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		enabled: enabled,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type eventPayload struct {
	Event     string    `json:"event"`
	SessionID int64     `json:"sessionId"`
	StudentID int64     `json:"studentId"`
	MentorID  int64     `json:"mentorId"`
	StartsAt  time.Time `json:"startsAt"`
	Status    string    `json:"status"`
}

// SessionEvent асинхронно отправляет событие по сессии
// Возвращает управление сразу; результат доставки только логируется
func (c *Client) SessionEvent(event string, session *domain.Session) {
	if !c.enabled || session == nil {
		return
	}

	payload := eventPayload{
		Event:     event,
		SessionID: session.ID,
		StudentID: session.StudentID,
		MentorID:  session.MentorID,
		StartsAt:  session.ScheduledStart,
		Status:    string(session.Status),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
		defer cancel()

		if err := c.send(ctx, payload); err != nil {
			c.log.Error("notifier: failed to deliver %s for session id=%d: %v", event, payload.SessionID, err)
			return
		}
		c.log.Info("notifier: delivered %s for session id=%d", event, payload.SessionID)
	}()
}

func (c *Client) send(ctx context.Context, payload eventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/internal/notifications/events", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
