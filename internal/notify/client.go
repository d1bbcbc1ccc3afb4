// Package notify posts ticket lifecycle events to a staff webhook
// (best-effort, never blocks or fails the mutation that triggered it).
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/GolpiraElmiA/OSRTickets/internal/model"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a webhook client. With an empty baseURL every call is a
// no-op, so the caller never has to branch on configuration.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// EventPayload — body of POST <baseURL>/hooks/ticket.
type EventPayload struct {
	Event    string `json:"event"`
	TicketID string `json:"ticket_id"`
	Section  string `json:"section"`
	Status   string `json:"status"`
}

// TicketEvent delivers one event. Failures are logged and swallowed.
func (c *Client) TicketEvent(ctx context.Context, event string, t *model.Ticket) {
	if c.baseURL == "" {
		return
	}
	payload := EventPayload{
		Event:    event,
		TicketID: t.ID,
		Section:  t.Section,
		Status:   string(t.Status),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		logrus.Warnf("notify: marshal: %v", err)
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hooks/ticket", bytes.NewReader(body))
	if err != nil {
		logrus.Warnf("notify: new request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.Warnf("notify: request: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		logrus.Warnf("notify: status %d for ticket %s", resp.StatusCode, t.ID)
	}
}

// TicketEventAsync fires TicketEvent in its own goroutine so the HTTP
// response to the operator is never held up by the webhook.
func (c *Client) TicketEventAsync(event string, t *model.Ticket) {
	if c.baseURL == "" {
		return
	}
	tt := *t
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.TicketEvent(ctx, event, &tt)
	}()
}
