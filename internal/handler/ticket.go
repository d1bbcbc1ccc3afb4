package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/GolpiraElmiA/OSRTickets/internal/auth"
	"github.com/GolpiraElmiA/OSRTickets/internal/errs"
	"github.com/GolpiraElmiA/OSRTickets/internal/insight"
	"github.com/GolpiraElmiA/OSRTickets/internal/kafka"
	"github.com/GolpiraElmiA/OSRTickets/internal/model"
	"github.com/GolpiraElmiA/OSRTickets/internal/notify"
	"github.com/GolpiraElmiA/OSRTickets/internal/repository"
)

// TokenHeader carries the operator credential on gated requests.
const TokenHeader = "X-Operator-Token"

type TicketHandler struct {
	repo     *repository.Repository
	authz    *auth.Authorizer
	notify   *notify.Client
	producer kafka.TicketEventProducer
	sections []string
}

func NewTicketHandler(repo *repository.Repository, authz *auth.Authorizer, n *notify.Client, p kafka.TicketEventProducer, sections []string) *TicketHandler {
	return &TicketHandler{repo: repo, authz: authz, notify: n, producer: p, sections: sections}
}

type submitRequest struct {
	Name        string `json:"name"`
	RequestType string `json:"request_type" binding:"required"`
	Email       string `json:"email"`
	Section     string `json:"section" binding:"required"`
	Issue       string `json:"issue"`
	Priority    string `json:"priority"`
}

// Submit is the public form endpoint. Free-text fields are accepted as-is;
// only enum membership is validated.
func (h *TicketHandler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if !model.ValidRequestType(model.RequestType(req.RequestType)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request_type"})
		return
	}
	if !h.validSection(req.Section) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section"})
		return
	}
	if req.Priority == "" {
		req.Priority = string(model.PriorityMedium)
	}
	if !model.ValidPriority(model.Priority(req.Priority)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
		return
	}

	t, err := h.repo.Submit(c.Request.Context(), repository.SubmitInput{
		Name:        req.Name,
		RequestType: model.RequestType(req.RequestType),
		Email:       req.Email,
		Section:     req.Section,
		Issue:       req.Issue,
		Priority:    model.Priority(req.Priority),
	})
	var nd *errs.NotDurableError
	if errors.As(err, &nd) {
		c.JSON(http.StatusAccepted, gin.H{
			"id": t.ID, "ticket": t, "durable": false,
			"warning": "ticket accepted but not persisted; the remote store is unavailable",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit ticket"})
		return
	}
	h.emit(c.Request.Context(), "ticket.submitted", &t)
	c.JSON(http.StatusCreated, gin.H{"id": t.ID, "ticket": t, "durable": true})
}

func (h *TicketHandler) List(c *gin.Context) {
	tickets := h.repo.List()
	c.JSON(http.StatusOK, gin.H{"tickets": tickets, "total": len(tickets)})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	operator, ok := h.gate(c)
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if !model.ValidStatus(model.TicketStatus(req.Status)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	id := c.Param("id")
	t, err := h.repo.UpdateStatus(c.Request.Context(), id, model.TicketStatus(req.Status))
	var nd *errs.NotDurableError
	switch {
	case errors.Is(err, errs.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return
	case errors.As(err, &nd):
		c.JSON(http.StatusAccepted, gin.H{
			"ticket": t, "durable": false,
			"warning": "status changed but not persisted; the remote store is unavailable",
		})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ticket"})
		return
	}
	logrus.Infof("ticket %s status set to %s by %s", id, req.Status, operator)
	h.emit(c.Request.Context(), "ticket.status_changed", t)
	c.JSON(http.StatusOK, gin.H{"ticket": t, "durable": true})
}

type bulkReplaceRequest struct {
	Tickets []model.Ticket `json:"tickets"`
}

// BulkReplace swaps the whole table for the one produced by the inline
// editor. Rows are taken as-is, per the editor contract.
func (h *TicketHandler) BulkReplace(c *gin.Context) {
	operator, ok := h.gate(c)
	if !ok {
		return
	}
	var req bulkReplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	err := h.repo.BulkReplace(c.Request.Context(), req.Tickets)
	var nd *errs.NotDurableError
	if errors.As(err, &nd) {
		c.JSON(http.StatusAccepted, gin.H{
			"total": h.repo.Len(), "durable": false,
			"warning": "table replaced but not persisted; the remote store is unavailable",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to replace tickets"})
		return
	}
	logrus.Infof("table replaced (%d rows) by %s", h.repo.Len(), operator)
	c.JSON(http.StatusOK, gin.H{"total": h.repo.Len(), "durable": true})
}

type resetRequest struct {
	Secret string `json:"secret"`
}

// Reset destroys the table. The credential may arrive in the body (the
// original form posts it there) or in the token header like the other gated
// routes; both go through the same authorizer.
func (h *TicketHandler) Reset(c *gin.Context) {
	var req resetRequest
	_ = c.ShouldBindJSON(&req)
	credential := req.Secret
	if credential == "" {
		credential = c.GetHeader(TokenHeader)
	}
	operator, err := h.authz.Authorize(credential)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}
	err = h.repo.Reset(c.Request.Context())
	var nd *errs.NotDurableError
	if errors.As(err, &nd) {
		c.JSON(http.StatusAccepted, gin.H{
			"reset": true, "durable": false,
			"warning": "table emptied but not persisted; the remote store is unavailable",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset tickets"})
		return
	}
	logrus.Infof("ticket table reset by %s", operator)
	if h.producer != nil {
		h.producer.ProduceTicketEvent(c.Request.Context(), "ticket.reset", map[string]interface{}{})
	}
	c.JSON(http.StatusOK, gin.H{"reset": true, "durable": true})
}

func (h *TicketHandler) Insights(c *gin.Context) {
	c.JSON(http.StatusOK, insight.Aggregate(h.repo.List()))
}

// gate authorizes a mutating request from the token header. Writes the 403
// itself; callers just return when ok is false.
func (h *TicketHandler) gate(c *gin.Context) (operator string, ok bool) {
	operator, err := h.authz.Authorize(c.GetHeader(TokenHeader))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return "", false
	}
	return operator, true
}

func (h *TicketHandler) validSection(s string) bool {
	for _, sec := range h.sections {
		if s == sec {
			return true
		}
	}
	return false
}

func (h *TicketHandler) emit(ctx context.Context, event string, t *model.Ticket) {
	if t == nil {
		return
	}
	h.notify.TicketEventAsync(event, t)
	if h.producer != nil {
		h.producer.ProduceTicketEvent(ctx, event, map[string]interface{}{
			"ticket_id":      t.ID,
			"section":        t.Section,
			"status":         string(t.Status),
			"request_type":   string(t.RequestType),
			"date_submitted": t.DateSubmitted,
		})
	}
}
