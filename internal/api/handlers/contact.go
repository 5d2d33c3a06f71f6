package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/osa911/contactform/internal/api/constants"
	"github.com/osa911/contactform/internal/service"
	"github.com/osa911/contactform/internal/utils"

	"github.com/gin-gonic/gin"
)

// Submitter runs a submission through the contact pipeline
type Submitter interface {
	Submit(ctx context.Context, sub service.Submission) service.Outcome
}

type ContactHandler struct {
	submitter   Submitter
	cdnIPHeader string
}

func NewContactHandler(submitter Submitter, cdnIPHeader string) *ContactHandler {
	return &ContactHandler{
		submitter:   submitter,
		cdnIPHeader: cdnIPHeader,
	}
}

// Submit handles POST /api/contact. The decoded body (or its decode error)
// is placed in the context by middleware.DecodeContactBody.
func (h *ContactHandler) Submit(c *gin.Context) {
	sub := service.Submission{
		ClientID:  utils.GetClientIdentifier(c, h.cdnIPHeader),
		UserAgent: c.GetHeader("User-Agent"),
		Referer:   c.GetHeader("Referer"),
		Origin:    c.GetHeader("Origin"),
	}

	if v, ok := c.Get(constants.ContextKeyBodyError); ok {
		if err, isErr := v.(error); isErr {
			sub.BodyErr = err
		}
	}
	if body, ok := c.Get(constants.ContextKeyContactBody); ok {
		sub.Body = body
	} else if sub.BodyErr == nil {
		sub.BodyErr = errors.New("contact body not decoded")
	}

	outcome := h.submitter.Submit(c.Request.Context(), sub)
	writeOutcome(c, outcome)
}

// writeOutcome is the only place outcomes become HTTP responses. A silently
// dropped submission must look exactly like a sent one minus the message.
func writeOutcome(c *gin.Context, o service.Outcome) {
	switch o.Kind {
	case service.OutcomeSent:
		utils.HandleMessage(c, service.MsgSent)
	case service.OutcomeSilentlyDropped:
		utils.HandleSuccess(c)
	case service.OutcomeRejected:
		utils.HandleError(c, http.StatusBadRequest, o.Error, o.Details)
	case service.OutcomeRateLimited:
		utils.HandleRateLimited(c, o.Error, o.RetryAfter)
	default:
		utils.HandleError(c, http.StatusInternalServerError, service.MsgDispatchFailed, nil)
	}
}
