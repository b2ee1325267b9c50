// Package stripewebhooks receives Stripe events for offer checkouts.
package stripewebhooks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"artmarket-admin/internal/api/respond"
	domain "artmarket-admin/internal/domain/offers"
	"artmarket-admin/internal/infra/logger"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
	"go.uber.org/zap"
)

const maxBodyBytes = 65536

type Payments interface {
	RecordPayment(ctx context.Context, sessionID, paymentStatus string) (*domain.Offer, error)
}

type Handler struct {
	secret   string
	payments Payments
}

func NewHandler(secret string, payments Payments) *Handler {
	return &Handler{secret: secret, payments: payments}
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}

func (h *Handler) StripeWebhook(c *gin.Context) {
	log := logger.FromGin(c)
	if h.secret == "" {
		respond.Fail(c, http.StatusServiceUnavailable, "Stripe webhook is not configured")
		return
	}

	payload, err := readStripeBody(c, maxBodyBytes)
	if err != nil {
		respond.Fail(c, http.StatusServiceUnavailable, "Error reading request body")
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		log.Warn("stripe signature verification failed", zap.Error(err))
		respond.Fail(c, http.StatusBadRequest, "Signature verification failed")
		return
	}

	switch event.Type {
	case "checkout.session.completed",
		"checkout.session.async_payment_succeeded",
		"checkout.session.async_payment_failed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			respond.Fail(c, http.StatusBadRequest, "Failed to parse session")
			return
		}
		status := string(session.PaymentStatus)
		if event.Type == "checkout.session.async_payment_failed" {
			status = "failed"
		}

		o, err := h.payments.RecordPayment(c.Request.Context(), session.ID, status)
		if err != nil {
			// 5xx makes Stripe retry.
			respond.Error(c, err)
			return
		}
		if o == nil {
			log.Info("checkout session has no offer", zap.String("session_id", session.ID))
		} else {
			log.Info("offer payment recorded",
				zap.Uint("offer_id", o.ID),
				zap.String("payment_status", o.PaymentStatus),
			)
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})

	default:
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}
