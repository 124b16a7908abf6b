package webhook_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"knowvalue.app/server/internal/http/handler/webhook"
	"knowvalue.app/server/internal/service"
)

type fakePaymentService struct {
	handleFn func(ctx context.Context, payload []byte, signature string) (service.WebhookOutcome, error)
}

func (f *fakePaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (service.WebhookOutcome, error) {
	return f.handleFn(ctx, payload, signature)
}

var _ = Describe("StripeWebhookHandler", func() {
	var (
		router *gin.Engine
		svc    *fakePaymentService
	)

	BeforeEach(func() {
		svc = &fakePaymentService{}
		router = gin.New()
		router.POST("/webhooks/stripe", webhook.NewStripeWebhookHandler(svc).HandleEvent)
	})

	deliver := func(body, signature string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewBufferString(body))
		if signature != "" {
			req.Header.Set("Stripe-Signature", signature)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("passes the raw body and signature through and acknowledges with an empty 200", func() {
		var gotPayload, gotSignature string
		svc.handleFn = func(_ context.Context, payload []byte, signature string) (service.WebhookOutcome, error) {
			gotPayload, gotSignature = string(payload), signature
			return service.WebhookProcessed, nil
		}

		w := deliver(`{"id":"evt_1"}`, "t=1,v1=abc")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.Len()).To(BeZero())
		Expect(gotPayload).To(Equal(`{"id":"evt_1"}`))
		Expect(gotSignature).To(Equal("t=1,v1=abc"))
	})

	DescribeTable("acknowledges every domain outcome",
		func(outcome service.WebhookOutcome) {
			svc.handleFn = func(context.Context, []byte, string) (service.WebhookOutcome, error) { return outcome, nil }
			Expect(deliver(`{}`, "sig").Code).To(Equal(http.StatusOK))
		},
		Entry("duplicate", service.WebhookDuplicate),
		Entry("ignored", service.WebhookIgnored),
	)

	It("answers 400 when the signature does not verify", func() {
		svc.handleFn = func(context.Context, []byte, string) (service.WebhookOutcome, error) {
			return "", fmt.Errorf("%w: no signatures found", service.ErrSignatureInvalid)
		}

		w := deliver(`{}`, "")

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("answers 500 when the secret is missing", func() {
		svc.handleFn = func(context.Context, []byte, string) (service.WebhookOutcome, error) {
			return "", fmt.Errorf("%w: STRIPE_WEBHOOK_SECRET is not set", service.ErrMissingConfiguration)
		}

		Expect(deliver(`{}`, "sig").Code).To(Equal(http.StatusInternalServerError))
	})

	It("answers 500 on transient failures so Stripe retries", func() {
		svc.handleFn = func(context.Context, []byte, string) (service.WebhookOutcome, error) {
			return "", errors.New("deadlock detected")
		}

		Expect(deliver(`{}`, "sig").Code).To(Equal(http.StatusInternalServerError))
	})
})
