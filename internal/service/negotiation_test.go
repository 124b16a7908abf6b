package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"knowvalue.app/server/internal/model"
	"knowvalue.app/server/internal/payment"
	"knowvalue.app/server/internal/queue"
	"knowvalue.app/server/internal/service"
)

var _ = Describe("NegotiationService", func() {
	const (
		questionID    int64 = 10
		answerID      int64 = 20
		negotiationID int64 = 30
	)

	var (
		ctx       context.Context
		db        *memDB
		gateway   *mockGateway
		publisher *mockPublisher
		cfg       service.CheckoutConfig
		svc       service.NegotiationService
	)

	build := func() {
		svc = service.NewNegotiationService(&memStores{db: db}, gateway, publisher, nil, cfg)
	}

	BeforeEach(func() {
		ctx = context.Background()
		db = newMemDB()
		db.addQuestion(model.Question{ID: questionID, OwnerID: ownerID, IsPaid: true, Title: "Deploy question"})
		db.addAnswer(model.Answer{ID: answerID, QuestionID: questionID, AuthorID: answererID}, 700, model.NegotiationStatusPending, negotiationID)

		gateway = &mockGateway{}
		publisher = &mockPublisher{}
		cfg = service.CheckoutConfig{
			AppBaseURL: "https://knowvalue.example/",
			SessionTTL: time.Hour,
		}
		build()
	})

	Describe("Accept", func() {
		It("creates a checkout session for the proposed amount and stays PENDING", func() {
			url, err := svc.Accept(ctx, ownerID, negotiationID)

			Expect(err).NotTo(HaveOccurred())
			Expect(url).To(Equal("https://checkout.example.com/cs_test_1"))
			Expect(gateway.requests).To(HaveLen(1))

			req := gateway.requests[0]
			Expect(req.Amount).To(Equal(int64(700)))
			Expect(req.ProductName).To(ContainSubstring("Deploy question"))
			Expect(req.SuccessURL).To(Equal("https://knowvalue.example/questions/10?paid=1"))
			Expect(req.CancelURL).To(Equal("https://knowvalue.example/questions/10?cancel=1"))
			Expect(req.ExpiresAt).To(BeTemporally("~", time.Now().Add(time.Hour), time.Minute))
			Expect(req.Intent).To(Equal(payment.NegotiationIntent{
				NegotiationID:  negotiationID,
				QuestionID:     questionID,
				AnswerID:       answerID,
				ProposedAmount: 700,
			}))

			n := db.negotiations[negotiationID]
			Expect(n.Status).To(Equal(model.NegotiationStatusPending))
			Expect(*n.LastCheckoutSessionID).To(Equal("cs_test_1"))
			Expect(n.CheckoutStartedAt).NotTo(BeNil())
		})

		It("only lets the question owner accept", func() {
			_, err := svc.Accept(ctx, answererID, negotiationID)
			Expect(err).To(MatchError(service.ErrForbidden))
			Expect(gateway.requests).To(BeEmpty())
		})

		It("reports unknown negotiations", func() {
			_, err := svc.Accept(ctx, ownerID, 999)
			Expect(err).To(MatchError(service.ErrNotFound))
		})

		It("refuses settled negotiations", func() {
			n := db.negotiations[negotiationID]
			n.Status = model.NegotiationStatusRejected
			db.negotiations[negotiationID] = n

			_, err := svc.Accept(ctx, ownerID, negotiationID)
			Expect(err).To(MatchError(service.ErrInvalidState))
			Expect(gateway.requests).To(BeEmpty())
		})

		It("maps a missing gateway key to a configuration error", func() {
			gateway.createFn = func(context.Context, payment.CheckoutRequest) (payment.Session, error) {
				return payment.Session{}, payment.ErrNotConfigured
			}
			_, err := svc.Accept(ctx, ownerID, negotiationID)
			Expect(err).To(MatchError(service.ErrMissingConfiguration))
		})

		It("maps other gateway failures to a gateway error", func() {
			gateway.createFn = func(context.Context, payment.CheckoutRequest) (payment.Session, error) {
				return payment.Session{}, errInjected
			}
			_, err := svc.Accept(ctx, ownerID, negotiationID)
			Expect(err).To(MatchError(service.ErrGateway))
		})

		It("withholds the link when the negotiation settles during checkout creation", func() {
			gateway.createFn = func(context.Context, payment.CheckoutRequest) (payment.Session, error) {
				n := db.negotiations[negotiationID]
				n.Status = model.NegotiationStatusRejected
				db.negotiations[negotiationID] = n
				return payment.Session{ID: "cs_late", URL: "https://checkout.example.com/cs_late"}, nil
			}
			url, err := svc.Accept(ctx, ownerID, negotiationID)
			Expect(err).To(MatchError(service.ErrNegotiationSettled))
			Expect(url).To(BeEmpty())
		})
	})

	Describe("Reject", func() {
		It("moves the negotiation to REJECTED and notifies the answer author", func() {
			Expect(svc.Reject(ctx, ownerID, negotiationID)).To(Succeed())

			Expect(db.negotiations[negotiationID].Status).To(Equal(model.NegotiationStatusRejected))
			Expect(publisher.events).To(HaveLen(1))
			Expect(publisher.events[0].Type).To(Equal(queue.EventNegotiationRejected))
			Expect(publisher.events[0].RecipientID).To(Equal(answererID))
		})

		It("is refused the second time", func() {
			Expect(svc.Reject(ctx, ownerID, negotiationID)).To(Succeed())
			Expect(svc.Reject(ctx, ownerID, negotiationID)).To(MatchError(service.ErrInvalidState))
			Expect(publisher.events).To(HaveLen(1))
		})

		It("cannot reject an accepted negotiation", func() {
			n := db.negotiations[negotiationID]
			n.Status = model.NegotiationStatusAccepted
			db.negotiations[negotiationID] = n

			Expect(svc.Reject(ctx, ownerID, negotiationID)).To(MatchError(service.ErrInvalidState))
			Expect(db.negotiations[negotiationID].Status).To(Equal(model.NegotiationStatusAccepted))
		})

		It("only lets the question owner reject", func() {
			Expect(svc.Reject(ctx, otherID, negotiationID)).To(MatchError(service.ErrNotQuestionOwner))
			Expect(svc.Reject(ctx, 0, negotiationID)).To(MatchError(service.ErrUnauthenticated))
		})
	})

	Describe("ExpireStale", func() {
		var now time.Time

		BeforeEach(func() {
			now = db.clock.Add(48 * time.Hour)
		})

		It("does nothing when no TTL is configured", func() {
			n, err := svc.ExpireStale(ctx, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeZero())
			Expect(db.negotiations[negotiationID].Status).To(Equal(model.NegotiationStatusPending))
		})

		It("rejects PENDING negotiations older than the TTL", func() {
			cfg.NegotiationTTL = 24 * time.Hour
			build()

			n, err := svc.ExpireStale(ctx, now)

			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(1))
			Expect(db.negotiations[negotiationID].Status).To(Equal(model.NegotiationStatusRejected))
			Expect(publisher.events).To(HaveLen(1))
			Expect(publisher.events[0].Type).To(Equal(queue.EventNegotiationRejected))
		})

		It("spares negotiations with a checkout that may still complete", func() {
			cfg.NegotiationTTL = 24 * time.Hour
			build()
			started := now.Add(-10 * time.Minute)
			n := db.negotiations[negotiationID]
			n.CheckoutStartedAt = &started
			db.negotiations[negotiationID] = n

			count, err := svc.ExpireStale(ctx, now)

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
			Expect(db.negotiations[negotiationID].Status).To(Equal(model.NegotiationStatusPending))
		})

		It("leaves young negotiations alone", func() {
			cfg.NegotiationTTL = 72 * time.Hour
			build()

			count, err := svc.ExpireStale(ctx, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})
})
