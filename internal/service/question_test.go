package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"knowvalue.app/server/internal/model"
	"knowvalue.app/server/internal/payment"
	"knowvalue.app/server/internal/service"
)

var _ = Describe("QuestionService", func() {
	var (
		ctx     context.Context
		db      *memDB
		blobs   *mockBlobStore
		gateway *mockGateway
		svc     service.QuestionService
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = newMemDB()
		db.addUser(ownerID, "owner")
		db.addUser(answererID, "answerer")
		db.categories[7] = model.Category{ID: 7, Slug: "programming", Name: "プログラミング"}

		blobs = &mockBlobStore{}
		gateway = &mockGateway{}
		svc = service.NewQuestionService(&memStores{db: db}, &memTxRunner{db: db}, blobs, gateway, nil, service.CheckoutConfig{
			AppBaseURL: "https://knowvalue.example",
			SessionTTL: time.Hour,
		})
	})

	Describe("Create", func() {
		It("creates an unpaid question with its images", func() {
			detail, err := svc.Create(ctx, service.CreateQuestionParams{
				OwnerID:      ownerID,
				Title:        " How to shard Postgres? ",
				Content:      "We have 2TB.",
				RewardAmount: 1000,
				CategoryID:   ptr(int64(7)),
				Images:       []service.Upload{pngUpload("diagram.png")},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Question.Title).To(Equal("How to shard Postgres?"))
			Expect(detail.Question.IsPaid).To(BeFalse())
			Expect(detail.Category.Slug).To(Equal("programming"))
			Expect(detail.IsOwner).To(BeTrue())
			Expect(detail.Images).To(HaveLen(1))
			Expect(blobs.puts[0]).To(HavePrefix("questions/"))
			Expect(db.questionImages).To(HaveLen(1))
		})

		It("rejects an unknown category", func() {
			_, err := svc.Create(ctx, service.CreateQuestionParams{
				OwnerID: ownerID, Title: "t", Content: "c", RewardAmount: 500, CategoryID: ptr(int64(99)),
			})
			Expect(err).To(MatchError(service.ErrValidation))
		})

		It("rejects a reward below the minimum", func() {
			_, err := svc.Create(ctx, service.CreateQuestionParams{
				OwnerID: ownerID, Title: "t", Content: "c", RewardAmount: 50,
			})
			Expect(err).To(MatchError(service.ErrValidation))
			Expect(db.questions).To(BeEmpty())
		})
	})

	Describe("Get", func() {
		const questionID int64 = 10

		BeforeEach(func() {
			db.addQuestion(model.Question{ID: questionID, OwnerID: ownerID})
			db.addAnswer(model.Answer{ID: 20, QuestionID: questionID, AuthorID: answererID, Content: ptr("secret")}, 500, model.NegotiationStatusPending, 30)
		})

		It("hides unpaid questions from everyone but the owner", func() {
			_, err := svc.Get(ctx, answererID, questionID)
			Expect(err).To(MatchError(service.ErrQuestionNotPublic))

			_, err = svc.Get(ctx, 0, questionID)
			Expect(err).To(MatchError(service.ErrForbidden))

			detail, err := svc.Get(ctx, ownerID, questionID)
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.IsOwner).To(BeTrue())
		})

		It("reports unknown questions", func() {
			_, err := svc.Get(ctx, ownerID, 404)
			Expect(err).To(MatchError(service.ErrQuestionNotFound))
		})

		It("locks answer content until the negotiation is accepted", func() {
			detail, err := svc.Get(ctx, ownerID, questionID)
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Answers).To(HaveLen(1))
			Expect(detail.Answers[0].Revealed).To(BeFalse())
			Expect(detail.Answers[0].Content).To(BeNil())
			Expect(detail.Answers[0].Pitch).NotTo(BeEmpty())

			n := db.negotiations[30]
			n.Status = model.NegotiationStatusAccepted
			db.negotiations[30] = n

			detail, err = svc.Get(ctx, ownerID, questionID)
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Answers[0].Revealed).To(BeTrue())
			Expect(*detail.Answers[0].Content).To(Equal("secret"))
		})

		It("shows the content to its author", func() {
			q := db.questions[questionID]
			q.IsPaid = true
			db.questions[questionID] = q

			detail, err := svc.Get(ctx, answererID, questionID)
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Answers[0].Revealed).To(BeTrue())

			detail, err = svc.Get(ctx, 0, questionID)
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Answers[0].Revealed).To(BeFalse())
		})

		It("flags read and liked answers for the viewer", func() {
			db.reads[[2]int64{ownerID, 20}] = true
			db.likes[[2]int64{ownerID, 20}] = true

			detail, err := svc.Get(ctx, ownerID, questionID)
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Answers[0].Read).To(BeTrue())
			Expect(detail.Answers[0].LikedByMe).To(BeTrue())
			Expect(detail.Answers[0].LikeCount).To(Equal(int32(1)))
		})
	})

	Describe("ListPublic", func() {
		It("lists only paid questions, filtered by category", func() {
			db.addQuestion(model.Question{ID: 10, OwnerID: ownerID, IsPaid: true, CategoryID: ptr(int64(7))})
			db.addQuestion(model.Question{ID: 11, OwnerID: ownerID, IsPaid: true})
			db.addQuestion(model.Question{ID: 12, OwnerID: ownerID})

			all, err := svc.ListPublic(ctx, nil, 0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))

			filtered, err := svc.ListPublic(ctx, ptr(int64(7)), 0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(filtered).To(HaveLen(1))
			Expect(filtered[0].ID).To(Equal(int64(10)))
		})
	})

	Describe("MarkAnswersRead", func() {
		BeforeEach(func() {
			db.addQuestion(model.Question{ID: 10, OwnerID: ownerID, IsPaid: true})
			db.addAnswer(model.Answer{ID: 20, QuestionID: 10, AuthorID: answererID}, 500, model.NegotiationStatusPending, 30)
			db.addAnswer(model.Answer{ID: 21, QuestionID: 10, AuthorID: otherID}, 500, model.NegotiationStatusPending, 31)
			db.unread[ownerID] = model.UnreadCounts{UnreadAnswers: 2}
		})

		It("marks every answer read once and drains the counter", func() {
			n, err := svc.MarkAnswersRead(ctx, ownerID, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(int64(2)))
			Expect(db.unread[ownerID].UnreadAnswers).To(BeZero())

			n, err = svc.MarkAnswersRead(ctx, ownerID, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeZero())
		})

		It("is only for the owner", func() {
			_, err := svc.MarkAnswersRead(ctx, answererID, 10)
			Expect(err).To(MatchError(service.ErrNotQuestionOwner))
		})
	})

	Describe("StartCheckout", func() {
		BeforeEach(func() {
			db.addQuestion(model.Question{ID: 10, OwnerID: ownerID, RewardAmount: 1500, Title: "Reward me"})
		})

		It("creates a question checkout for the reward", func() {
			url, err := svc.StartCheckout(ctx, ownerID, 10)

			Expect(err).NotTo(HaveOccurred())
			Expect(url).NotTo(BeEmpty())
			Expect(gateway.requests).To(HaveLen(1))
			Expect(gateway.requests[0].Amount).To(Equal(int64(1500)))
			Expect(gateway.requests[0].Intent).To(Equal(payment.QuestionIntent{QuestionID: 10}))
			Expect(gateway.requests[0].SuccessURL).To(Equal("https://knowvalue.example/questions/10?paid=1"))
		})

		It("refuses paid questions", func() {
			q := db.questions[10]
			q.IsPaid = true
			db.questions[10] = q

			_, err := svc.StartCheckout(ctx, ownerID, 10)
			Expect(err).To(MatchError(service.ErrQuestionAlreadyPaid))
			Expect(gateway.requests).To(BeEmpty())
		})

		It("is only for the owner", func() {
			_, err := svc.StartCheckout(ctx, answererID, 10)
			Expect(err).To(MatchError(service.ErrForbidden))
		})
	})
})
