package service_test

import (
	"context"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"knowvalue.app/server/internal/model"
	"knowvalue.app/server/internal/service"
)

var _ = Describe("BestAnswerService", func() {
	const (
		questionID int64 = 10
		answerID   int64 = 20
	)

	var (
		ctx context.Context
		db  *memDB
		svc service.BestAnswerService
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = newMemDB()
		db.addQuestion(model.Question{ID: questionID, OwnerID: ownerID, IsPaid: true})
		db.addAnswer(model.Answer{ID: answerID, QuestionID: questionID, AuthorID: answererID}, 500, model.NegotiationStatusPending, 30)
		svc = service.NewBestAnswerService(&memTxRunner{db: db})
	})

	It("records the best answer, closes the question and notifies the author", func() {
		Expect(svc.Select(ctx, ownerID, questionID, answerID)).To(Succeed())

		q := db.questions[questionID]
		Expect(q.IsClosed).To(BeTrue())
		Expect(*q.BestAnswerID).To(Equal(answerID))

		notes := db.notificationsFor(answererID)
		Expect(notes).To(HaveLen(1))
		Expect(notes[0].Type).To(Equal(model.NotificationTypeBestSelected))
		Expect(notes[0].Message).To(Equal("あなたの回答がBESTに選ばれました！"))
		Expect(*notes[0].Link).To(Equal("/questions/10"))
		Expect(db.unread[answererID].UnreadNotifications).To(Equal(int32(1)))
	})

	It("conflicts on a second selection and creates no second notification", func() {
		Expect(svc.Select(ctx, ownerID, questionID, answerID)).To(Succeed())

		db.addAnswer(model.Answer{ID: 21, QuestionID: questionID, AuthorID: otherID}, 500, model.NegotiationStatusPending, 31)
		err := svc.Select(ctx, ownerID, questionID, 21)

		Expect(err).To(MatchError(service.ErrConflict))
		Expect(*db.questions[questionID].BestAnswerID).To(Equal(answerID))
		Expect(db.notificationsFor(otherID)).To(BeEmpty())
	})

	It("lets exactly one of two concurrent selections win", func() {
		const rivalID int64 = 21
		db.addAnswer(model.Answer{ID: rivalID, QuestionID: questionID, AuthorID: otherID}, 500, model.NegotiationStatusPending, 31)

		candidates := []int64{answerID, rivalID}
		errs := make([]error, len(candidates))
		start := make(chan struct{})
		var wg sync.WaitGroup
		for i, candidate := range candidates {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				<-start
				errs[i] = svc.Select(ctx, ownerID, questionID, candidate)
			}()
		}
		close(start)
		wg.Wait()

		var winner int64
		conflicts := 0
		for i, err := range errs {
			if err == nil {
				Expect(winner).To(BeZero())
				winner = candidates[i]
				continue
			}
			Expect(err).To(MatchError(service.ErrConflict))
			conflicts++
		}
		Expect(winner).NotTo(BeZero())
		Expect(conflicts).To(Equal(1))

		q := db.questions[questionID]
		Expect(q.IsClosed).To(BeTrue())
		Expect(*q.BestAnswerID).To(Equal(winner))
		Expect(len(db.notificationsFor(answererID)) + len(db.notificationsFor(otherID))).To(Equal(1))
	})

	It("conflicts when another selection commits between the lock and the update", func() {
		const rivalID int64 = 21
		db.hooks["Questions.GetForUpdate"] = func() {
			q := db.questions[questionID]
			q.IsClosed = true
			q.BestAnswerID = ptr(rivalID)
			db.questions[questionID] = q
		}

		err := svc.Select(ctx, ownerID, questionID, answerID)

		Expect(err).To(MatchError(service.ErrConflict))
		Expect(*db.questions[questionID].BestAnswerID).To(Equal(rivalID))
		Expect(db.notificationsFor(answererID)).To(BeEmpty())
	})

	It("forbids anyone but the owner", func() {
		Expect(svc.Select(ctx, answererID, questionID, answerID)).To(MatchError(service.ErrForbidden))
		Expect(db.questions[questionID].IsClosed).To(BeFalse())
	})

	It("reports unknown questions and answers", func() {
		Expect(svc.Select(ctx, ownerID, 404, answerID)).To(MatchError(service.ErrQuestionNotFound))
		Expect(svc.Select(ctx, ownerID, questionID, 404)).To(MatchError(service.ErrAnswerNotFound))
	})

	It("refuses an answer from another question", func() {
		db.addQuestion(model.Question{ID: 11, OwnerID: ownerID, IsPaid: true})
		db.addAnswer(model.Answer{ID: 22, QuestionID: 11, AuthorID: otherID}, 500, model.NegotiationStatusPending, 32)

		Expect(svc.Select(ctx, ownerID, questionID, 22)).To(MatchError(service.ErrNotFound))
		Expect(db.questions[questionID].BestAnswerID).To(BeNil())
	})

	It("leaves the question open when the notification cannot be written", func() {
		db.failOn["Notifications.Create"] = errInjected

		Expect(svc.Select(ctx, ownerID, questionID, answerID)).To(MatchError(errInjected))

		q := db.questions[questionID]
		Expect(q.IsClosed).To(BeFalse())
		Expect(q.BestAnswerID).To(BeNil())
	})

	It("validates ids before touching the store", func() {
		Expect(svc.Select(ctx, 0, questionID, answerID)).To(MatchError(service.ErrUnauthenticated))
		Expect(svc.Select(ctx, ownerID, questionID, 0)).To(MatchError(service.ErrValidation))
	})
})
