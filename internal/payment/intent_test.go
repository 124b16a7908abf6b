package payment_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"knowvalue.app/server/internal/payment"
)

var _ = Describe("ParseIntent", func() {
	It("parses a negotiation payment", func() {
		intent, err := payment.ParseIntent(map[string]string{
			"negotiationId":  "101",
			"questionId":     "7",
			"answerId":       "55",
			"proposedAmount": "1500",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(intent).To(Equal(payment.NegotiationIntent{
			NegotiationID:  101,
			QuestionID:     7,
			AnswerID:       55,
			ProposedAmount: 1500,
		}))
	})

	It("prefers the negotiation shape when both are present", func() {
		intent, err := payment.ParseIntent(map[string]string{
			"negotiationId": "101",
			"kind":          "question",
			"questionId":    "7",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(intent).To(BeAssignableToTypeOf(payment.NegotiationIntent{}))
	})

	It("parses a question payment", func() {
		intent, err := payment.ParseIntent(map[string]string{"kind": "question", "questionId": "7"})
		Expect(err).NotTo(HaveOccurred())
		Expect(intent).To(Equal(payment.QuestionIntent{QuestionID: 7}))
	})

	It("parses a question payment from the question id alone", func() {
		intent, err := payment.ParseIntent(map[string]string{"questionId": "12345"})
		Expect(err).NotTo(HaveOccurred())
		Expect(intent).To(Equal(payment.QuestionIntent{QuestionID: 12345}))
	})

	DescribeTable("rejects metadata matching neither shape",
		func(md map[string]string) {
			_, err := payment.ParseIntent(md)
			Expect(err).To(MatchError(payment.ErrUnknownIntent))
		},
		Entry("nil", nil),
		Entry("empty", map[string]string{}),
		Entry("unknown kind", map[string]string{"kind": "subscription", "questionId": "7"}),
		Entry("malformed question id", map[string]string{"questionId": "abc"}),
		Entry("question kind without id", map[string]string{"kind": "question"}),
		Entry("malformed negotiation id", map[string]string{"negotiationId": "abc"}),
		Entry("zero negotiation id", map[string]string{"negotiationId": "0"}),
	)

	It("round-trips through checkout metadata", func() {
		in := payment.NegotiationIntent{NegotiationID: 9, QuestionID: 8, AnswerID: 7, ProposedAmount: 300}
		out, err := payment.ParseIntent(in.Metadata())
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(in))

		q := payment.QuestionIntent{QuestionID: 3}
		out, err = payment.ParseIntent(q.Metadata())
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(q))
	})
})
