package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"knowvalue.app/server/internal/http/handler"
	"knowvalue.app/server/internal/http/middleware"
	"knowvalue.app/server/internal/service"
)

var _ = Describe("NegotiationHandler", func() {
	var (
		router       *gin.Engine
		negotiations *mockNegotiationService
		bestAnswers  *mockBestAnswerService
	)

	BeforeEach(func() {
		negotiations = &mockNegotiationService{}
		bestAnswers = &mockBestAnswerService{}
		auth := signedIn()
		nh := handler.NewNegotiationHandler(negotiations)
		bh := handler.NewBestAnswerHandler(bestAnswers)

		router = gin.New()
		router.POST("/negotiations/accept", middleware.RequireAuth(auth), nh.Accept)
		router.POST("/negotiations/reject", middleware.RequireAuth(auth), nh.Reject)
		router.POST("/best-answer", middleware.RequireAuth(auth), bh.Select)
	})

	postJSON := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		return serve(router, withSession(req))
	}

	It("returns the checkout URL on accept", func() {
		negotiations.acceptFn = func(_ context.Context, _, negotiationID int64) (string, error) {
			Expect(negotiationID).To(Equal(int64(30)))
			return "https://checkout.example.com/cs_test_1", nil
		}

		w := postJSON("/negotiations/accept", `{"negotiationId":"30"}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)).To(Equal(map[string]any{"checkoutUrl": "https://checkout.example.com/cs_test_1"}))
	})

	DescribeTable("maps accept failures",
		func(err error, wantStatus int) {
			negotiations.acceptFn = func(context.Context, int64, int64) (string, error) { return "", err }

			w := postJSON("/negotiations/accept", `{"negotiationId":"30"}`)

			Expect(w.Code).To(Equal(wantStatus))
		},
		Entry("settled", service.ErrNegotiationSettled, http.StatusBadRequest),
		Entry("not the owner", service.ErrNotQuestionOwner, http.StatusForbidden),
		Entry("unknown", service.ErrNegotiationNotFound, http.StatusNotFound),
		Entry("gateway", fmt.Errorf("%w: timeout", service.ErrGateway), http.StatusInternalServerError),
	)

	It("requires a negotiation id", func() {
		w := postJSON("/negotiations/accept", `{}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		w = postJSON("/negotiations/reject", `{"negotiationId":"-4"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects a proposal", func() {
		var rejected int64
		negotiations.rejectFn = func(_ context.Context, _, negotiationID int64) error {
			rejected = negotiationID
			return nil
		}

		w := postJSON("/negotiations/reject", `{"negotiationId":"31"}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(rejected).To(Equal(int64(31)))
		Expect(decode(w)["success"]).To(BeTrue())
	})

	Describe("best answer", func() {
		It("selects for the caller", func() {
			var gotCaller, gotQuestion, gotAnswer int64
			bestAnswers.selectFn = func(_ context.Context, caller, questionID, answerID int64) error {
				gotCaller, gotQuestion, gotAnswer = caller, questionID, answerID
				return nil
			}

			w := postJSON("/best-answer", `{"questionId":"10","answerId":"20"}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect([]int64{gotCaller, gotQuestion, gotAnswer}).To(Equal([]int64{callerID, 10, 20}))
		})

		It("maps a second selection to 409", func() {
			bestAnswers.selectFn = func(context.Context, int64, int64, int64) error { return service.ErrQuestionClosed }

			w := postJSON("/best-answer", `{"questionId":"10","answerId":"20"}`)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})
})
