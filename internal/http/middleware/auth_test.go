package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"knowvalue.app/server/internal/model"
	"knowvalue.app/server/internal/service"
)

type stubAuth struct {
	service.AuthService
	validate func(ctx context.Context, sessionID int64) (*model.User, error)
}

func (s stubAuth) ValidateSession(ctx context.Context, sessionID int64) (*model.User, error) {
	return s.validate(ctx, sessionID)
}

var _ = Describe("auth middleware", func() {
	var auth stubAuth

	BeforeEach(func() {
		auth = stubAuth{validate: func(_ context.Context, sid int64) (*model.User, error) {
			switch sid {
			case 1:
				return &model.User{ID: 7}, nil
			case 2:
				return nil, service.ErrSessionExpired
			default:
				return nil, errors.New("db down")
			}
		}}
	})

	run := func(mw gin.HandlerFunc, cookie string) (*httptest.ResponseRecorder, int64) {
		var seen int64 = -1
		router := gin.New()
		router.GET("/x", mw, func(c *gin.Context) {
			seen = UserID(c.Request.Context())
			c.Status(http.StatusOK)
		})
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w, seen
	}

	DescribeTable("RequireAuth",
		func(cookie string, wantStatus int, wantUser int64) {
			w, seen := run(RequireAuth(auth), cookie)
			Expect(w.Code).To(Equal(wantStatus))
			Expect(seen).To(Equal(wantUser))
		},
		Entry("valid session", "1", http.StatusOK, int64(7)),
		Entry("no cookie", "", http.StatusUnauthorized, int64(-1)),
		Entry("garbage cookie", "abc", http.StatusUnauthorized, int64(-1)),
		Entry("expired session", "2", http.StatusUnauthorized, int64(-1)),
		Entry("store failure", "3", http.StatusInternalServerError, int64(-1)),
	)

	It("clears the cookie of an expired session", func() {
		w, _ := run(RequireAuth(auth), "2")
		Expect(w.Header().Get("Set-Cookie")).To(ContainSubstring(SessionCookieName + "=;"))
	})

	DescribeTable("OptionalAuth never aborts",
		func(cookie string, wantUser int64) {
			w, seen := run(OptionalAuth(auth), cookie)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(seen).To(Equal(wantUser))
		},
		Entry("valid session", "1", int64(7)),
		Entry("guest", "", int64(0)),
		Entry("expired session", "2", int64(0)),
	)
})
