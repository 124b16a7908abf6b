package service_test

import (
	"context"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"knowvalue.app/server/core/config"
	"knowvalue.app/server/internal/model"
	"knowvalue.app/server/internal/service"
)

var _ = Describe("UserService", func() {
	var (
		ctx    context.Context
		db     *memDB
		stores *memStores
		svc    service.UserService
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = newMemDB()
		db.addUser(ownerID, "owner")
		stores = &memStores{db: db}
		svc = service.NewUserService(stores.Users(), stores.Purchases())
	})

	Describe("Get", func() {
		It("returns the user", func() {
			user, err := svc.Get(ctx, ownerID)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Name).To(Equal("owner"))
		})

		It("maps a missing user", func() {
			_, err := svc.Get(ctx, 404)
			Expect(err).To(MatchError(service.ErrUserNotFound))
		})
	})

	Describe("RecordConsent", func() {
		It("stores the trimmed version with a timestamp", func() {
			user, err := svc.RecordConsent(ctx, ownerID, " 2024-06 ")
			Expect(err).NotTo(HaveOccurred())
			Expect(*user.ConsentVersion).To(Equal("2024-06"))
			Expect(user.ConsentAt).NotTo(BeNil())
		})

		It("validates the version", func() {
			_, err := svc.RecordConsent(ctx, ownerID, "")
			Expect(err).To(MatchError(service.ErrValidation))

			_, err = svc.RecordConsent(ctx, ownerID, strings.Repeat("v", 33))
			Expect(err).To(MatchError(service.ErrValidation))
		})

		It("requires a caller", func() {
			_, err := svc.RecordConsent(ctx, 0, "1")
			Expect(err).To(MatchError(service.ErrUnauthenticated))
		})

		It("wraps store failures", func() {
			db.failOn["Users.RecordConsent"] = errInjected
			_, err := svc.RecordConsent(ctx, ownerID, "1")
			Expect(err).To(MatchError(errInjected))
		})
	})

	Describe("ListPurchases", func() {
		It("lists the caller's purchases only", func() {
			db.purchases = []model.Purchase{
				{ID: 1, QuestionID: 10, PayerID: ownerID, Amount: 500},
				{ID: 2, QuestionID: 11, PayerID: otherID, Amount: 800},
			}

			purchases, err := svc.ListPurchases(ctx, ownerID, 0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(purchases).To(HaveLen(1))
			Expect(purchases[0].Amount).To(Equal(int32(500)))
		})
	})
})

var _ = Describe("AuthService", func() {
	var (
		ctx    context.Context
		db     *memDB
		stores *memStores
		svc    service.AuthService
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = newMemDB()
		db.addUser(ownerID, "owner")
		stores = &memStores{db: db}
		svc = service.NewAuthService(stores.Users(), stores.Sessions(), config.WorkOSConfig{
			APIKey:      "sk_test",
			ClientID:    "client_test",
			RedirectURI: "http://localhost:8080/auth/callback",
		})
	})

	It("builds an AuthKit authorization URL carrying the state", func() {
		url, err := svc.GetAuthorizationURL("state-123")
		Expect(err).NotTo(HaveOccurred())
		Expect(url).To(ContainSubstring("state=state-123"))
		Expect(url).To(ContainSubstring("client_id=client_test"))
	})

	It("validates live sessions and rejects expired ones", func() {
		db.sessions[100] = model.Session{ID: 100, UserID: ownerID, ExpiresAt: time.Now().Add(time.Hour)}
		db.sessions[101] = model.Session{ID: 101, UserID: ownerID, ExpiresAt: time.Now().Add(-time.Hour)}

		user, err := svc.ValidateSession(ctx, 100)
		Expect(err).NotTo(HaveOccurred())
		Expect(user.ID).To(Equal(ownerID))

		_, err = svc.ValidateSession(ctx, 101)
		Expect(err).To(MatchError(service.ErrSessionExpired))
		Expect(err).To(MatchError(service.ErrUnauthenticated))
	})

	It("reports a session whose user is gone", func() {
		db.sessions[102] = model.Session{ID: 102, UserID: 404, ExpiresAt: time.Now().Add(time.Hour)}

		_, err := svc.ValidateSession(ctx, 102)
		Expect(err).To(MatchError(service.ErrUserNotFound))
	})

	It("logs out and purges expired sessions", func() {
		db.sessions[100] = model.Session{ID: 100, UserID: ownerID, ExpiresAt: time.Now().Add(time.Hour)}
		db.sessions[101] = model.Session{ID: 101, UserID: ownerID, ExpiresAt: time.Now().Add(-time.Hour)}

		Expect(svc.Logout(ctx, 100)).To(Succeed())
		n, err := svc.PurgeExpiredSessions(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(1)))
		Expect(db.sessions).To(BeEmpty())
	})
})
