package service

import (
	"knowvalue.app/server/core/config"
	"knowvalue.app/server/internal/blob"
	"knowvalue.app/server/internal/metrics"
	"knowvalue.app/server/internal/payment"
	"knowvalue.app/server/internal/store"
)

// Deps are the collaborators shared by every service.
type Deps struct {
	Stores    *store.Stores
	TxRunner  TxRunner
	Blobs     blob.Store
	Gateway   payment.Gateway
	Publisher EventPublisher
	Metrics   *metrics.Metrics
	Checkout  CheckoutConfig
	WorkOS    config.WorkOSConfig
}

type Services struct {
	deps Deps
}

func NewServices(deps Deps) *Services {
	return &Services{deps: deps}
}

func (s *Services) Users() UserService {
	return NewUserService(s.deps.Stores.Users(), s.deps.Stores.Purchases())
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.deps.Stores.Users(), s.deps.Stores.Sessions(), s.deps.WorkOS)
}

func (s *Services) Categories() CategoryService {
	return NewCategoryService(s.deps.Stores.Categories())
}

func (s *Services) Questions() QuestionService {
	return NewQuestionService(s.deps.Stores, s.deps.TxRunner, s.deps.Blobs, s.deps.Gateway, s.deps.Metrics, s.deps.Checkout)
}

func (s *Services) Answers() AnswerService {
	return NewAnswerService(s.deps.Stores, s.deps.TxRunner, s.deps.Blobs, s.deps.Publisher)
}

func (s *Services) Negotiations() NegotiationService {
	return NewNegotiationService(s.deps.Stores, s.deps.Gateway, s.deps.Publisher, s.deps.Metrics, s.deps.Checkout)
}

func (s *Services) Payments() PaymentService {
	return NewPaymentService(s.deps.TxRunner, s.deps.Gateway, s.deps.Publisher, s.deps.Metrics)
}

func (s *Services) BestAnswers() BestAnswerService {
	return NewBestAnswerService(s.deps.TxRunner)
}

func (s *Services) Notifications() NotificationService {
	return NewNotificationService(s.deps.Stores, s.deps.TxRunner)
}

func (s *Services) Engagement() EngagementService {
	return NewEngagementService(s.deps.Stores, s.deps.TxRunner)
}
