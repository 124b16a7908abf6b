package handler_test

import (
	"context"
	"time"

	"knowvalue.app/server/internal/model"
	"knowvalue.app/server/internal/queue"
	"knowvalue.app/server/internal/service"
)

type mockAuthService struct {
	authURLFn  func(state string) (string, error)
	callbackFn func(ctx context.Context, code string) (*model.User, *model.Session, error)
	validateFn func(ctx context.Context, sessionID int64) (*model.User, error)
	logoutFn   func(ctx context.Context, sessionID int64) error
}

func (m *mockAuthService) GetAuthorizationURL(state string) (string, error) {
	if m.authURLFn != nil {
		return m.authURLFn(state)
	}
	return "https://auth.example.com/authorize?state=" + state, nil
}

func (m *mockAuthService) HandleCallback(ctx context.Context, code string) (*model.User, *model.Session, error) {
	if m.callbackFn != nil {
		return m.callbackFn(ctx, code)
	}
	return nil, nil, nil
}

func (m *mockAuthService) ValidateSession(ctx context.Context, sessionID int64) (*model.User, error) {
	if m.validateFn != nil {
		return m.validateFn(ctx, sessionID)
	}
	return nil, service.ErrSessionExpired
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID int64) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, sessionID)
	}
	return nil
}

func (m *mockAuthService) PurgeExpiredSessions(context.Context) (int64, error) {
	return 0, nil
}

type mockQuestionService struct {
	createFn     func(ctx context.Context, params service.CreateQuestionParams) (*service.QuestionDetail, error)
	getFn        func(ctx context.Context, viewerID, questionID int64) (*service.QuestionDetail, error)
	listPublicFn func(ctx context.Context, categoryID *int64, limit, offset int32) ([]model.Question, error)
	listOwnerFn  func(ctx context.Context, ownerID int64, limit, offset int32) ([]model.Question, error)
	markReadFn   func(ctx context.Context, ownerID, questionID int64) (int64, error)
	checkoutFn   func(ctx context.Context, ownerID, questionID int64) (string, error)
}

func (m *mockQuestionService) Create(ctx context.Context, params service.CreateQuestionParams) (*service.QuestionDetail, error) {
	if m.createFn != nil {
		return m.createFn(ctx, params)
	}
	return &service.QuestionDetail{}, nil
}

func (m *mockQuestionService) Get(ctx context.Context, viewerID, questionID int64) (*service.QuestionDetail, error) {
	if m.getFn != nil {
		return m.getFn(ctx, viewerID, questionID)
	}
	return &service.QuestionDetail{}, nil
}

func (m *mockQuestionService) ListPublic(ctx context.Context, categoryID *int64, limit, offset int32) ([]model.Question, error) {
	if m.listPublicFn != nil {
		return m.listPublicFn(ctx, categoryID, limit, offset)
	}
	return nil, nil
}

func (m *mockQuestionService) ListByOwner(ctx context.Context, ownerID int64, limit, offset int32) ([]model.Question, error) {
	if m.listOwnerFn != nil {
		return m.listOwnerFn(ctx, ownerID, limit, offset)
	}
	return nil, nil
}

func (m *mockQuestionService) MarkAnswersRead(ctx context.Context, ownerID, questionID int64) (int64, error) {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, ownerID, questionID)
	}
	return 0, nil
}

func (m *mockQuestionService) StartCheckout(ctx context.Context, ownerID, questionID int64) (string, error) {
	if m.checkoutFn != nil {
		return m.checkoutFn(ctx, ownerID, questionID)
	}
	return "", nil
}

type mockAnswerService struct {
	createFn       func(ctx context.Context, params service.CreateAnswerParams) (*model.AnswerDetail, error)
	listByAuthorFn func(ctx context.Context, authorID int64, limit, offset int32) ([]model.AnswerSummary, error)
	markReadFn     func(ctx context.Context, ownerID, answerID int64) (bool, error)
}

func (m *mockAnswerService) Create(ctx context.Context, params service.CreateAnswerParams) (*model.AnswerDetail, error) {
	if m.createFn != nil {
		return m.createFn(ctx, params)
	}
	return &model.AnswerDetail{}, nil
}

func (m *mockAnswerService) ListByAuthor(ctx context.Context, authorID int64, limit, offset int32) ([]model.AnswerSummary, error) {
	if m.listByAuthorFn != nil {
		return m.listByAuthorFn(ctx, authorID, limit, offset)
	}
	return nil, nil
}

func (m *mockAnswerService) MarkRead(ctx context.Context, ownerID, answerID int64) (bool, error) {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, ownerID, answerID)
	}
	return false, nil
}

type mockNegotiationService struct {
	acceptFn func(ctx context.Context, callerID, negotiationID int64) (string, error)
	rejectFn func(ctx context.Context, callerID, negotiationID int64) error
}

func (m *mockNegotiationService) Accept(ctx context.Context, callerID, negotiationID int64) (string, error) {
	if m.acceptFn != nil {
		return m.acceptFn(ctx, callerID, negotiationID)
	}
	return "", nil
}

func (m *mockNegotiationService) Reject(ctx context.Context, callerID, negotiationID int64) error {
	if m.rejectFn != nil {
		return m.rejectFn(ctx, callerID, negotiationID)
	}
	return nil
}

func (m *mockNegotiationService) ExpireStale(context.Context, time.Time) (int, error) {
	return 0, nil
}

type mockBestAnswerService struct {
	selectFn func(ctx context.Context, callerID, questionID, answerID int64) error
}

func (m *mockBestAnswerService) Select(ctx context.Context, callerID, questionID, answerID int64) error {
	if m.selectFn != nil {
		return m.selectFn(ctx, callerID, questionID, answerID)
	}
	return nil
}

type mockNotificationService struct {
	listFn     func(ctx context.Context, userID int64, limit, offset int32) ([]model.Notification, error)
	unreadFn   func(ctx context.Context, userID int64) (model.UnreadCounts, error)
	markReadFn func(ctx context.Context, userID, notificationID int64) error
}

func (m *mockNotificationService) List(ctx context.Context, userID int64, limit, offset int32) ([]model.Notification, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockNotificationService) Unread(ctx context.Context, userID int64) (model.UnreadCounts, error) {
	if m.unreadFn != nil {
		return m.unreadFn(ctx, userID)
	}
	return model.UnreadCounts{}, nil
}

func (m *mockNotificationService) MarkRead(ctx context.Context, userID, notificationID int64) error {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, userID, notificationID)
	}
	return nil
}

func (m *mockNotificationService) HandleEvent(context.Context, queue.Event) (bool, error) {
	return false, nil
}

type mockEngagementService struct {
	toggleLikeFn   func(ctx context.Context, userID, answerID int64) (bool, int32, error)
	addCommentFn   func(ctx context.Context, userID, answerID int64, content string) (*model.Comment, error)
	listCommentsFn func(ctx context.Context, viewerID, answerID int64) ([]model.Comment, error)
}

func (m *mockEngagementService) ToggleLike(ctx context.Context, userID, answerID int64) (bool, int32, error) {
	if m.toggleLikeFn != nil {
		return m.toggleLikeFn(ctx, userID, answerID)
	}
	return false, 0, nil
}

func (m *mockEngagementService) AddComment(ctx context.Context, userID, answerID int64, content string) (*model.Comment, error) {
	if m.addCommentFn != nil {
		return m.addCommentFn(ctx, userID, answerID, content)
	}
	return &model.Comment{}, nil
}

func (m *mockEngagementService) ListComments(ctx context.Context, viewerID, answerID int64) ([]model.Comment, error) {
	if m.listCommentsFn != nil {
		return m.listCommentsFn(ctx, viewerID, answerID)
	}
	return nil, nil
}

type mockUserService struct {
	getFn           func(ctx context.Context, userID int64) (*model.User, error)
	consentFn       func(ctx context.Context, userID int64, version string) (*model.User, error)
	listPurchasesFn func(ctx context.Context, userID int64, limit, offset int32) ([]model.Purchase, error)
}

func (m *mockUserService) Get(ctx context.Context, userID int64) (*model.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, service.ErrUserNotFound
}

func (m *mockUserService) RecordConsent(ctx context.Context, userID int64, version string) (*model.User, error) {
	if m.consentFn != nil {
		return m.consentFn(ctx, userID, version)
	}
	return &model.User{ID: userID, ConsentVersion: &version}, nil
}

func (m *mockUserService) ListPurchases(ctx context.Context, userID int64, limit, offset int32) ([]model.Purchase, error) {
	if m.listPurchasesFn != nil {
		return m.listPurchasesFn(ctx, userID, limit, offset)
	}
	return nil, nil
}
