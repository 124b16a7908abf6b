package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"knowvalue.app/server/internal/blob"
	"knowvalue.app/server/internal/model"
	"knowvalue.app/server/internal/payment"
	"knowvalue.app/server/internal/queue"
	"knowvalue.app/server/internal/service"
	"knowvalue.app/server/internal/store"
)

var errInjected = errors.New("injected failure")

// memDB is an in-memory stand-in for the database behind every store.
// failOn maps an operation name such as "Purchases.Create" to the error it returns.
// hooks run right after the named read, standing in for a concurrent commit.
type memDB struct {
	users          map[int64]model.User
	sessions       map[int64]model.Session
	categories     map[int64]model.Category
	questions      map[int64]model.Question
	questionImages []model.QuestionImage
	answers        map[int64]model.Answer
	answerImages   []model.AnswerImage
	negotiations   map[int64]model.Negotiation
	purchases      []model.Purchase
	paymentEvents  map[string]bool
	notifications  map[int64]model.Notification
	reads          map[[2]int64]bool
	comments       []model.Comment
	likes          map[[2]int64]bool
	unread         map[int64]model.UnreadCounts

	failOn map[string]error
	hooks  map[string]func()
	clock  time.Time
}

func newMemDB() *memDB {
	return &memDB{
		users:         map[int64]model.User{},
		sessions:      map[int64]model.Session{},
		categories:    map[int64]model.Category{},
		questions:     map[int64]model.Question{},
		answers:       map[int64]model.Answer{},
		negotiations:  map[int64]model.Negotiation{},
		paymentEvents: map[string]bool{},
		notifications: map[int64]model.Notification{},
		reads:         map[[2]int64]bool{},
		likes:         map[[2]int64]bool{},
		unread:        map[int64]model.UnreadCounts{},
		failOn:        map[string]error{},
		hooks:         map[string]func(){},
		clock:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memDB) now() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memDB) fail(op string) error {
	return m.failOn[op]
}

func (m *memDB) fire(op string) {
	if hook := m.hooks[op]; hook != nil {
		hook()
	}
}

// snapshot copies every table so a failed transaction can be rolled back.
func (m *memDB) snapshot() *memDB {
	c := &memDB{
		users:          copyMap(m.users),
		sessions:       copyMap(m.sessions),
		categories:     copyMap(m.categories),
		questions:      copyMap(m.questions),
		questionImages: append([]model.QuestionImage(nil), m.questionImages...),
		answers:        copyMap(m.answers),
		answerImages:   append([]model.AnswerImage(nil), m.answerImages...),
		negotiations:   copyMap(m.negotiations),
		purchases:      append([]model.Purchase(nil), m.purchases...),
		paymentEvents:  copyMap(m.paymentEvents),
		notifications:  copyMap(m.notifications),
		reads:          copyMap(m.reads),
		comments:       append([]model.Comment(nil), m.comments...),
		likes:          copyMap(m.likes),
		unread:         copyMap(m.unread),
	}
	return c
}

func (m *memDB) restore(c *memDB) {
	m.users = c.users
	m.sessions = c.sessions
	m.categories = c.categories
	m.questions = c.questions
	m.questionImages = c.questionImages
	m.answers = c.answers
	m.answerImages = c.answerImages
	m.negotiations = c.negotiations
	m.purchases = c.purchases
	m.paymentEvents = c.paymentEvents
	m.notifications = c.notifications
	m.reads = c.reads
	m.comments = c.comments
	m.likes = c.likes
	m.unread = c.unread
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func ptr[T any](v T) *T {
	return &v
}

// seed helpers

func (m *memDB) addUser(id int64, name string) {
	m.users[id] = model.User{ID: id, Name: name, Email: name + "@example.com"}
}

func (m *memDB) addQuestion(q model.Question) *model.Question {
	if q.Title == "" {
		q.Title = "How do I ship it?"
	}
	if q.Content == "" {
		q.Content = "details"
	}
	if q.RewardAmount == 0 {
		q.RewardAmount = 500
	}
	q.CreatedAt = m.now()
	m.questions[q.ID] = q
	return &q
}

func (m *memDB) addAnswer(a model.Answer, amount int32, status model.NegotiationStatus, negotiationID int64) {
	if a.Pitch == "" {
		a.Pitch = "I know this one"
	}
	a.CreatedAt = m.now()
	m.answers[a.ID] = a
	m.negotiations[negotiationID] = model.Negotiation{
		ID:             negotiationID,
		AnswerID:       a.ID,
		ProposedAmount: amount,
		Status:         status,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.CreatedAt,
	}
}

func (m *memDB) negotiationFor(answerID int64) *model.Negotiation {
	for _, n := range m.negotiations {
		if n.AnswerID == answerID {
			n := n
			return &n
		}
	}
	return nil
}

func (m *memDB) notificationsFor(userID int64) []model.Notification {
	var out []model.Notification
	for _, n := range m.notifications {
		if n.RecipientID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// memStores exposes memDB through the store interfaces.
type memStores struct {
	db *memDB
}

var _ service.StoreProvider = (*memStores)(nil)

func (s *memStores) Users() store.UserStore                   { return memUsers{s.db} }
func (s *memStores) Sessions() store.SessionStore             { return memSessions{s.db} }
func (s *memStores) Categories() store.CategoryStore          { return memCategories{s.db} }
func (s *memStores) Questions() store.QuestionStore           { return memQuestions{s.db} }
func (s *memStores) Answers() store.AnswerStore               { return memAnswers{s.db} }
func (s *memStores) Negotiations() store.NegotiationStore     { return memNegotiations{s.db} }
func (s *memStores) Purchases() store.PurchaseStore           { return memPurchases{s.db} }
func (s *memStores) PaymentEvents() store.PaymentEventStore   { return memPaymentEvents{s.db} }
func (s *memStores) Notifications() store.NotificationStore   { return memNotifications{s.db} }
func (s *memStores) AnswerReads() store.AnswerReadStore       { return memAnswerReads{s.db} }
func (s *memStores) Comments() store.CommentStore             { return memComments{s.db} }
func (s *memStores) Likes() store.LikeStore                   { return memLikes{s.db} }
func (s *memStores) UnreadCounters() store.UnreadCounterStore { return memUnread{s.db} }

// memTxRunner runs fn against the shared memDB and rolls every table back when fn fails.
// Transactions run one at a time, as rows locked FOR UPDATE make them in Postgres.
type memTxRunner struct {
	db    *memDB
	mu    sync.Mutex
	calls int
}

func (r *memTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++
	saved := r.db.snapshot()
	if err := fn(&memStores{db: r.db}); err != nil {
		r.db.restore(saved)
		return err
	}
	return nil
}

type memUsers struct{ db *memDB }

func (s memUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.db.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s memUsers) UpsertByWorkOSID(_ context.Context, user *model.User) error {
	if err := s.db.fail("Users.UpsertByWorkOSID"); err != nil {
		return err
	}
	for id, u := range s.db.users {
		if u.WorkOSID != nil && user.WorkOSID != nil && *u.WorkOSID == *user.WorkOSID {
			user.ID = id
		}
	}
	s.db.users[user.ID] = *user
	return nil
}

func (s memUsers) RecordConsent(_ context.Context, userID int64, version string) (*model.User, error) {
	if err := s.db.fail("Users.RecordConsent"); err != nil {
		return nil, err
	}
	u, ok := s.db.users[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	at := s.db.now()
	u.ConsentAt = &at
	u.ConsentVersion = &version
	s.db.users[userID] = u
	return &u, nil
}

type memSessions struct{ db *memDB }

func (s memSessions) GetValid(_ context.Context, id int64) (*model.Session, error) {
	sess, ok := s.db.sessions[id]
	if !ok || !sess.ExpiresAt.After(time.Now()) {
		return nil, store.ErrNotFound
	}
	return &sess, nil
}

func (s memSessions) Create(_ context.Context, session *model.Session) error {
	s.db.sessions[session.ID] = *session
	return nil
}

func (s memSessions) Delete(_ context.Context, id int64) error {
	delete(s.db.sessions, id)
	return nil
}

func (s memSessions) DeleteExpired(_ context.Context) (int64, error) {
	if err := s.db.fail("Sessions.DeleteExpired"); err != nil {
		return 0, err
	}
	var n int64
	for id, sess := range s.db.sessions {
		if !sess.ExpiresAt.After(time.Now()) {
			delete(s.db.sessions, id)
			n++
		}
	}
	return n, nil
}

type memCategories struct{ db *memDB }

func (s memCategories) List(_ context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0, len(s.db.categories))
	for _, c := range s.db.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (s memCategories) GetByID(_ context.Context, id int64) (*model.Category, error) {
	c, ok := s.db.categories[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

type memQuestions struct{ db *memDB }

func (s memQuestions) Create(_ context.Context, q *model.Question) error {
	if err := s.db.fail("Questions.Create"); err != nil {
		return err
	}
	q.CreatedAt = s.db.now()
	q.UpdatedAt = q.CreatedAt
	s.db.questions[q.ID] = *q
	return nil
}

func (s memQuestions) GetByID(_ context.Context, id int64) (*model.Question, error) {
	q, ok := s.db.questions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &q, nil
}

func (s memQuestions) GetForUpdate(ctx context.Context, id int64) (*model.Question, error) {
	if err := s.db.fail("Questions.GetForUpdate"); err != nil {
		return nil, err
	}
	q, err := s.GetByID(ctx, id)
	s.db.fire("Questions.GetForUpdate")
	return q, err
}

func (s memQuestions) list(match func(model.Question) bool, limit, offset int32) []model.Question {
	var out []model.Question
	for _, q := range s.db.questions {
		if match(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int(offset) >= len(out) {
		return []model.Question{}
	}
	out = out[offset:]
	if len(out) > int(limit) {
		out = out[:limit]
	}
	return out
}

func (s memQuestions) ListPaid(_ context.Context, categoryID *int64, limit, offset int32) ([]model.Question, error) {
	return s.list(func(q model.Question) bool {
		if !q.IsPaid {
			return false
		}
		return categoryID == nil || (q.CategoryID != nil && *q.CategoryID == *categoryID)
	}, limit, offset), nil
}

func (s memQuestions) ListByOwner(_ context.Context, ownerID int64, limit, offset int32) ([]model.Question, error) {
	return s.list(func(q model.Question) bool { return q.OwnerID == ownerID }, limit, offset), nil
}

func (s memQuestions) MarkPaid(_ context.Context, id int64) (bool, error) {
	if err := s.db.fail("Questions.MarkPaid"); err != nil {
		return false, err
	}
	q, ok := s.db.questions[id]
	if !ok || q.IsPaid {
		return false, nil
	}
	q.IsPaid = true
	s.db.questions[id] = q
	return true, nil
}

func (s memQuestions) SetBestAnswer(_ context.Context, questionID, answerID int64) (bool, error) {
	q, ok := s.db.questions[questionID]
	if !ok || q.IsClosed || q.BestAnswerID != nil {
		return false, nil
	}
	q.BestAnswerID = &answerID
	q.IsClosed = true
	s.db.questions[questionID] = q
	return true, nil
}

func (s memQuestions) AddImage(_ context.Context, img *model.QuestionImage) error {
	if err := s.db.fail("Questions.AddImage"); err != nil {
		return err
	}
	s.db.questionImages = append(s.db.questionImages, *img)
	return nil
}

func (s memQuestions) ListImages(_ context.Context, questionID int64) ([]model.QuestionImage, error) {
	out := []model.QuestionImage{}
	for _, img := range s.db.questionImages {
		if img.QuestionID == questionID {
			out = append(out, img)
		}
	}
	return out, nil
}

type memAnswers struct{ db *memDB }

func (s memAnswers) Create(_ context.Context, a *model.Answer) error {
	if err := s.db.fail("Answers.Create"); err != nil {
		return err
	}
	a.CreatedAt = s.db.now()
	s.db.answers[a.ID] = *a
	return nil
}

func (s memAnswers) GetByID(_ context.Context, id int64) (*model.Answer, error) {
	a, ok := s.db.answers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &a, nil
}

func (s memAnswers) ListDetailsByQuestion(_ context.Context, questionID int64) ([]model.AnswerDetail, error) {
	var out []model.AnswerDetail
	for _, a := range s.db.answers {
		if a.QuestionID != questionID {
			continue
		}
		d := model.AnswerDetail{
			Answer:      a,
			AuthorName:  s.db.users[a.AuthorID].Name,
			Negotiation: s.db.negotiationFor(a.ID),
		}
		for key := range s.db.likes {
			if key[1] == a.ID {
				d.LikeCount++
			}
		}
		for _, img := range s.db.answerImages {
			if img.AnswerID == a.ID {
				d.Images = append(d.Images, img)
			}
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s memAnswers) ListSummariesByAuthor(_ context.Context, authorID int64, limit, _ int32) ([]model.AnswerSummary, error) {
	var out []model.AnswerSummary
	for _, a := range s.db.answers {
		if a.AuthorID != authorID {
			continue
		}
		sum := model.AnswerSummary{
			ID:            a.ID,
			QuestionID:    a.QuestionID,
			QuestionTitle: s.db.questions[a.QuestionID].Title,
			Pitch:         a.Pitch,
			CreatedAt:     a.CreatedAt,
		}
		if n := s.db.negotiationFor(a.ID); n != nil {
			sum.ProposedAmount = &n.ProposedAmount
			sum.Status = &n.Status
		}
		out = append(out, sum)
	}
	if len(out) > int(limit) {
		out = out[:limit]
	}
	return out, nil
}

func (s memAnswers) AddImage(_ context.Context, img *model.AnswerImage) error {
	if err := s.db.fail("Answers.AddImage"); err != nil {
		return err
	}
	s.db.answerImages = append(s.db.answerImages, *img)
	return nil
}

type memNegotiations struct{ db *memDB }

func (s memNegotiations) Create(_ context.Context, n *model.Negotiation) error {
	if err := s.db.fail("Negotiations.Create"); err != nil {
		return err
	}
	for _, existing := range s.db.negotiations {
		if existing.AnswerID == n.AnswerID {
			return &pgconn.PgError{Code: "23505", ConstraintName: "negotiations_answer_id_key"}
		}
	}
	n.CreatedAt = s.db.now()
	n.UpdatedAt = n.CreatedAt
	s.db.negotiations[n.ID] = *n
	return nil
}

func (s memNegotiations) GetContext(_ context.Context, id int64) (*model.NegotiationContext, error) {
	n, ok := s.db.negotiations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	a := s.db.answers[n.AnswerID]
	q := s.db.questions[a.QuestionID]
	return &model.NegotiationContext{
		Negotiation:     n,
		AnswerAuthorID:  a.AuthorID,
		QuestionID:      q.ID,
		QuestionOwnerID: q.OwnerID,
		QuestionTitle:   q.Title,
	}, nil
}

func (s memNegotiations) GetContextForUpdate(ctx context.Context, id int64) (*model.NegotiationContext, error) {
	if err := s.db.fail("Negotiations.GetContextForUpdate"); err != nil {
		return nil, err
	}
	return s.GetContext(ctx, id)
}

func (s memNegotiations) RecordCheckoutStarted(_ context.Context, id int64, sessionID string) (bool, error) {
	if err := s.db.fail("Negotiations.RecordCheckoutStarted"); err != nil {
		return false, err
	}
	n, ok := s.db.negotiations[id]
	if !ok || n.Status != model.NegotiationStatusPending {
		return false, nil
	}
	at := s.db.now()
	n.LastCheckoutSessionID = &sessionID
	n.CheckoutStartedAt = &at
	s.db.negotiations[id] = n
	return true, nil
}

func (s memNegotiations) Transition(_ context.Context, id int64, to model.NegotiationStatus) (bool, error) {
	if err := s.db.fail("Negotiations.Transition"); err != nil {
		return false, err
	}
	n, ok := s.db.negotiations[id]
	if !ok || !n.Status.CanTransition(to) {
		return false, nil
	}
	n.Status = to
	n.UpdatedAt = s.db.now()
	s.db.negotiations[id] = n
	return true, nil
}

func (s memNegotiations) ListExpiredPending(ctx context.Context, createdBefore, checkoutBefore time.Time, limit int32) ([]model.NegotiationContext, error) {
	var out []model.NegotiationContext
	for id, n := range s.db.negotiations {
		if n.Status != model.NegotiationStatusPending || !n.CreatedAt.Before(createdBefore) {
			continue
		}
		if n.CheckoutStartedAt != nil && !n.CheckoutStartedAt.Before(checkoutBefore) {
			continue
		}
		nc, _ := s.GetContext(ctx, id)
		out = append(out, *nc)
		if len(out) == int(limit) {
			break
		}
	}
	return out, nil
}

type memPurchases struct{ db *memDB }

func (s memPurchases) Create(_ context.Context, p *model.Purchase) (bool, error) {
	if err := s.db.fail("Purchases.Create"); err != nil {
		return false, err
	}
	if p.NegotiationID != nil {
		for _, existing := range s.db.purchases {
			if existing.NegotiationID != nil && *existing.NegotiationID == *p.NegotiationID {
				return false, nil
			}
		}
	}
	p.CreatedAt = s.db.now()
	s.db.purchases = append(s.db.purchases, *p)
	return true, nil
}

func (s memPurchases) QuestionPurchaseExists(_ context.Context, questionID, payerID int64) (bool, error) {
	for _, p := range s.db.purchases {
		if p.QuestionID == questionID && p.PayerID == payerID && p.NegotiationID == nil {
			return true, nil
		}
	}
	return false, nil
}

func (s memPurchases) ListByPayer(_ context.Context, payerID int64, limit, _ int32) ([]model.Purchase, error) {
	out := []model.Purchase{}
	for _, p := range s.db.purchases {
		if p.PayerID == payerID {
			out = append(out, p)
		}
	}
	if len(out) > int(limit) {
		out = out[:limit]
	}
	return out, nil
}

type memPaymentEvents struct{ db *memDB }

func (s memPaymentEvents) Record(_ context.Context, provider, eventID, _ string) (bool, error) {
	if err := s.db.fail("PaymentEvents.Record"); err != nil {
		return false, err
	}
	key := provider + "/" + eventID
	if s.db.paymentEvents[key] {
		return false, nil
	}
	s.db.paymentEvents[key] = true
	return true, nil
}

type memNotifications struct{ db *memDB }

func (s memNotifications) Create(_ context.Context, n *model.Notification) (bool, error) {
	if err := s.db.fail("Notifications.Create"); err != nil {
		return false, err
	}
	if n.DedupeKey != nil {
		for _, existing := range s.db.notifications {
			if existing.DedupeKey != nil && *existing.DedupeKey == *n.DedupeKey {
				return false, nil
			}
		}
	}
	n.CreatedAt = s.db.now()
	s.db.notifications[n.ID] = *n
	return true, nil
}

func (s memNotifications) GetByID(_ context.Context, id int64) (*model.Notification, error) {
	n, ok := s.db.notifications[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &n, nil
}

func (s memNotifications) ListByRecipient(_ context.Context, recipientID int64, limit, _ int32) ([]model.Notification, error) {
	out := s.db.notificationsFor(recipientID)
	if len(out) > int(limit) {
		out = out[:limit]
	}
	return out, nil
}

func (s memNotifications) MarkRead(_ context.Context, id, recipientID int64) (bool, error) {
	n, ok := s.db.notifications[id]
	if !ok || n.RecipientID != recipientID || n.ReadAt != nil {
		return false, nil
	}
	at := s.db.now()
	n.ReadAt = &at
	s.db.notifications[id] = n
	return true, nil
}

type memAnswerReads struct{ db *memDB }

func (s memAnswerReads) MarkRead(_ context.Context, userID, answerID int64) (bool, error) {
	if err := s.db.fail("AnswerReads.MarkRead"); err != nil {
		return false, err
	}
	key := [2]int64{userID, answerID}
	if s.db.reads[key] {
		return false, nil
	}
	s.db.reads[key] = true
	return true, nil
}

func (s memAnswerReads) MarkQuestionRead(_ context.Context, userID, questionID int64) (int64, error) {
	if err := s.db.fail("AnswerReads.MarkQuestionRead"); err != nil {
		return 0, err
	}
	var n int64
	for id, a := range s.db.answers {
		if a.QuestionID != questionID {
			continue
		}
		key := [2]int64{userID, id}
		if !s.db.reads[key] {
			s.db.reads[key] = true
			n++
		}
	}
	return n, nil
}

func (s memAnswerReads) ListReadAnswerIDs(_ context.Context, userID, questionID int64) ([]int64, error) {
	var out []int64
	for key := range s.db.reads {
		if key[0] == userID && s.db.answers[key[1]].QuestionID == questionID {
			out = append(out, key[1])
		}
	}
	return out, nil
}

type memComments struct{ db *memDB }

func (s memComments) Create(_ context.Context, c *model.Comment) error {
	c.CreatedAt = s.db.now()
	c.AuthorName = s.db.users[c.AuthorID].Name
	s.db.comments = append(s.db.comments, *c)
	return nil
}

func (s memComments) ListByAnswer(_ context.Context, answerID int64) ([]model.Comment, error) {
	out := []model.Comment{}
	for _, c := range s.db.comments {
		if c.AnswerID == answerID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memLikes struct{ db *memDB }

func (s memLikes) Like(_ context.Context, userID, answerID int64) (bool, error) {
	key := [2]int64{userID, answerID}
	if s.db.likes[key] {
		return false, nil
	}
	s.db.likes[key] = true
	return true, nil
}

func (s memLikes) Unlike(_ context.Context, userID, answerID int64) (bool, error) {
	key := [2]int64{userID, answerID}
	if !s.db.likes[key] {
		return false, nil
	}
	delete(s.db.likes, key)
	return true, nil
}

func (s memLikes) Count(_ context.Context, answerID int64) (int32, error) {
	var n int32
	for key := range s.db.likes {
		if key[1] == answerID {
			n++
		}
	}
	return n, nil
}

func (s memLikes) ListLikedAnswerIDs(_ context.Context, userID, questionID int64) ([]int64, error) {
	var out []int64
	for key := range s.db.likes {
		if key[0] == userID && s.db.answers[key[1]].QuestionID == questionID {
			out = append(out, key[1])
		}
	}
	return out, nil
}

type memUnread struct{ db *memDB }

func (s memUnread) Get(_ context.Context, userID int64) (model.UnreadCounts, error) {
	return s.db.unread[userID], nil
}

func (s memUnread) AddAnswers(_ context.Context, userID int64, delta int32) error {
	if err := s.db.fail("UnreadCounters.AddAnswers"); err != nil {
		return err
	}
	c := s.db.unread[userID]
	c.UnreadAnswers = max(0, c.UnreadAnswers+delta)
	s.db.unread[userID] = c
	return nil
}

func (s memUnread) AddNotifications(_ context.Context, userID int64, delta int32) error {
	if err := s.db.fail("UnreadCounters.AddNotifications"); err != nil {
		return err
	}
	c := s.db.unread[userID]
	c.UnreadNotifications = max(0, c.UnreadNotifications+delta)
	s.db.unread[userID] = c
	return nil
}

type mockGateway struct {
	createFn func(ctx context.Context, req payment.CheckoutRequest) (payment.Session, error)
	parseFn  func(payload []byte, signature string) (payment.Event, error)
	requests []payment.CheckoutRequest
}

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (payment.Session, error) {
	m.requests = append(m.requests, req)
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return payment.Session{ID: "cs_test_1", URL: "https://checkout.example.com/cs_test_1"}, nil
}

func (m *mockGateway) ParseWebhook(payload []byte, signature string) (payment.Event, error) {
	if m.parseFn != nil {
		return m.parseFn(payload, signature)
	}
	return payment.Event{}, payment.ErrSignatureInvalid
}

func (m *mockGateway) Provider() string {
	return "stripe"
}

type mockPublisher struct {
	publishFn func(ctx context.Context, evt queue.Event) error
	events    []queue.Event
}

func (m *mockPublisher) Publish(ctx context.Context, evt queue.Event) error {
	m.events = append(m.events, evt)
	if m.publishFn != nil {
		return m.publishFn(ctx, evt)
	}
	return nil
}

type mockBlobStore struct {
	putFn func(ctx context.Context, key string, data []byte, contentType string) (blob.Object, error)
	puts  []string
}

func (m *mockBlobStore) Put(ctx context.Context, key string, r io.Reader, _ int64, contentType string) (blob.Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return blob.Object{}, err
	}
	m.puts = append(m.puts, key)
	if m.putFn != nil {
		return m.putFn(ctx, key, data, contentType)
	}
	return blob.Object{Key: key, URL: "https://cdn.example.com/" + key}, nil
}

func (m *mockBlobStore) Delete(_ context.Context, _ string) error {
	return nil
}

// pngUpload returns a small valid PNG as an upload.
func pngUpload(name string) service.Upload {
	return service.Upload{FileName: name, Reader: bytes.NewReader(tinyPNG())}
}
