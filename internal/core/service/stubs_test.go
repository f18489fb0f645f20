package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/stackit-hq/stackit-api/internal/core/domain"
	"github.com/stackit-hq/stackit-api/internal/core/ports"
)

// In-memory stand-ins for the repository and store ports. Function fields
// override behaviour per test; nil fields fall back to the backing maps.

type stubQuestionRepo struct {
	mu        sync.Mutex
	seq       int
	questions map[string]*domain.Question

	createFn  func(ctx context.Context, q *domain.Question) (string, error)
	listFn    func(ctx context.Context) ([]*domain.Question, error)
	incViewsN map[string]int
}

func newStubQuestionRepo() *stubQuestionRepo {
	return &stubQuestionRepo{
		questions: make(map[string]*domain.Question),
		incViewsN: make(map[string]int),
	}
}

func (r *stubQuestionRepo) Create(ctx context.Context, q *domain.Question) (string, error) {
	if r.createFn != nil {
		return r.createFn(ctx, q)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	id := "q" + strconv.Itoa(r.seq)
	cp := *q
	cp.ID = id
	r.questions[id] = &cp
	return id, nil
}

func (r *stubQuestionRepo) FindByID(ctx context.Context, id string) (*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.questions[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *stubQuestionRepo) List(ctx context.Context) ([]*domain.Question, error) {
	if r.listFn != nil {
		return r.listFn(ctx)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Question, 0, len(r.questions))
	for _, q := range r.questions {
		cp := *q
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubQuestionRepo) IncrementVotes(ctx context.Context, id string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.questions[id]
	if !ok {
		return 0, domain.ErrQuestionNotFound
	}
	q.Votes += delta
	return q.Votes, nil
}

func (r *stubQuestionRepo) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[id]; !ok {
		return domain.ErrQuestionNotFound
	}
	r.incViewsN[id]++
	r.questions[id].Views++
	return nil
}

type stubAnswerRepo struct {
	mu      sync.Mutex
	seq     int
	answers map[string]*domain.Answer
}

func newStubAnswerRepo() *stubAnswerRepo {
	return &stubAnswerRepo{answers: make(map[string]*domain.Answer)}
}

func (r *stubAnswerRepo) Create(ctx context.Context, a *domain.Answer) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	id := "a" + strconv.Itoa(r.seq)
	cp := *a
	cp.ID = id
	r.answers[id] = &cp
	return id, nil
}

func (r *stubAnswerRepo) FindByID(ctx context.Context, id string) (*domain.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.answers[id]
	if !ok {
		return nil, domain.ErrAnswerNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *stubAnswerRepo) ListByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Answer, 0)
	for _, a := range r.answers {
		if a.QuestionID == questionID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubAnswerRepo) CountsByQuestion(ctx context.Context) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int)
	for _, a := range r.answers {
		counts[a.QuestionID]++
	}
	return counts, nil
}

func (r *stubAnswerRepo) IncrementVotes(ctx context.Context, id string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.answers[id]
	if !ok {
		return 0, domain.ErrAnswerNotFound
	}
	a.Votes += delta
	return a.Votes, nil
}

func (r *stubAnswerRepo) ClearAccepted(ctx context.Context, questionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.answers {
		if a.QuestionID == questionID {
			a.IsAccepted = false
		}
	}
	return nil
}

func (r *stubAnswerRepo) MarkAccepted(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.answers[id]
	if !ok {
		return domain.ErrAnswerNotFound
	}
	a.IsAccepted = true
	return nil
}

type stubCommentRepo struct {
	mu       sync.Mutex
	seq      int
	comments map[string]*domain.Comment
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (r *stubCommentRepo) Create(ctx context.Context, c *domain.Comment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	id := "c" + strconv.Itoa(r.seq)
	cp := *c
	cp.ID = id
	r.comments[id] = &cp
	return id, nil
}

func (r *stubCommentRepo) ListByAnswer(ctx context.Context, answerID string) ([]*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Comment, 0)
	for _, c := range r.comments {
		if c.AnswerID == answerID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

type stubTagRepo struct {
	mu   sync.Mutex
	seq  int
	tags map[string]*domain.Tag // keyed by name

	createFn func(ctx context.Context, name string) (*domain.Tag, error)
	creates  int
}

func newStubTagRepo(names ...string) *stubTagRepo {
	r := &stubTagRepo{tags: make(map[string]*domain.Tag)}
	for _, n := range names {
		r.seq++
		r.tags[n] = &domain.Tag{ID: "t" + strconv.Itoa(r.seq), Name: n}
	}
	return r
}

func (r *stubTagRepo) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tags[name]
	if !ok {
		return nil, domain.ErrTagNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *stubTagRepo) Create(ctx context.Context, name string) (*domain.Tag, error) {
	if r.createFn != nil {
		return r.createFn(ctx, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tags[name]; ok {
		return nil, domain.ErrTagExists
	}
	r.seq++
	r.creates++
	t := &domain.Tag{ID: "t" + strconv.Itoa(r.seq), Name: name}
	r.tags[name] = t
	cp := *t
	return &cp, nil
}

func (r *stubTagRepo) NamesByID(ctx context.Context, ids []string) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lookup := make(map[string]string)
	for _, t := range r.tags {
		for _, id := range ids {
			if t.ID == id {
				lookup[id] = t.Name
			}
		}
	}
	return lookup, nil
}

func (r *stubTagRepo) List(ctx context.Context) ([]domain.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Tag, 0, len(r.tags))
	for _, t := range r.tags {
		out = append(out, *t)
	}
	return out, nil
}

type stubStorage struct {
	mu       sync.Mutex
	uploads  []string
	uploadFn func(ctx context.Context, kind ports.UploadKind, f ports.UploadFile) (string, error)
}

func (s *stubStorage) Upload(ctx context.Context, kind ports.UploadKind, f ports.UploadFile) (string, error) {
	if s.uploadFn != nil {
		return s.uploadFn(ctx, kind, f)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	url := "https://cdn.example.com/" + string(kind) + "/" + f.Name
	s.uploads = append(s.uploads, url)
	return url, nil
}

type stubUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User // keyed by id

	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	cp := *user
	cp.ID = "u" + strconv.Itoa(r.seq)
	r.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*ports.Profile
	putErr   error
	puts     int
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*ports.Profile)}
}

func (s *stubSessionStore) Put(ctx context.Context, userID string, p *ports.Profile) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.sessions[userID] = &cp
	s.puts++
	return nil
}

func (s *stubSessionStore) Get(ctx context.Context, userID string) (*ports.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.sessions[userID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubSessionStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

type stubResetTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newStubResetTokenStore() *stubResetTokenStore {
	return &stubResetTokenStore{tokens: make(map[string]string)}
}

func (s *stubResetTokenStore) Store(ctx context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = userID
	return nil
}

func (s *stubResetTokenStore) Consume(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	delete(s.tokens, token)
	return uid, nil
}

type stubViewRecorder struct {
	mu  sync.Mutex
	ids []string
}

func (r *stubViewRecorder) Record(questionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, questionID)
}
