package service

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"glamstore/internal/identity"
	"glamstore/internal/model"
	"glamstore/internal/repository"
	"glamstore/internal/ws"
	"glamstore/pkg/pinata"
)

func nopLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// memStore is a mutable in-memory repository.Store for service tests.
type memStore struct {
	mu         sync.Mutex
	seq        int
	products   []model.Product
	categories []model.Category
	users      []model.User
	orders     []model.Order
	reviews    []model.Review
	settings   map[string]model.Setting

	// failOrders makes every order read fail.
	failOrders error
}

func newMemStore() *memStore {
	return &memStore{settings: map[string]model.Setting{}}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *memStore) Name() string                              { return "memory" }
func (s *memStore) Products() repository.ProductRepository    { return memProducts{s} }
func (s *memStore) Orders() repository.OrderRepository        { return memOrders{s} }
func (s *memStore) Users() repository.UserRepository          { return memUsers{s} }
func (s *memStore) Categories() repository.CategoryRepository { return memCategories{s} }
func (s *memStore) Reviews() repository.ReviewRepository      { return memReviews{s} }
func (s *memStore) Settings() repository.SettingsRepository   { return memSettings{s} }
func (s *memStore) Ping(context.Context) error                { return nil }
func (s *memStore) Close(context.Context) error               { return nil }

type memProducts struct{ s *memStore }

func (r memProducts) FindAll(context.Context) ([]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]model.Product(nil), r.s.products...), nil
}

func (r memProducts) FindByID(_ context.Context, id string) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memProducts) Create(_ context.Context, p *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == "" {
		p.ID = r.s.nextID("p")
	}
	r.s.products = append(r.s.products, *p)
	return nil
}

func (r memProducts) Update(_ context.Context, p *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.products {
		if r.s.products[i].ID == p.ID {
			r.s.products[i] = *p
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r memProducts) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.products {
		if r.s.products[i].ID == id {
			r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memCategories struct{ s *memStore }

func (r memCategories) FindAll(context.Context) ([]model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]model.Category(nil), r.s.categories...), nil
}

func (r memCategories) find(match func(model.Category) bool) (*model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if match(c) {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memCategories) FindByID(_ context.Context, id string) (*model.Category, error) {
	return r.find(func(c model.Category) bool { return c.ID == id })
}

func (r memCategories) FindBySlug(_ context.Context, slug string) (*model.Category, error) {
	return r.find(func(c model.Category) bool { return c.Slug == slug })
}

func (r memCategories) Create(_ context.Context, c *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.categories {
		if existing.Slug == c.Slug {
			return repository.ErrConflict
		}
	}
	c.ID = r.s.nextID("c")
	r.s.categories = append(r.s.categories, *c)
	return nil
}

func (r memCategories) Update(_ context.Context, c *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.categories {
		if r.s.categories[i].ID == c.ID {
			r.s.categories[i] = *c
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r memCategories) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.categories {
		if r.s.categories[i].ID == id {
			r.s.categories = append(r.s.categories[:i], r.s.categories[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memUsers struct{ s *memStore }

func (memUsers) IsLocalID(id string) bool {
	return id != "" && !identity.IsExternal(id)
}

func (r memUsers) filter(match func(model.User) bool) []model.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.User
	for _, u := range r.s.users {
		if match(u) {
			out = append(out, u)
		}
	}
	return out
}

func (r memUsers) first(match func(model.User) bool) (*model.User, error) {
	found := r.filter(match)
	if len(found) == 0 {
		return nil, repository.ErrNotFound
	}
	return &found[0], nil
}

func (r memUsers) FindAll(context.Context) ([]model.User, error) {
	return r.filter(func(model.User) bool { return true }), nil
}

func (r memUsers) FindByID(_ context.Context, id string) (*model.User, error) {
	return r.first(func(u model.User) bool { return u.ID == id })
}

func (r memUsers) FindByIDs(_ context.Context, ids []string) ([]model.User, error) {
	return r.filter(func(u model.User) bool { return contains(ids, u.ID) }), nil
}

func (r memUsers) FindByExternalID(_ context.Context, externalID string) ([]model.User, error) {
	return r.filter(func(u model.User) bool { return u.ExternalID != "" && u.ExternalID == externalID }), nil
}

func (r memUsers) FindAllByExternalIDs(_ context.Context, externalIDs []string) ([]model.User, error) {
	return r.filter(func(u model.User) bool { return u.ExternalID != "" && contains(externalIDs, u.ExternalID) }), nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return r.first(func(u model.User) bool { return u.Email == email })
}

func (r memUsers) Create(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repository.ErrConflict
		}
	}
	if u.ID == "" {
		u.ID = r.s.nextID("u")
	}
	r.s.users = append(r.s.users, *u)
	return nil
}

func (r memUsers) Update(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if r.s.users[i].ID == u.ID {
			r.s.users[i] = *u
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if r.s.users[i].ID == id {
			r.s.users[i].PasswordHash = hash
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r memUsers) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if r.s.users[i].ID == id {
			r.s.users = append(r.s.users[:i], r.s.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memOrders struct{ s *memStore }

func (r memOrders) FindAll(context.Context) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failOrders != nil {
		return nil, r.s.failOrders
	}
	return append([]model.Order(nil), r.s.orders...), nil
}

func (r memOrders) FindByID(_ context.Context, id string) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memOrders) FindByUserID(_ context.Context, userID string) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failOrders != nil {
		return nil, r.s.failOrders
	}
	var out []model.Order
	for _, o := range r.s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r memOrders) Create(_ context.Context, o *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o.ID = r.s.nextID("o")
	r.s.orders = append(r.s.orders, *o)
	return nil
}

func (r memOrders) UpdateStatus(_ context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.orders {
		if r.s.orders[i].ID == id {
			r.s.orders[i].Status = status
			o := r.s.orders[i]
			return &o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memOrders) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.orders {
		if r.s.orders[i].ID == id {
			r.s.orders = append(r.s.orders[:i], r.s.orders[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memReviews struct{ s *memStore }

func (r memReviews) FindByProduct(_ context.Context, productID string) ([]model.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Review
	for _, rv := range r.s.reviews {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r memReviews) Upsert(_ context.Context, review *model.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.reviews {
		existing := &r.s.reviews[i]
		if existing.ProductID == review.ProductID && existing.UserID == review.UserID {
			existing.Rating = review.Rating
			existing.Comment = review.Comment
			existing.UserName = review.UserName
			*review = *existing
			return nil
		}
	}
	review.ID = r.s.nextID("r")
	r.s.reviews = append(r.s.reviews, *review)
	return nil
}

type memSettings struct{ s *memStore }

func (r memSettings) Get(_ context.Context, key string) (*model.Setting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	setting, ok := r.s.settings[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &setting, nil
}

func (r memSettings) Put(_ context.Context, setting *model.Setting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.settings[setting.Key] = *setting
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// recorder collects published events.
type recorder struct {
	mu     sync.Mutex
	events []ws.Event
}

func (r *recorder) Publish(e ws.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

// fakeImages is an ImageStore that records unpins.
type fakeImages struct {
	uploaded  []string
	unpinned  []string
	unpinErr  error
	uploadErr error
}

func (f *fakeImages) Upload(_ context.Context, name, contentType string, content io.Reader, groupID string) (*pinata.File, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	data, _ := io.ReadAll(content)
	f.uploaded = append(f.uploaded, contentType+":"+string(data))
	return &pinata.File{ID: "f1", Name: name, CID: "bafy" + name, Size: int64(len(data)), MimeType: contentType, GroupID: groupID}, nil
}

func (f *fakeImages) Unpin(_ context.Context, cid string) error {
	f.unpinned = append(f.unpinned, cid)
	return f.unpinErr
}

func (f *fakeImages) GatewayURL(cid string) string {
	return pinata.GatewayURL("gateway.test", cid)
}
