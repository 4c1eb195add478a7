package server

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"bookreview/internal/book"
	"bookreview/internal/review"
	"bookreview/internal/user"
)

// memStore backs every repository with maps so the router can be driven
// end to end without a database.
type memStore struct {
	mu      sync.Mutex
	seq     int
	users   map[string]user.User
	books   map[string]book.Book
	reviews map[string]review.Review
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[string]user.User{},
		books:   map[string]book.Book{},
		reviews: map[string]review.Review{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

// now spaces records apart so newest-first ordering is deterministic.
func (m *memStore) now() time.Time {
	return time.Date(2024, 1, 1, 0, 0, m.seq, 0, time.UTC)
}

type memUsers struct{ *memStore }

func (m memUsers) Create(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	u.ID = m.nextID("user")
	u.CreatedAt = m.now()
	m.users[u.ID] = *u
	return nil
}

func (m memUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m memUsers) GetByID(_ context.Context, id string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

type memBooks struct{ *memStore }

func (m memBooks) Create(_ context.Context, b *book.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = m.nextID("book")
	b.CreatedAt = m.now()
	m.books[b.ID] = *b
	return nil
}

func (m memBooks) GetByID(_ context.Context, id string) (book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return book.Book{}, book.ErrNotFound
	}
	return b, nil
}

func (m memBooks) Exists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.books[id]
	return ok, nil
}

func (m memBooks) matching(f book.Filter) []book.Book {
	contains := func(s, sub string) bool {
		return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
	}
	var out []book.Book
	for _, b := range m.books {
		if f.Author != "" && !contains(b.Author, f.Author) {
			continue
		}
		if f.Genre != "" && (b.Genre == nil || !contains(*b.Genre, f.Genre)) {
			continue
		}
		if f.Query != "" {
			title, author := contains(b.Title, f.Query), contains(b.Author, f.Query)
			switch f.Field {
			case book.FieldTitle:
				if !title {
					continue
				}
			case book.FieldAuthor:
				if !author {
					continue
				}
			default:
				if !title && !author {
					continue
				}
			}
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m memBooks) List(_ context.Context, f book.Filter, limit, offset int) ([]book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return window(m.matching(f), limit, offset), nil
}

func (m memBooks) Count(_ context.Context, f book.Filter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.matching(f)), nil
}

type memReviews struct{ *memStore }

func (m memReviews) Create(_ context.Context, r *review.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.reviews {
		if existing.BookID == r.BookID && existing.UserID == r.UserID {
			return review.ErrDuplicate
		}
	}
	r.ID = m.nextID("review")
	r.CreatedAt = m.now()
	r.UpdatedAt = r.CreatedAt
	r.User = review.Reviewer{ID: r.UserID, Name: m.users[r.UserID].Name}
	m.reviews[r.ID] = *r
	return nil
}

func (m memReviews) GetByID(_ context.Context, id string) (review.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return review.Review{}, review.ErrNotFound
	}
	return r, nil
}

func (m memReviews) ExistsForUser(_ context.Context, bookID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.BookID == bookID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m memReviews) Update(_ context.Context, id string, in review.UpdateInput) (review.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return review.Review{}, review.ErrNotFound
	}
	if in.Content != nil {
		r.Content = *in.Content
	}
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
	r.UpdatedAt = m.now().Add(time.Minute)
	m.reviews[id] = r
	return r, nil
}

func (m memReviews) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id]; !ok {
		return review.ErrNotFound
	}
	delete(m.reviews, id)
	return nil
}

func (m memReviews) byBook(bookID string) []review.Review {
	var out []review.Review
	for _, r := range m.reviews {
		if r.BookID == bookID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m memReviews) ListByBook(_ context.Context, bookID string, limit, offset int) ([]review.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return window(m.byBook(bookID), limit, offset), nil
}

func (m memReviews) StatsByBook(_ context.Context, bookID string) (review.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.byBook(bookID)
	if len(all) == 0 {
		return review.Stats{}, nil
	}
	sum := 0
	for _, r := range all {
		sum += r.Rating
	}
	return review.Stats{AverageRating: float64(sum) / float64(len(all)), TotalReviews: len(all)}, nil
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
