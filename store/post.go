package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"miniblog/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListOptions selects one page of posts. Search, when set, keeps the posts
// whose title or content contains it, ignoring case.
type ListOptions struct {
	Page   int
	Limit  int
	Search string
}

type Page struct {
	Posts      []domain.Post
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

type PostStore struct {
	mu     sync.RWMutex
	posts  map[int64]domain.Post
	nextID int64
	now    func() time.Time
}

func NewPostStore() *PostStore {
	return &PostStore{
		posts:  make(map[int64]domain.Post),
		nextID: 1,
		now:    time.Now,
	}
}

func (s *PostStore) CreatePost(title, content string, userID int64) domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	p := domain.Post{
		ID:        s.nextID,
		Title:     title,
		Content:   content,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.posts[p.ID] = p
	return p
}

// GetAllPosts filters, sorts newest first and slices one page. A page past
// the end yields no posts, not an error.
func (s *PostStore) GetAllPosts(opts ListOptions) Page {
	if opts.Page < 1 {
		opts.Page = DefaultPage
	}
	if opts.Limit < 1 {
		opts.Limit = DefaultLimit
	}
	term := strings.ToLower(opts.Search)

	s.mu.RLock()
	matched := make([]domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if term == "" ||
			strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Content), term) {
			matched = append(matched, p)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	totalPages := total / opts.Limit
	if total%opts.Limit != 0 {
		totalPages++
	}

	page := Page{
		Posts:      []domain.Post{},
		Page:       opts.Page,
		Limit:      opts.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
	if opts.Page > totalPages {
		return page
	}
	start := (opts.Page - 1) * opts.Limit
	end := total
	if opts.Limit < total-start {
		end = start + opts.Limit
	}
	page.Posts = matched[start:end]
	return page
}

func (s *PostStore) GetPostByID(id int64) (domain.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	return p, ok
}

// UpdatePost applies the non-nil fields of patch and refreshes UpdatedAt.
func (s *PostStore) UpdatePost(id int64, patch domain.PostPatch) (domain.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return domain.Post{}, false
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if now := s.now().UTC(); now.After(p.UpdatedAt) {
		p.UpdatedAt = now
	}
	s.posts[id] = p
	return p, true
}

func (s *PostStore) DeletePost(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return false
	}
	delete(s.posts, id)
	return true
}

func (s *PostStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.posts)
}
