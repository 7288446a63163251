package media

import (
	"context"
	"sort"
	"sync"

	"media-access/internal/domain/access"
	"media-access/internal/domain/content"
)

// memStore is an in-memory Store. It records the last filter and args it was
// given so tests can assert on what the handler asked for.
type memStore struct {
	mu     sync.Mutex
	posts  map[uint]content.Post
	nextID uint

	lastFilter access.ListingFilter
	lastArgs   access.QueryArgs
}

func newMemStore(posts ...content.Post) *memStore {
	s := &memStore{posts: map[uint]content.Post{}, nextID: 1}
	for _, p := range posts {
		s.posts[p.ID] = p
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	return s
}

func (s *memStore) Find(_ context.Context, id uint) (content.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return content.Post{}, ErrNotFound
	}
	return p, nil
}

func (s *memStore) attachments(authors []uint) []content.Post {
	allowed := map[uint]bool{}
	for _, a := range authors {
		allowed[a] = true
	}
	var out []content.Post
	for _, p := range s.posts {
		if !p.IsAttachment() {
			continue
		}
		if len(authors) > 0 && !allowed[p.AuthorID] {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memStore) List(_ context.Context, filter access.ListingFilter, _ Page) ([]content.Post, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilter = filter
	out := s.attachments(filter.AuthorIDs)
	return out, int64(len(out)), nil
}

func (s *memStore) Query(_ context.Context, args access.QueryArgs) ([]content.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastArgs = args
	return s.attachments(uintList(args[access.QueryKeyAuthorIn])), nil
}

func (s *memStore) Create(_ context.Context, post *content.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.ID = s.nextID
	s.nextID++
	s.posts[post.ID] = *post
	return nil
}

func (s *memStore) Update(_ context.Context, post *content.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[post.ID]; !ok {
		return ErrNotFound
	}
	s.posts[post.ID] = *post
	return nil
}

func (s *memStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return ErrNotFound
	}
	delete(s.posts, id)
	return nil
}
