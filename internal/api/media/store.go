package media

import (
	"context"
	"errors"

	"media-access/internal/domain/access"
	"media-access/internal/domain/content"

	"github.com/samber/oops"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("post not found")

const (
	defaultPerPage = 40
	maxPerPage     = 100
	maxPageNumber  = 10000
)

type Page struct {
	Number int
	Size   int
}

func (p Page) normalized() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Number > maxPageNumber {
		p.Number = maxPageNumber
	}
	if p.Size < 1 {
		p.Size = defaultPerPage
	}
	if p.Size > maxPerPage {
		p.Size = maxPerPage
	}
	return p
}

// Store reads and writes posts. List and Query only return attachments.
type Store interface {
	Find(ctx context.Context, id uint) (content.Post, error)
	List(ctx context.Context, filter access.ListingFilter, page Page) ([]content.Post, int64, error)
	Query(ctx context.Context, args access.QueryArgs) ([]content.Post, error)
	Create(ctx context.Context, post *content.Post) error
	Update(ctx context.Context, post *content.Post) error
	Delete(ctx context.Context, id uint) error
}

type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Find(ctx context.Context, id uint) (content.Post, error) {
	var post content.Post
	err := s.db.WithContext(ctx).First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return content.Post{}, oops.In("media_store").Code("MEDIA_NOT_FOUND").With("id", id).Wrap(ErrNotFound)
	}
	if err != nil {
		return content.Post{}, oops.In("media_store").Code("MEDIA_FIND_FAILED").With("id", id).Wrap(err)
	}
	return post, nil
}

func (s *GormStore) List(ctx context.Context, filter access.ListingFilter, page Page) ([]content.Post, int64, error) {
	page = page.normalized()

	q := attachmentsQuery(s.db.WithContext(ctx)).
		Scopes(listingScope(filter)).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, oops.In("media_store").Code("MEDIA_LIST_FAILED").Wrap(err)
	}

	var posts []content.Post
	err := q.Order("created_at DESC").
		Offset((page.Number - 1) * page.Size).
		Limit(page.Size).
		Find(&posts).Error
	if err != nil {
		return nil, 0, oops.In("media_store").Code("MEDIA_LIST_FAILED").Wrap(err)
	}
	return posts, total, nil
}

func (s *GormStore) Query(ctx context.Context, args access.QueryArgs) ([]content.Post, error) {
	var posts []content.Post
	err := attachmentsQuery(s.db.WithContext(ctx)).
		Scopes(queryArgsScope(args)).
		Find(&posts).Error
	if err != nil {
		return nil, oops.In("media_store").Code("MEDIA_QUERY_FAILED").Wrap(err)
	}
	return posts, nil
}

func (s *GormStore) Create(ctx context.Context, post *content.Post) error {
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return oops.In("media_store").Code("MEDIA_CREATE_FAILED").With("author_id", post.AuthorID).Wrap(err)
	}
	return nil
}

func (s *GormStore) Update(ctx context.Context, post *content.Post) error {
	err := s.db.WithContext(ctx).
		Model(post).
		Select("Title", "Caption").
		Updates(post).Error
	if err != nil {
		return oops.In("media_store").Code("MEDIA_UPDATE_FAILED").With("id", post.ID).Wrap(err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&content.Post{}, id)
	if res.Error != nil {
		return oops.In("media_store").Code("MEDIA_DELETE_FAILED").With("id", id).Wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return oops.In("media_store").Code("MEDIA_NOT_FOUND").With("id", id).Wrap(ErrNotFound)
	}
	return nil
}
