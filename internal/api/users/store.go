package users

import (
	"context"
	"errors"

	"media-access/internal/domain/access"
	"media-access/internal/domain/users"

	"github.com/samber/oops"
	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("email already registered")
)

type Store interface {
	FindByID(ctx context.Context, id uint) (users.User, error)
	FindByEmail(ctx context.Context, email string) (users.User, error)
	FindByGoogleSub(ctx context.Context, sub string) (users.User, error)
	Create(ctx context.Context, u *users.User) error
	LinkGoogleSub(ctx context.Context, id uint, sub string) error
}

type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByID(ctx context.Context, id uint) (users.User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *GormStore) FindByEmail(ctx context.Context, email string) (users.User, error) {
	return s.first(ctx, "email = ?", email)
}

func (s *GormStore) FindByGoogleSub(ctx context.Context, sub string) (users.User, error) {
	return s.first(ctx, "google_sub = ?", sub)
}

func (s *GormStore) first(ctx context.Context, query string, arg any) (users.User, error) {
	var u users.User
	err := s.db.WithContext(ctx).Where(query, arg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return users.User{}, oops.In("user_store").Code("USER_NOT_FOUND").With("lookup", arg).Wrap(ErrNotFound)
	}
	if err != nil {
		return users.User{}, oops.In("user_store").Code("USER_FIND_FAILED").Wrap(err)
	}
	return u, nil
}

func (s *GormStore) Create(ctx context.Context, u *users.User) error {
	err := s.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return oops.In("user_store").Code("USER_EMAIL_EXISTS").With("email", u.Email).Wrap(ErrEmailExists)
	}
	if err != nil {
		return oops.In("user_store").Code("USER_CREATE_FAILED").Wrap(err)
	}
	return nil
}

func (s *GormStore) LinkGoogleSub(ctx context.Context, id uint, sub string) error {
	res := s.db.WithContext(ctx).
		Model(&users.User{}).
		Where("id = ? AND google_sub IS NULL", id).
		Update("google_sub", sub)
	if res.Error != nil {
		return oops.In("user_store").Code("USER_LINK_FAILED").With("id", id).Wrap(res.Error)
	}
	return nil
}

// PrincipalResolver adapts a Store to the auth middleware's principal lookup.
func PrincipalResolver(s Store) func(ctx context.Context, id uint) (access.Principal, error) {
	return func(ctx context.Context, id uint) (access.Principal, error) {
		u, err := s.FindByID(ctx, id)
		if err != nil {
			return access.Principal{}, err
		}
		return access.PrincipalFor(u), nil
	}
}
