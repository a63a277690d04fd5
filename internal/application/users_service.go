package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-classifieds-api/internal/domain/entity"
	repo "github.com/oksasatya/go-classifieds-api/internal/domain/repository"
	"github.com/oksasatya/go-classifieds-api/internal/infrastructure/imagestore"
	"github.com/oksasatya/go-classifieds-api/pkg/helpers"
)

// UserView is the profile view of an account.
type UserView struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Image     string `json:"image"`
}

// UpdateUserInput carries the mutable profile fields.
type UpdateUserInput struct {
	FirstName string `json:"firstName" binding:"required,min=2,max=16"`
	LastName  string `json:"lastName" binding:"required,min=2,max=16"`
	Phone     string `json:"phone" binding:"required"`
}

// UsersService owns account persistence, the password change flow and
// the avatar attachment lifecycle. Credentials arrive already hashed
// from the auth layer; this service never sees a plaintext password
// except to verify or re-hash one.
type UsersService struct {
	Users  repo.UserRepository
	Ads    repo.AdRepository
	Images *imagestore.Store
	Logger *logrus.Logger
}

func NewUsersService(users repo.UserRepository, ads repo.AdRepository, images *imagestore.Store, logger *logrus.Logger) *UsersService {
	return &UsersService{Users: users, Ads: ads, Images: images, Logger: logger}
}

func userView(u *entity.User) *UserView {
	return &UserView{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
		Image:     u.Image,
	}
}

// Create persists a fully formed account.
func (s *UsersService) Create(ctx context.Context, u *entity.User) error {
	return s.Users.Create(ctx, u)
}

// SetPassword verifies the current password and replaces the stored
// hash. It fails closed: an unknown account or a wrong current
// password both report false without an error.
func (s *UsersService) SetPassword(ctx context.Context, email, currentPlain, newPlain string) (bool, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !helpers.CompareHashAndPassword(u.Password, currentPlain) {
		return false, nil
	}
	hash, err := helpers.HashPassword(newPlain)
	if err != nil {
		return false, err
	}
	u.Password = hash
	if err := s.Users.Update(ctx, u); err != nil {
		return false, err
	}
	return true, nil
}

// Get returns the profile view for the account behind email.
func (s *UsersService) Get(ctx context.Context, email string) (*UserView, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return userView(u), nil
}

// GetByEmail returns the raw account entity; used by the auth layer.
func (s *UsersService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

// UpdateProfile copies the mutable profile fields onto the account and
// persists it. Email, role and image are untouched.
func (s *UsersService) UpdateProfile(ctx context.Context, email string, in UpdateUserInput) (*UpdateUserInput, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.Phone = in.Phone
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return &in, nil
}

// ReplaceAvatar swaps the account's avatar file: the stale file is
// deleted synchronously, the new bytes written, and the reference
// committed on the record only after the write succeeded.
func (s *UsersService) ReplaceAvatar(ctx context.Context, email string, image []byte, originalFilename string) (string, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	name, err := imagestore.GenerateName(originalFilename)
	if err != nil {
		return "", err
	}
	if err := s.Images.Delete(u.Image); err != nil {
		return "", err
	}
	ref, err := s.Images.Put(name, image)
	if err != nil {
		return "", err
	}
	u.Image = ref
	if err := s.Users.Update(ctx, u); err != nil {
		return "", err
	}
	return ref, nil
}

// Delete removes an account and everything it owns: each of its ads
// goes first (discarding the ad's image file), then the avatar file,
// then the account record itself. Comment rows fall with the account
// through the schema's cascade; they carry no attachments. The
// attachment cleanup is driven here explicitly so no files are
// orphaned by the database-level cascade.
func (s *UsersService) Delete(ctx context.Context, actorEmail string, id int) error {
	target, err := s.Users.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	actor, err := s.Users.GetByEmail(ctx, actorEmail)
	if err != nil {
		return err
	}
	if !canModify(actor, target.Email) {
		return ErrForbidden
	}
	ads, err := s.Ads.ListByAuthor(ctx, target.ID)
	if err != nil {
		return err
	}
	for i := range ads {
		if err := s.Images.Delete(ads[i].Image); err != nil {
			s.Logger.WithError(err).WithField("ad", ads[i].ID).Warn("ad image delete failed")
		}
		if err := s.Ads.Delete(ctx, ads[i].ID); err != nil {
			return err
		}
	}
	if err := s.Images.Delete(target.Image); err != nil {
		s.Logger.WithError(err).WithField("user", target.ID).Warn("avatar delete failed")
	}
	return s.Users.Delete(ctx, target.ID)
}
