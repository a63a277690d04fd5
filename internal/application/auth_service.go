package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-classifieds-api/internal/domain/entity"
	repo "github.com/oksasatya/go-classifieds-api/internal/domain/repository"
	"github.com/oksasatya/go-classifieds-api/pkg/helpers"
	"github.com/oksasatya/go-classifieds-api/pkg/mailer"
)

// RegisterInput carries the registration payload. The credential is
// plaintext here and hashed before anything is persisted.
type RegisterInput struct {
	Username  string `json:"username" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=16"`
	FirstName string `json:"firstName" binding:"required,min=2,max=16"`
	LastName  string `json:"lastName" binding:"required,min=2,max=16"`
	Phone     string `json:"phone" binding:"required"`
	Role      string `json:"role" binding:"omitempty,oneof=USER ADMIN"`
}

// AuthService is the thin front of account access: existence check and
// credential verification on login, duplicate check plus hashing on
// registration. Persistence is delegated to UsersService.
type AuthService struct {
	Users  *UsersService
	Logger *logrus.Logger
	Rabbit *helpers.RabbitPublisher
}

func NewAuthService(users *UsersService, logger *logrus.Logger, rabbit *helpers.RabbitPublisher) *AuthService {
	return &AuthService{Users: users, Logger: logger, Rabbit: rabbit}
}

// Login verifies the email/password pair. Unknown account and wrong
// password collapse into the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Register creates a new enabled account unless the email is already
// taken. A welcome email job is queued best-effort after the account
// is durable.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	_, err := s.Users.Users.GetByEmail(ctx, in.Username)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repo.ErrNoRows) {
		return nil, err
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	u := &entity.User{
		Email:     in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Role:      role,
		Password:  hash,
		Enabled:   true,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.queueWelcomeEmail(ctx, u)
	return u, nil
}

func (s *AuthService) queueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Rabbit == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"FirstName": u.FirstName},
	}
	if err := s.Rabbit.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email enqueue failed")
	}
}
