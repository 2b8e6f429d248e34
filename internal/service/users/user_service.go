package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/Domenick1991/airportservice/internal/auth"
	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/Domenick1991/airportservice/internal/media"
	"github.com/Domenick1991/airportservice/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 5
	imageField        = "user_image"
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Verify(ctx context.Context, token string) error
	Me(ctx context.Context, id int64) (*domain.User, error)
	UpdateMe(ctx context.Context, id int64, input UpdateInput) (*domain.User, error)
	UploadImage(ctx context.Context, id int64, file *multipart.FileHeader) (*domain.User, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// UpdateInput leaves the stored password untouched when Password is empty.
type UpdateInput struct {
	Email    string
	Username string
	Password string
}

type TokenPair struct {
	Access  string
	Refresh string
}

type ImageStore interface {
	SaveImage(file *multipart.FileHeader, dir, name, field string) (string, error)
	Remove(rel string) error
}

type UserService struct {
	repo   repository.UserRepository
	tokens *auth.TokenManager
	images ImageStore
	logger *slog.Logger
}

func NewUserService(repo repository.UserRepository, tokens *auth.TokenManager, images ImageStore, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		images: images,
		logger: logger,
	}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	verr := &domain.ValidationError{}
	email := normalizeEmail(input.Email)
	if email == "" {
		verr.Add("email", "This field may not be blank.")
	}
	if len(input.Password) < minPasswordLength {
		verr.Add("password", fmt.Sprintf("Ensure this field has at least %d characters.", minPasswordLength))
	}
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login does not reveal whether the email or the password was wrong.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no active account found with the given credentials", domain.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: no active account found with the given credentials", domain.ErrUnauthorized)
	}

	access, refresh, err := s.tokens.IssuePair(identity(user))
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh issues a new access token from a refresh token, re-reading the staff flag.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Parse(refreshToken, auth.RefreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("%w: user not found", domain.ErrUnauthorized)
		}
		return "", err
	}
	return s.tokens.Issue(identity(user), auth.AccessToken)
}

// Verify accepts any valid token of either type.
func (s *UserService) Verify(_ context.Context, token string) error {
	if _, err := s.tokens.Parse(token, auth.AccessToken); err == nil {
		return nil
	}
	_, err := s.tokens.Parse(token, auth.RefreshToken)
	return err
}

func (s *UserService) Me(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) UpdateMe(ctx context.Context, id int64, input UpdateInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	verr := &domain.ValidationError{}
	if email := normalizeEmail(input.Email); email != "" {
		user.Email = email
	} else {
		verr.Add("email", "This field may not be blank.")
	}
	user.Username = strings.TrimSpace(input.Username)

	if input.Password != "" {
		if len(input.Password) < minPasswordLength {
			verr.Add("password", fmt.Sprintf("Ensure this field has at least %d characters.", minPasswordLength))
		} else if user.PasswordHash, err = hashPassword(input.Password); err != nil {
			return nil, err
		}
	}
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UploadImage(ctx context.Context, id int64, file *multipart.FileHeader) (*domain.User, error) {
	if file == nil {
		return nil, domain.NewValidationError(imageField, "No file was submitted.")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := user.Username
	if name == "" {
		name = strings.SplitN(user.Email, "@", 2)[0]
	}
	rel, err := s.images.SaveImage(file, media.UsersDir, name, imageField)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetImage(ctx, id, rel); err != nil {
		_ = s.images.Remove(rel)
		return nil, err
	}

	if user.Image != "" {
		if err := s.images.Remove(user.Image); err != nil {
			s.logger.Warn("remove user image", "path", user.Image, "error", err)
		}
	}
	user.Image = rel
	return user, nil
}

// EnsureAdmin creates the staff account, or promotes an existing one. An empty password disables seeding.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	user, err := s.repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		hash, err := hashPassword(password)
		if err != nil {
			return err
		}
		if err := s.repo.Create(ctx, &domain.User{Email: email, PasswordHash: hash, IsStaff: true}); err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		s.logger.Info("admin account created", "email", email)
		return nil
	case err != nil:
		return err
	case user.IsStaff:
		return nil
	}

	user.IsStaff = true
	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("promote admin: %w", err)
	}
	s.logger.Info("account promoted to admin", "email", email)
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func identity(user *domain.User) domain.Identity {
	return domain.Identity{UserID: user.ID, IsStaff: user.IsStaff}
}

var _ UserUseCase = (*UserService)(nil)
