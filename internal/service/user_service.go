package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/echoplay/server/internal/domain"
	"github.com/echoplay/server/internal/repository"
	"github.com/echoplay/server/pkg/auth"
	"github.com/echoplay/server/pkg/logger"
)

// UserService owns accounts, authentication, and the user-follow graph.
type UserService struct {
	userRepo repository.UserRepository
	tokens   *auth.Manager
	log      logger.Logger
}

// NewUserService creates the user service.
func NewUserService(userRepo repository.UserRepository, tokens *auth.Manager, log logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log,
	}
}

// RegisterInput carries signup fields.
type RegisterInput struct {
	Email       string
	DisplayName string
	Password    string
	ImageURL    string
}

// Register creates the account with its favorites playlist and returns
// the user plus a signed token. The favorites playlist is private and
// owned by the new user.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	if len(in.Password) < 8 {
		return nil, "", domain.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		DisplayName:  in.DisplayName,
		PasswordHash: string(hash),
		ImageURL:     in.ImageURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, "", err
	}

	favorites := &domain.Playlist{
		ID:          uuid.New().String(),
		Name:        "Favorites",
		IsPrivate:   true,
		Kind:        domain.KindFavorites,
		CreatedAt:   now,
		UpdatedAt:   now,
		OwnerIDList: []string{user.ID},
	}

	if err := s.userRepo.Create(ctx, user, favorites); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("user registered", logger.String("user_id", user.ID))
	return user, token, nil
}

// Login verifies credentials and returns the user plus a signed token.
// A wrong password and an unknown email are indistinguishable to the
// caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Get fetches a user profile. Profiles are public.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateUserInput carries partial profile fields; nil means unchanged.
type UpdateUserInput struct {
	DisplayName *string
	ImageURL    *string
	Password    *string
}

// Update applies profile changes. Only the account holder or an admin
// may update a profile.
func (s *UserService) Update(ctx context.Context, p domain.Principal, userID string, in UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !p.Admin && p.ID != userID {
		return nil, domain.ErrForbidden
	}

	if in.DisplayName != nil {
		user.DisplayName = *in.DisplayName
	}
	if in.ImageURL != nil {
		user.ImageURL = *in.ImageURL
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, domain.ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account. Owned playlists and relation edges cascade
// at the store.
func (s *UserService) Delete(ctx context.Context, p domain.Principal, userID string) error {
	if !p.Admin && p.ID != userID {
		return domain.ErrForbidden
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Info("user deleted", logger.String("user_id", userID), logger.String("by", p.ID))
	return nil
}

// Follow makes the principal follow another user. Self-follows and
// duplicate follows are rejected.
func (s *UserService) Follow(ctx context.Context, p domain.Principal, followeeID string) error {
	if p.Anonymous() {
		return domain.ErrUnauthorized
	}
	if p.ID == followeeID {
		return domain.ErrSelfFollow
	}
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}
	return s.userRepo.Follow(ctx, p.ID, followeeID)
}

// Unfollow removes a user-follow edge.
func (s *UserService) Unfollow(ctx context.Context, p domain.Principal, followeeID string) error {
	if p.Anonymous() {
		return domain.ErrUnauthorized
	}
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}
	return s.userRepo.Unfollow(ctx, p.ID, followeeID)
}

// ListFollowing returns the users a user follows.
func (s *UserService) ListFollowing(ctx context.Context, userID string) ([]*domain.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.userRepo.ListFollowing(ctx, userID)
}

// ListFollowers returns the users following a user.
func (s *UserService) ListFollowers(ctx context.Context, userID string) ([]*domain.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.userRepo.ListFollowers(ctx, userID)
}
