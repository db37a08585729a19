package service

import (
	"context"
	"strings"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles business logic for accounts and profiles
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new account. Email and nickname are normalized to
// lowercase; uniqueness conflicts surface as validation errors. A supplied
// profile picture is kept, otherwise an avatar is generated from the
// nickname.
func (s *UserService) Register(ctx context.Context, name, email, nickname, password, profilePicture string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	nickname = strings.ToLower(strings.TrimSpace(nickname))
	profilePicture = strings.TrimSpace(profilePicture)

	if name == "" || email == "" || nickname == "" {
		return nil, models.NewValidationError("Name, email and nickname are required")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateNickname(nickname); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if profilePicture == "" {
		profilePicture = models.DefaultProfilePicture(nickname)
	}

	user := &models.User{
		Name:           name,
		Email:          email,
		Password:       string(hashed),
		Nickname:       nickname,
		ProfilePicture: profilePicture,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the account. Failures are reported
// uniformly so callers cannot probe which field was wrong.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthenticatedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthenticatedError("Invalid credentials")
	}
	return user, nil
}

// Get fetches an account by ID.
func (s *UserService) Get(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// GetProfile returns the public view of a user, cached briefly.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.PublicProfile, error) {
	var profile models.PublicProfile
	err := cache.Aside(ctx, cache.ProfileKey(userID), &profile, cache.ProfileTTL, func() error {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		profile = *user.Public()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile changes the caller's display name, nickname or avatar.
// Empty fields are left untouched.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, name, nickname, profilePicture string) (*models.User, error) {
	if strings.TrimSpace(name) == "" && strings.TrimSpace(nickname) == "" && strings.TrimSpace(profilePicture) == "" {
		return nil, models.NewValidationError("Nothing to update")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}
	if nickname = strings.ToLower(strings.TrimSpace(nickname)); nickname != "" && nickname != user.Nickname {
		if err := validation.ValidateNickname(nickname); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByNickname(ctx, nickname)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewValidationError("Nickname already in use")
		}
		user.Nickname = nickname
	}
	if profilePicture = strings.TrimSpace(profilePicture); profilePicture != "" {
		user.ProfilePicture = profilePicture
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	cache.Invalidate(ctx, cache.ProfileKey(userID))
	return user, nil
}
