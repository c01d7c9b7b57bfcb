package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/promanage/promanage-api/internal/models"
	"github.com/promanage/promanage-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailRequired        = errors.New("email is required")
	ErrPasswordRequired     = errors.New("password is required")
	ErrEmailTaken           = errors.New("user already exists")
	ErrSameEmail            = errors.New("please provide a different email address")
	ErrSamePassword         = errors.New("please provide a different password")
	ErrWrongPassword        = errors.New("incorrect credentials")
	ErrInvalidCredentials   = errors.New("incorrect credentials")
	ErrUserNotFound         = errors.New("user does not exist")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// UserService handles registration, authentication and profile
// management.
type UserService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, tokens *TokenService) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new user, or claims a provisioned account that has
// no credential yet. An email that already belongs to a claimed account
// is a conflict.
func (s *UserService) Register(input RegisterInput) (*models.User, bool, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, false, ErrEmailRequired
	}
	if input.Password == "" {
		return nil, false, ErrPasswordRequired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, ErrFailedToHashPassword
	}

	existing, err := s.userRepo.FindByEmail(email)
	if err == nil {
		if existing.HasCredential() {
			return nil, false, ErrEmailTaken
		}

		// Provisioned account being claimed: fill in name and credential.
		existing.Name = input.Name
		existing.PasswordHash = string(hashedPassword)
		if err := s.userRepo.Update(existing); err != nil {
			return nil, false, fmt.Errorf("failed to claim user: %w", err)
		}
		return existing, true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to check email: %w", err)
	}

	user := &models.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, ErrEmailTaken
		}
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	return user, false, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and issues a session token.
func (s *UserService) Login(input LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	// A provisioned account has no credential until it registers.
	if !user.HasCredential() {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// UpdateProfileInput holds the optional profile fields; absent fields
// are untouched.
type UpdateProfileInput struct {
	Name        *string
	Email       *string
	OldPassword *string
	NewPassword *string
}

// UpdateProfile applies a partial profile update.
func (s *UserService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, ErrEmailRequired
		}
		if email == user.Email {
			return nil, ErrSameEmail
		}
		if other, err := s.userRepo.FindByEmail(email); err == nil && other.ID != user.ID {
			return nil, ErrEmailTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		user.Email = email
	}

	if input.NewPassword != nil {
		if *input.NewPassword == "" {
			return nil, ErrPasswordRequired
		}
		if input.OldPassword == nil {
			return nil, ErrWrongPassword
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*input.OldPassword)); err != nil {
			return nil, ErrWrongPassword
		}
		if *input.NewPassword == *input.OldPassword {
			return nil, ErrSamePassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// ProvisionUser creates a credential-less placeholder account owned by
// the provisioning user, to be claimed later via Register.
func (s *UserService) ProvisionUser(email string, createdBy uint64) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user := &models.User{
		Email:     email,
		CreatedBy: &createdBy,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// ListProvisioned returns the users provisioned by the given owner.
func (s *UserService) ListProvisioned(ownerID uint64) ([]models.User, error) {
	users, err := s.userRepo.ListByCreator(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
