package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/repos"
	"github.com/sikabapp/sikab-backend/internal/types"
)

type CreateUserInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateUserInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"` // empty means keep the current one
	Role     string `json:"role"`
}

type UserService interface {
	List(ctx context.Context, offset, limit int) ([]*types.User, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.User, error)
	Create(ctx context.Context, input CreateUserInput) (*types.User, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*types.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	log      *logger.Logger
	db       *gorm.DB
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, userRepo repos.UserRepo, log *logger.Logger) UserService {
	return &userService{
		log:      log.With("service", "UserService"),
		db:       db,
		userRepo: userRepo,
	}
}

func (us *userService) List(ctx context.Context, offset, limit int) ([]*types.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return us.userRepo.List(ctx, nil, offset, limit)
}

func (us *userService) GetByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return users[0], nil
}

func (us *userService) validate(ctx context.Context, email, username, password, role string, requirePassword bool, currentEmail string) error {
	ve := NewValidationError()
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		ve.Add("email", "A valid email address is required.")
	} else if email != currentEmail {
		exists, err := us.userRepo.EmailExists(ctx, nil, email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			ve.Add("email", "Email is already registered.")
		}
	}
	if l := len(strings.TrimSpace(username)); l < 1 || l > 20 {
		ve.Add("username", "Username must be 1-20 characters.")
	}
	if requirePassword || password != "" {
		if len(password) < 6 {
			ve.Add("password", "Password must be at least 6 characters.")
		}
	}
	if !types.ValidRole(role) {
		ve.Add("role", "Unknown role.")
	}
	return ve.OrNil()
}

func (us *userService) Create(ctx context.Context, input CreateUserInput) (*types.User, error) {
	if err := us.validate(ctx, input.Email, input.Username, input.Password, input.Role, true, ""); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &types.User{
		ID:       uuid.New(),
		Email:    strings.TrimSpace(input.Email),
		Username: strings.TrimSpace(input.Username),
		Password: string(hashed),
		Role:     input.Role,
	}
	if _, err := us.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	us.log.Info("User created", "userID", user.ID, "role", user.Role)
	return user, nil
}

func (us *userService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*types.User, error) {
	user, err := us.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := us.validate(ctx, input.Email, input.Username, input.Password, input.Role, false, user.Email); err != nil {
		return nil, err
	}
	user.Email = strings.TrimSpace(input.Email)
	user.Username = strings.TrimSpace(input.Username)
	user.Role = input.Role
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}
	if err := us.userRepo.Update(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (us *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := us.userRepo.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	us.log.Info("User deleted", "userID", id)
	return nil
}
