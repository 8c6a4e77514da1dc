package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/repos"
	"github.com/sikabapp/sikab-backend/internal/types"
	"github.com/sikabapp/sikab-backend/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// SessionUser is the identity carried by a verified token. Handlers stash it
// on the request context; services receive it as the acting user.
type SessionUser struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *SessionUser, error)
	ParseToken(tokenString string) (*SessionUser, error)
	GetAccessTTL() time.Duration
	// EnsureDefaultSuperadmin creates the bootstrap account when the user
	// table has no superadmin yet. Idempotent across restarts.
	EnsureDefaultSuperadmin(ctx context.Context) error
}

type authService struct {
	log       *logger.Logger
	userRepo  repos.UserRepo
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(userRepo repos.UserRepo, log *logger.Logger) (AuthService, error) {
	serviceLog := log.With("service", "AuthService")
	secret := utils.GetEnv("JWT_SECRET", "", serviceLog)
	if secret == "" {
		return nil, fmt.Errorf("missing env var JWT_SECRET")
	}
	ttlHours := utils.GetEnvAsInt("JWT_ACCESS_TTL_HOURS", 12, serviceLog)
	return &authService{
		log:       serviceLog,
		userRepo:  userRepo,
		jwtSecret: []byte(secret),
		accessTTL: time.Duration(ttlHours) * time.Hour,
	}, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, *SessionUser, error) {
	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if len(users) == 0 {
		return "", nil, ErrInvalidCredentials
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"id":       user.ID.String(),
		"email":    user.Email,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(as.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	as.log.Info("User logged in", "userID", user.ID, "role", user.Role)
	return signed, &SessionUser{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

func (as *authService) ParseToken(tokenString string) (*SessionUser, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return as.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	idStr, _ := claims["id"].(string)
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in token: %w", err)
	}
	email, _ := claims["email"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if !types.ValidRole(role) {
		return nil, fmt.Errorf("unknown role %q in token", role)
	}
	return &SessionUser{ID: userID, Email: email, Username: username, Role: role}, nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) EnsureDefaultSuperadmin(ctx context.Context) error {
	email := utils.GetEnv("SUPERADMIN_EMAIL", "superadmin@sikab.local", as.log)
	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return fmt.Errorf("failed to check superadmin: %w", err)
	}
	if exists {
		return nil
	}
	password := utils.GetEnv("SUPERADMIN_PASSWORD", "", as.log)
	if password == "" {
		as.log.Warn("SUPERADMIN_PASSWORD not set; skipping bootstrap account")
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash superadmin password: %w", err)
	}
	_, err = as.userRepo.Create(ctx, nil, []*types.User{{
		ID:       uuid.New(),
		Email:    email,
		Username: "superadmin",
		Password: string(hashed),
		Role:     types.RoleSuperadmin,
	}})
	if err != nil {
		return fmt.Errorf("failed to create superadmin: %w", err)
	}
	as.log.Info("Bootstrap superadmin created", "email", email)
	return nil
}
