package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/ecommerce/app/dto"
	"github.com/shashiranjanraj/ecommerce/app/models"
	"github.com/shashiranjanraj/ecommerce/pkg/auth"
	"github.com/shashiranjanraj/ecommerce/pkg/orm"
)

// AuthService registers accounts and issues tokens.
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// TokenPair is what a successful login returns.
type TokenPair struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

// Register creates an account with the default User role. Username and
// email are each checked for uniqueness before the insert is staged.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	uow := orm.New(s.db)
	users := orm.RepositoryFor[models.User](uow)
	roles := orm.RepositoryFor[models.Role](uow)

	taken, err := users.Exists(ctx, orm.Eq("user_name", req.UserName))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("username %q: %w", req.UserName, ErrConflict)
	}

	taken, err = users.Exists(ctx, orm.Eq("email", req.Email))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("email %q: %w", req.Email, ErrConflict)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserName:  req.UserName,
		Email:     req.Email,
		Password:  hash,
	}

	// The seeder creates the role; a missing one just leaves the user with
	// the implicit default.
	if role, err := roles.First(ctx, orm.Eq("name", models.RoleUser)); err != nil {
		return nil, err
	} else if role != nil {
		user.Roles = []models.Role{*role}
	}

	users.Add(user)
	if _, err := uow.Save(ctx); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

// Login authenticates by username first, then by email, and returns signed
// tokens. Both lookup misses and password mismatches come back as
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*TokenPair, error) {
	users := orm.RepositoryFor[models.User](orm.New(s.db))

	user, err := users.First(ctx, orm.Eq("user_name", req.UserName), orm.WithIncludes("Roles"))
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = users.First(ctx, orm.Eq("email", req.UserName), orm.WithIncludes("Roles"))
		if err != nil {
			return nil, err
		}
	}
	if user == nil || !auth.CheckPassword(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	role := user.PrimaryRole()
	access, err := auth.GenerateToken(user.ID, role)
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, role)
	if err != nil {
		return nil, fmt.Errorf("login: sign refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

// Profile returns the account behind an authenticated request.
func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	users := orm.RepositoryFor[models.User](orm.New(s.db))

	user, err := users.First(ctx, orm.Eq("id", userID), orm.WithIncludes("Roles"))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return user, nil
}
