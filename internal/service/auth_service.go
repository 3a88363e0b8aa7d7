package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/XZHHHHHH/NearUliveS/internal/model"
	"github.com/XZHHHHHH/NearUliveS/internal/repository"
	"github.com/XZHHHHHH/NearUliveS/pkg/errs"
)

const bcryptCost = 10

// LoginResult 登录结果
type LoginResult struct {
	User  *model.User
	Token string
}

// FieldError 凭证校验失败，带表单字段
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Err.Error() }
func (e *FieldError) Unwrap() error { return e.Err }

type AuthService interface {
	// Register 注册：同一事务内建 User 与默认 Profile
	Register(ctx context.Context, email, password, confirmPassword string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Me 按 token 中的 uid 取当前用户
	Me(ctx context.Context, userID int64) (*model.User, error)
	IssueToken(user *model.User) (string, error)
	ParseToken(token string) (int64, error)
}

type authService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(db *gorm.DB, userRepo repository.UserRepository, secret string, tokenTTL time.Duration) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &authService{db: db, userRepo: userRepo, secret: []byte(secret), tokenTTL: tokenTTL}
}

func (s *authService) Register(ctx context.Context, email, password, confirmPassword string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, errs.InvalidArg("email and password are required")
	}
	if password != confirmPassword {
		return nil, errs.InvalidArg("passwords do not match")
	}
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "check email", err)
	}
	if exists {
		return nil, errs.AlreadyExists("email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "hash password", err)
	}

	user := &model.User{Email: email, Password: string(hash)}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &model.UserProfile{
			UserID:       user.ID,
			Username:     model.DefaultUsername(user.ID),
			ProfileImage: model.DefaultProfileImage,
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "register", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, &FieldError{Field: "email", Err: errs.Unauthorized("invalid email")}
		}
		return nil, errs.Wrap(errs.CodeInternal, "load user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, &FieldError{Field: "password", Err: errs.Unauthorized("wrong password")}
	}
	token, err := s.IssueToken(user)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, "issue token", err)
	}
	return &LoginResult{User: user, Token: token}, nil
}

func (s *authService) Me(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errs.NotFound("user not found")
		}
		return nil, errs.Wrap(errs.CodeInternal, "load user", err)
	}
	return user, nil
}

type authClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *authService) IssueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := authClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   jwtSubject(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *authService) ParseToken(token string) (int64, error) {
	var claims authClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.Unauthorized("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, errs.Unauthorized("not authenticated")
	}
	uid, err := parseJWTSubject(claims.Subject)
	if err != nil {
		return 0, errs.Unauthorized("not authenticated")
	}
	return uid, nil
}
