package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/hash"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/models"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/repo"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/transport"
)

const tokenTTL = 24 * time.Hour

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func validateCredentials(email, password string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	return nil
}

// Setup creates the first superadmin. It refuses once any admin exists.
func (s *AuthService) Setup(ctx context.Context, req transport.RegisterRequest) (*models.Admin, error) {
	total, err := s.Repo.CountAdmins(ctx)
	if err != nil {
		return nil, err
	}
	if total > 0 {
		return nil, ErrSetupDone
	}
	req.Role = models.RoleSuperAdmin
	return s.createAdmin(ctx, req)
}

// Register creates an additional admin account.
func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.Admin, error) {
	if req.Role == "" {
		req.Role = models.RoleAdmin
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleSuperAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}
	return s.createAdmin(ctx, req)
}

func (s *AuthService) createAdmin(ctx context.Context, req transport.RegisterRequest) (*models.Admin, error) {
	if err := validateCredentials(req.Email, req.Password); err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	if _, err := s.Repo.GetAdminByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		Email:        req.Email,
		PasswordHash: pwHash,
		Name:         req.Name,
		Role:         req.Role,
		Active:       true,
	}
	if err := s.Repo.CreateAdmin(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Login verifies the password and issues a token. The active flag is not
// checked here; the session check and middleware enforce it on every
// authenticated request.
func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (string, *models.Admin, error) {
	admin, err := s.Repo.GetAdminByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !hash.CheckPassword(admin.PasswordHash, req.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(admin)
	if err != nil {
		return "", nil, err
	}
	if err := s.Repo.TouchLastLogin(ctx, admin.ID); err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

func (s *AuthService) issueToken(admin *models.Admin) (string, error) {
	claims := jwt.MapClaims{
		"sub":  admin.ID,
		"role": admin.Role,
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.JWTSecret)
}

// Authenticate decodes a token, loads the admin and verifies the active
// flag.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.Admin, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	subRaw, ok := claims["sub"].(float64)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.Repo.GetAdmin(ctx, uint(subRaw))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !admin.Active {
		return nil, ErrInactiveAccount
	}
	return admin, nil
}
