package service

import (
	"context"
	"errors"
	"time"

	"fitcoach/coach-platform/internal/domain"
	"fitcoach/coach-platform/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrRoleNotAllowed       = errors.New("role cannot sign in")
)

// --- Service Interface ---
type AuthService interface {
	// RegisterCoach provisions a fresh tenant (with its standard pricing plan)
	// and the coach account owning it.
	RegisterCoach(ctx context.Context, name, email, password, tenantName string) (*domain.User, *domain.Tenant, error)
	RegisterSuperAdmin(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
}

// --- Service Implementation ---

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	tenantService TenantService
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, tenantService TenantService, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1
	}
	return &authService{
		userRepo:      userRepo,
		tenantService: tenantService,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// RegisterCoach handles coach self-signup: a new tenant plus its owning coach.
func (s *authService) RegisterCoach(ctx context.Context, name, email, password, tenantName string) (*domain.User, *domain.Tenant, error) {
	if name == "" || email == "" || password == "" || tenantName == "" {
		return nil, nil, errors.New("name, email, password, and tenant name cannot be empty")
	}

	if err := s.checkEmailFree(ctx, email); err != nil {
		return nil, nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, ErrHashingFailed
	}

	tenant, err := s.tenantService.CreateTenant(ctx, tenantName, email, "")
	if err != nil {
		return nil, nil, err
	}

	first, last := splitName(name, "")
	user := &domain.User{
		Name:         name,
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleCoach,
		TenantID:     tenant.ID,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, nil, ErrUserAlreadyExists
		}
		return nil, nil, err
	}
	user.ID = userID
	user.PasswordHash = ""
	return user, tenant, nil
}

// RegisterSuperAdmin creates a platform staff account with no tenant.
func (s *authService) RegisterSuperAdmin(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email, and password cannot be empty")
	}

	if err := s.checkEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleSuperAdmin,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID
	user.PasswordHash = ""
	return user, nil
}

// checkEmailFree rejects a registration when another staff account already
// carries the email. Leads do not count; their emails are per-tenant.
func (s *authService) checkEmailFree(ctx context.Context, email string) error {
	_, err := s.userRepo.GetStaffByEmail(ctx, email)
	if err == nil {
		return ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

// Login handles user authentication and JWT generation. Only staff accounts
// (coach, superadmin) carry credentials; leads and clients cannot sign in.
func (s *authService) Login(ctx context.Context, email, password string) (token string, user *domain.User, err error) {
	if email == "" || password == "" {
		err = errors.New("email and password cannot be empty")
		return
	}

	user, err = s.userRepo.GetStaffByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrAuthenticationFailed
			return
		}
		return
	}

	if !user.IsCoach() && !user.IsSuperAdmin() {
		err = ErrRoleNotAllowed
		user = nil
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		err = ErrAuthenticationFailed
		user = nil
		return
	}

	token, err = s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// --- JWT Helper ---

// AuthClaims defines the structure of the JWT payload. TenantID is empty for
// superadmins, who address tenants explicitly per request.
type AuthClaims struct {
	UserID   string      `json:"uid"`
	Role     domain.Role `json:"role"`
	TenantID string      `json:"tid,omitempty"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &AuthClaims{
		UserID: user.ID.Hex(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "coach-platform",
		},
	}
	if user.TenantID != primitive.NilObjectID {
		claims.TenantID = user.TenantID.Hex()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}
