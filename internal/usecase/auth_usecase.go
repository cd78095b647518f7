package usecase

import (
	"context"
	"errors"

	"dental-clinic/internal/converter"
	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/domain/repository"
	"dental-clinic/internal/service"
	"dental-clinic/pkg/actor"
	"dental-clinic/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrTokenRevoked          = errors.New("token has been revoked")
	ErrUserNotFound          = errors.New("user not found")
	ErrRoleNotAllowed        = errors.New("only an admin can assign this role")
)

type AuthUsecase interface {
	// Register creates a user. The first account becomes admin; after that
	// only an admin caller may hand out a role other than staff.
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID int, accessTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID int) (*dto.UserResponse, error)
	// CreateUser is the seeding path; it skips the caller checks of Register.
	CreateUser(ctx context.Context, username, password, fullName, role string) (*dto.UserResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	jwtService   *jwt.JWTService
	redisClient  *redis.Client
	auditService service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		jwtService:   jwtService,
		redisClient:  redisClient,
		auditService: auditService,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	count, err := u.userRepo.Count(tx)
	if err != nil {
		u.log.Warnf("Failed to count users: %+v", err)
		return nil, err
	}

	role := req.Role
	switch {
	case count == 0:
		role = entity.RoleAdmin
	case role == "":
		role = entity.RoleStaff
	case role != entity.RoleStaff:
		isAdmin, err := u.callerIsAdmin(ctx, tx)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			return nil, ErrRoleNotAllowed
		}
	}

	user, err := u.createUser(ctx, tx, req.Username, req.Password, req.FullName, role)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) CreateUser(ctx context.Context, username, password, fullName, role string) (*dto.UserResponse, error) {
	if !entity.IsValidRole(role) {
		return nil, ErrRoleNotAllowed
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.createUser(ctx, tx, username, password, fullName, role)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) createUser(ctx context.Context, tx *gorm.DB, username, password, fullName, role string) (*entity.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Username: username,
		Password: string(hashedPassword),
		FullName: fullName,
		Role:     role,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrUsernameAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAuth(ctx, tx, user.ID, entity.AuditActionUserRegister); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *authUsecase) callerIsAdmin(ctx context.Context, db *gorm.DB) (bool, error) {
	callerID := actor.UserID(ctx)
	if callerID == nil {
		return false, nil
	}

	caller, err := u.userRepo.FindByID(db, *callerID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return false, err
	}
	return caller.IsAdmin(), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByUsername(db, req.Username)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(ctx, user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	if err := u.auditService.LogAuth(ctx, db, user.ID, entity.AuditActionUserLogin); err != nil {
		return nil, err
	}

	tokens.User = converter.UserToResponse(user)
	return tokens, nil
}

// issueTokens signs an access/refresh pair and whitelists both in Redis.
// Each key stores the id of its partner so either token can revoke the pair.
func (u *authUsecase) issueTokens(ctx context.Context, userID int, username, role string) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(userID, username, role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(userID, username, role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := jwt.SessionKey(jwt.AccessToken, userID, accessTokenID)
	refreshKey := jwt.SessionKey(jwt.RefreshToken, userID, refreshTokenID)

	pipe := u.redisClient.TxPipeline()
	pipe.Set(ctx, accessKey, refreshTokenID, u.jwtService.GetAccessExpiry())
	pipe.Set(ctx, refreshKey, accessTokenID, u.jwtService.GetRefreshExpiry())
	if _, err := pipe.Exec(ctx); err != nil {
		u.log.Warnf("Failed to store tokens in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// Logout revokes the access token and the refresh token issued with it.
func (u *authUsecase) Logout(ctx context.Context, userID int, accessTokenID string) error {
	accessKey := jwt.SessionKey(jwt.AccessToken, userID, accessTokenID)

	refreshTokenID, err := u.redisClient.Get(ctx, accessKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		u.log.Warnf("Failed to read access token from Redis: %+v", err)
		return err
	}

	keys := []string{accessKey}
	if refreshTokenID != "" {
		keys = append(keys, jwt.SessionKey(jwt.RefreshToken, userID, refreshTokenID))
	}
	if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
		u.log.Warnf("Failed to delete tokens from Redis: %+v", err)
		return err
	}

	if err := u.auditService.LogAuth(ctx, u.db.WithContext(ctx), userID, entity.AuditActionUserLogout); err != nil {
		return err
	}
	return nil
}

// RefreshToken rotates the pair: the presented refresh token and its access
// token are revoked and a new pair is issued.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := jwt.SessionKey(jwt.RefreshToken, claims.UserID, claims.TokenID)
	accessTokenID, err := u.redisClient.Get(ctx, refreshKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTokenRevoked
		}
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}

	keys := []string{refreshKey}
	if accessTokenID != "" {
		keys = append(keys, jwt.SessionKey(jwt.AccessToken, claims.UserID, accessTokenID))
	}
	if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
		u.log.Warnf("Failed to delete old tokens: %+v", err)
		return nil, err
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}

	tokens, err := u.issueTokens(ctx, user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	tokens.User = converter.UserToResponse(user)
	return tokens, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID int) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	return converter.UserToResponse(user), nil
}
