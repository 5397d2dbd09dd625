package services

import (
	"context"
	"strings"

	"pointmall/internal/models"
	"pointmall/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountService struct {
	store  AccountStore
	auth   *AuthService
	logger *zap.Logger
}

func NewAccountService(store AccountStore, auth *AuthService, logger *zap.Logger) *AccountService {
	return &AccountService{store: store, auth: auth, logger: logger}
}

// Register 创建账户，用户名缺省时取邮箱前缀
func (s *AccountService) Register(ctx context.Context, email, password, username string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, validationError("邮箱格式不正确")
	}
	if len(password) < 6 {
		return nil, validationError("密码至少6位")
	}
	username = utils.StripTags(username)
	if username == "" {
		username = parts[0]
	}

	existing, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UUID:     uuid.NewString(),
		Username: username,
		Email:    email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("account registered", zap.Uint("user_id", user.ID), zap.String("uuid", user.UUID))
	return user, nil
}

// Login 校验密码并签发 token
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !utils.CheckPasswordHash(password, user.Password) {
		return nil, "", validationError("邮箱或密码错误")
	}

	token, err := s.auth.Issue(user.UUID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// FindByUUID 账户不存在时返回 ErrAccountNotFound
func (s *AccountService) FindByUUID(ctx context.Context, accountUUID string) (*models.User, error) {
	user, err := s.store.FindUserByUUID(ctx, accountUUID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrAccountNotFound
	}
	return user, nil
}
