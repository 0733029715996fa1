package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"formulator/internal/apperr"
	"formulator/internal/logger"
	"formulator/internal/models"
	"formulator/internal/repository"
	"formulator/internal/utils"
	"formulator/internal/validation"

	"go.uber.org/zap"
)

type AuthService struct {
	repo      repository.UserRepo
	jwtSecret string
	ttl       time.Duration
	now       clock

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(repo repository.UserRepo, jwtSecret string, ttl time.Duration) *AuthService {
	return &AuthService{repo: repo, jwtSecret: jwtSecret, ttl: ttl, now: systemClock}
}

// dummy — хеш для сравнения, когда пользователь не найден: время ответа
// не выдаёт, существует ли email.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = utils.HashPassword("formulator-dummy-password")
	})
	return s.dummyHash
}

// Login проверяет email и пароль и выпускает сессионный токен. Для
// неизвестного email и неверного пароля ошибка одна и та же.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	log := logger.WithCtx(ctx)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	log.Info("Попытка входа (service)", zap.String("email", req.Email))

	if ve := validation.Struct(&req); ve != nil {
		return nil, ve
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			log.Error("Ошибка получения пользователя (service)", zap.Error(err))
			return nil, err
		}
		utils.CheckPasswordHash(req.Password, s.dummy())
		log.Warn("Пользователь не найден (service)", zap.String("email", req.Email))
		return nil, apperr.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		log.Warn("Неверный пароль (service)", zap.String("user_id", user.ID))
		return nil, apperr.ErrInvalidCredentials
	}

	token, exp, err := utils.GenerateToken(s.jwtSecret, user.ID, user.Role, s.ttl, s.now())
	if err != nil {
		log.Error("Ошибка генерации токена", zap.Error(err))
		return nil, err
	}

	log.Info("Вход выполнен (service)", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return &models.LoginResponse{Token: token, ExpiresAt: exp, User: user}, nil
}

// Me возвращает пользователя текущей сессии. Удалённый пользователь с
// ещё живым токеном получает ErrUnauthorized.
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	who, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.GetByID(ctx, who.UserID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrUnauthorized
	}
	return u, err
}
