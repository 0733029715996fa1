package services

import (
	"context"
	"strings"

	"formulator/internal/apperr"
	"formulator/internal/logger"
	"formulator/internal/models"
	"formulator/internal/repository"
	"formulator/internal/utils"
	"formulator/internal/validation"

	"go.uber.org/zap"
)

type UserService struct {
	repo  repository.UserRepo
	tx    repository.Transactor
	audit *AuditService
}

func NewUserService(repo repository.UserRepo, tx repository.Transactor, audit *AuditService) *UserService {
	return &UserService{repo: repo, tx: tx, audit: audit}
}

func (s *UserService) List(ctx context.Context, page, limit int) (*models.PageResult[models.User], error) {
	p := models.NewPage(page, limit, models.DefaultPageLimit)
	items, total, err := s.repo.List(ctx, p)
	if err != nil {
		logger.Log.Error("Ошибка получения пользователей (service)", zap.Error(err))
		return nil, err
	}
	return models.NewPageResult(items, p, total), nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Log.Warn("Пользователь не найден по ID (service)", zap.String("user_id", id), zap.Error(err))
	}
	return u, err
}

func normalizeUser(req *models.UserInput, passwordRequired bool) error {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	req.Image = trimPtr(req.Image)

	ve := validation.Struct(req)
	if passwordRequired && req.Password == "" {
		if ve == nil {
			ve = &apperr.ValidationError{}
		}
		ve.Add("password", "password: обязательное поле")
	}
	return ve.OrNil()
}

func (s *UserService) Create(ctx context.Context, req models.UserInput) (*models.User, error) {
	logger.Log.Info("Создание пользователя (service)", zap.String("email", req.Email))

	if err := normalizeUser(&req, true); err != nil {
		return nil, err
	}
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Log.Error("Ошибка хеширования пароля", zap.Error(err))
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleEditor
	}

	u := &models.User{
		ID:           newID(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hashed,
		Role:         role,
		Image:        req.Image,
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		taken, err := s.repo.IsEmailTaken(ctx, u.Email, "")
		if err != nil {
			return err
		}
		if taken {
			return apperr.Exists("адрес электронной почты уже зарегистрирован")
		}
		if err := s.repo.Create(ctx, u); err != nil {
			return err
		}
		u.Counts = &models.UserCounts{}
		return s.audit.Record(ctx, models.AuditCreate, models.EntityUser, u.ID, nil, u)
	})
	if err != nil {
		logger.Log.Warn("Пользователь не создан (service)", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Пользователь создан (service)", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

// Update меняет профиль; пустой пароль оставляет прежний хеш, пустая роль
// прежнюю роль.
func (s *UserService) Update(ctx context.Context, id string, req models.UserInput) (*models.User, error) {
	logger.Log.Info("Обновление пользователя (service)", zap.String("user_id", id))

	if err := normalizeUser(&req, false); err != nil {
		return nil, err
	}

	var updated *models.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		old, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if req.Email != old.Email {
			taken, err := s.repo.IsEmailTaken(ctx, req.Email, id)
			if err != nil {
				return err
			}
			if taken {
				return apperr.Exists("адрес электронной почты уже зарегистрирован")
			}
		}

		u := *old
		u.Email = req.Email
		u.Name = req.Name
		u.Image = req.Image
		if req.Role != "" {
			u.Role = req.Role
		}
		if req.Password != "" {
			if u.PasswordHash, err = utils.HashPassword(req.Password); err != nil {
				return err
			}
		}
		if err := s.repo.Update(ctx, &u); err != nil {
			return err
		}
		updated = &u
		return s.audit.Record(ctx, models.AuditUpdate, models.EntityUser, id, old, updated)
	})
	if err != nil {
		logger.Log.Error("Ошибка при обновлении пользователя (service)", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

// Delete запрещает удалять себя и пользователей, у которых есть статьи или проекты.
func (s *UserService) Delete(ctx context.Context, id string) error {
	logger.Log.Info("Сервис: удаление user", zap.String("user_id", id))

	who, err := requireIdentity(ctx)
	if err != nil {
		return err
	}
	if who.UserID == id {
		return apperr.ErrSelfDelete
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		old, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if old.Counts != nil && (old.Counts.Articles > 0 || old.Counts.Projects > 0) {
			return apperr.ErrUserHasContent
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		return s.audit.Record(ctx, models.AuditDelete, models.EntityUser, id, old, nil)
	})
	if err != nil {
		logger.Log.Error("Ошибка удаления users (service)", zap.String("user_id", id), zap.Error(err))
	}
	return err
}
