package bootstrap

import (
	"context"
	"fmt"

	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/repository"
	"dental-clinic/internal/service"
	"dental-clinic/internal/usecase"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdminSeed describes the optional first account created by the seed
// command. An empty Username skips it.
type AdminSeed struct {
	Username string
	Password string
	FullName string
}

// Seed writes the default settings (only into an empty table) and the
// admin account when one is requested. Running it twice is safe.
func Seed(ctx context.Context, db *gorm.DB, log *logrus.Logger, admin AdminSeed) error {
	created, err := service.SeedDefaultSettings(ctx, db, repository.NewSettingRepository(), log)
	if err != nil {
		return fmt.Errorf("failed to seed default settings: %w", err)
	}
	if !created {
		log.Info("Settings already present, skipping defaults")
	}

	if admin.Username == "" {
		return nil
	}

	// Seeding never issues tokens, so no JWT service or Redis is needed.
	auditService := service.NewAuditService(log, repository.NewAuditLogRepository())
	authUsecase := usecase.NewAuthUsecase(db, log, repository.NewUserRepository(), nil, nil, auditService)

	fullName := admin.FullName
	if fullName == "" {
		fullName = "Administrator"
	}

	user, err := authUsecase.CreateUser(ctx, admin.Username, admin.Password, fullName, entity.RoleAdmin)
	if err != nil {
		if err == usecase.ErrUsernameAlreadyExists {
			log.Infof("User %s already exists, skipping", admin.Username)
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Infof("Admin user %s created (id %d)", user.Username, user.ID)
	return nil
}
