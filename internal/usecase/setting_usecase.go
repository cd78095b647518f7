package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"dental-clinic/internal/converter"
	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/domain/repository"
	"dental-clinic/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrSettingNotFound     = errors.New("setting not found")
	ErrSettingExists       = errors.New("setting key already exists")
	ErrInvalidSettingValue = errors.New("setting value must be valid JSON")
)

const (
	auditEntitySetting = "setting"

	settingCategoryClinicInfo = "clinic_info"
)

// SettingUsecase serves the key/value settings. Reads go through the Redis
// cache; every write drops the cached entries after commit.
type SettingUsecase interface {
	Create(ctx context.Context, req *dto.CreateSettingRequest) (*dto.SettingResponse, error)
	GetAll(ctx context.Context) ([]dto.SettingResponse, error)
	GetByID(ctx context.Context, id int) (*dto.SettingResponse, error)
	GetByKey(ctx context.Context, key string) (*dto.SettingResponse, error)
	GetByCategory(ctx context.Context, category string) ([]dto.SettingResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error)
	UpdateByKey(ctx context.Context, key string, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error)
	Delete(ctx context.Context, id int) error
	// UploadLogo stores the resized image in clinic_info.logo.
	UploadLogo(ctx context.Context, data []byte) (*dto.SettingResponse, error)
}

type settingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	settingRepo  repository.SettingRepository
	cache        *service.SettingsCache
	auditService service.AuditService
}

func NewSettingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	settingRepo repository.SettingRepository,
	cache *service.SettingsCache,
	auditService service.AuditService,
) SettingUsecase {
	return &settingUsecase{
		db:           db,
		log:          log,
		settingRepo:  settingRepo,
		cache:        cache,
		auditService: auditService,
	}
}

func (u *settingUsecase) Create(ctx context.Context, req *dto.CreateSettingRequest) (*dto.SettingResponse, error) {
	if !json.Valid(req.SettingValue) {
		return nil, ErrInvalidSettingValue
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	setting := &entity.Setting{
		SettingKey:   req.SettingKey,
		SettingValue: datatypes.JSON(req.SettingValue),
		Category:     req.Category,
	}

	if err := u.settingRepo.Create(tx, setting); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrSettingExists
		}
		u.log.Warnf("Failed to create setting: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditEntitySetting, setting.ID, setting); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	u.cache.Invalidate(ctx)

	return converter.SettingToResponse(setting), nil
}

func (u *settingUsecase) GetAll(ctx context.Context) ([]dto.SettingResponse, error) {
	cacheKey := service.SettingsCacheKeyAll

	var cached []dto.SettingResponse
	if u.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	settings, err := u.settingRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find settings: %+v", err)
		return nil, err
	}

	responses := converter.SettingsToResponses(settings)
	u.cache.Set(ctx, cacheKey, responses)
	return responses, nil
}

func (u *settingUsecase) GetByID(ctx context.Context, id int) (*dto.SettingResponse, error) {
	setting, err := u.settingRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSettingNotFound
		}
		u.log.Warnf("Failed to find setting: %+v", err)
		return nil, err
	}
	return converter.SettingToResponse(setting), nil
}

func (u *settingUsecase) GetByKey(ctx context.Context, key string) (*dto.SettingResponse, error) {
	cacheKey := service.SettingsKeyCacheKey(key)

	var cached dto.SettingResponse
	if u.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	setting, err := u.findByKey(u.db.WithContext(ctx), key)
	if err != nil {
		return nil, err
	}

	response := converter.SettingToResponse(setting)
	u.cache.Set(ctx, cacheKey, response)
	return response, nil
}

func (u *settingUsecase) GetByCategory(ctx context.Context, category string) ([]dto.SettingResponse, error) {
	cacheKey := service.SettingsCategoryCacheKey(category)

	var cached []dto.SettingResponse
	if u.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	settings, err := u.settingRepo.FindByCategory(u.db.WithContext(ctx), category)
	if err != nil {
		u.log.Warnf("Failed to find settings: %+v", err)
		return nil, err
	}

	responses := converter.SettingsToResponses(settings)
	u.cache.Set(ctx, cacheKey, responses)
	return responses, nil
}

func (u *settingUsecase) Update(ctx context.Context, id int, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error) {
	return u.update(ctx, req, func(tx *gorm.DB) (*entity.Setting, error) {
		setting, err := u.settingRepo.FindByID(tx, id)
		if err != nil {
			if isNotFound(err) {
				return nil, ErrSettingNotFound
			}
			u.log.Warnf("Failed to find setting: %+v", err)
			return nil, err
		}
		return setting, nil
	})
}

func (u *settingUsecase) UpdateByKey(ctx context.Context, key string, req *dto.UpdateSettingRequest) (*dto.SettingResponse, error) {
	return u.update(ctx, req, func(tx *gorm.DB) (*entity.Setting, error) {
		return u.findByKey(tx, key)
	})
}

func (u *settingUsecase) update(ctx context.Context, req *dto.UpdateSettingRequest, find func(tx *gorm.DB) (*entity.Setting, error)) (*dto.SettingResponse, error) {
	if len(req.SettingValue) > 0 && !json.Valid(req.SettingValue) {
		return nil, ErrInvalidSettingValue
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	setting, err := find(tx)
	if err != nil {
		return nil, err
	}
	old := *setting

	var f fieldSetter
	f.setString(&setting.Category, req.Category)
	if len(req.SettingValue) > 0 {
		setting.SettingValue = datatypes.JSON(req.SettingValue)
		f.mark()
	}
	if !f.changed {
		return nil, ErrEmptyUpdate
	}

	if err := u.save(ctx, tx, &old, setting); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	u.cache.Invalidate(ctx)

	return converter.SettingToResponse(setting), nil
}

func (u *settingUsecase) Delete(ctx context.Context, id int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	setting, err := u.settingRepo.FindByID(tx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrSettingNotFound
		}
		u.log.Warnf("Failed to find setting: %+v", err)
		return err
	}

	if err := u.settingRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete setting: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, auditEntitySetting, id, setting); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	u.cache.Invalidate(ctx)
	return nil
}

func (u *settingUsecase) UploadLogo(ctx context.Context, data []byte) (*dto.SettingResponse, error) {
	logo, err := service.ProcessLogo(data)
	if err != nil {
		if !errors.Is(err, service.ErrUnsupportedImage) {
			u.log.Warnf("Failed to process logo: %+v", err)
		}
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	setting, err := u.settingRepo.FindByKey(tx, entity.SettingKeyClinicInfo)
	if err != nil && !isNotFound(err) {
		u.log.Warnf("Failed to find setting: %+v", err)
		return nil, err
	}

	info := map[string]interface{}{}
	if setting != nil {
		if err := json.Unmarshal(setting.SettingValue, &info); err != nil {
			u.log.Warnf("Replacing unreadable clinic_info value: %+v", err)
			info = map[string]interface{}{}
		}
	}
	info["logo"] = logo

	raw, err := json.Marshal(info)
	if err != nil {
		return nil, err
	}

	if setting == nil {
		setting = &entity.Setting{
			SettingKey:   entity.SettingKeyClinicInfo,
			SettingValue: datatypes.JSON(raw),
			Category:     settingCategoryClinicInfo,
		}
		if err := u.settingRepo.Create(tx, setting); err != nil {
			u.log.Warnf("Failed to create setting: %+v", err)
			return nil, err
		}
		if err := u.auditService.LogCreate(ctx, tx, auditEntitySetting, setting.ID, setting); err != nil {
			return nil, err
		}
	} else {
		old := *setting
		setting.SettingValue = datatypes.JSON(raw)
		if err := u.save(ctx, tx, &old, setting); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	u.cache.Invalidate(ctx)

	return converter.SettingToResponse(setting), nil
}

func (u *settingUsecase) save(ctx context.Context, tx *gorm.DB, old, setting *entity.Setting) error {
	if err := u.settingRepo.Update(tx, setting); err != nil {
		u.log.Warnf("Failed to update setting: %+v", err)
		return err
	}
	return u.auditService.LogUpdate(ctx, tx, auditEntitySetting, setting.ID, old, setting)
}

func (u *settingUsecase) findByKey(db *gorm.DB, key string) (*entity.Setting, error) {
	setting, err := u.settingRepo.FindByKey(db, key)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSettingNotFound
		}
		u.log.Warnf("Failed to find setting: %+v", err)
		return nil, err
	}
	return setting, nil
}
