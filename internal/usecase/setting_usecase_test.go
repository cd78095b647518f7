package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/repository"
	"dental-clinic/internal/service"
	"dental-clinic/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingUsecase(t *testing.T, env *testEnv) (SettingUsecase, *miniredis.Miniredis) {
	t.Helper()
	mr, client := testutil.NewRedis(t)
	cache := service.NewSettingsCache(client, time.Minute, env.log)
	return NewSettingUsecase(env.db, env.log, repository.NewSettingRepository(), cache, env.audit), mr
}

func TestSettingGetByKey_CachesAndInvalidates(t *testing.T) {
	env := newTestEnv(t)
	uc, mr := newSettingUsecase(t, env)
	ctx := context.Background()

	created, err := service.SeedDefaultSettings(ctx, env.db, repository.NewSettingRepository(), env.log)
	require.NoError(t, err)
	require.True(t, created)

	cacheKey := service.RedisSettingsKeyPrefix + service.SettingsKeyCacheKey(entity.SettingKeyClinicInfo)

	setting, err := uc.GetByKey(ctx, entity.SettingKeyClinicInfo)
	require.NoError(t, err)
	assert.Equal(t, "clinic_info", setting.Category)
	assert.True(t, mr.Exists(cacheKey))

	_, err = uc.GetAll(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists(service.RedisSettingsKeyPrefix+service.SettingsCacheKeyAll))

	updated, err := uc.UpdateByKey(ctx, entity.SettingKeyClinicInfo, &dto.UpdateSettingRequest{
		SettingValue: json.RawMessage(`{"name":"Bright Smile Dental"}`),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Bright Smile Dental"}`, string(updated.SettingValue))
	assert.Empty(t, mr.Keys())

	reread, err := uc.GetByKey(ctx, entity.SettingKeyClinicInfo)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Bright Smile Dental"}`, string(reread.SettingValue))
}

func TestSettingCreate(t *testing.T) {
	env := newTestEnv(t)
	uc, _ := newSettingUsecase(t, env)
	ctx := context.Background()

	_, err := uc.Create(ctx, &dto.CreateSettingRequest{SettingKey: "broken", SettingValue: json.RawMessage(`{oops`), Category: "misc"})
	assert.ErrorIs(t, err, ErrInvalidSettingValue)

	_, err = uc.Create(ctx, &dto.CreateSettingRequest{SettingKey: "currency", SettingValue: json.RawMessage(`"USD"`), Category: "billing"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, &dto.CreateSettingRequest{SettingKey: "currency", SettingValue: json.RawMessage(`"EUR"`), Category: "billing"})
	assert.ErrorIs(t, err, ErrSettingExists)

	byCategory, err := uc.GetByCategory(ctx, "billing")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.JSONEq(t, `"USD"`, string(byCategory[0].SettingValue))

	_, err = uc.GetByKey(ctx, "missing")
	assert.ErrorIs(t, err, ErrSettingNotFound)
}

func TestSettingUploadLogo_RejectsNonImage(t *testing.T) {
	env := newTestEnv(t)
	uc, _ := newSettingUsecase(t, env)

	_, err := uc.UploadLogo(context.Background(), []byte("plain text"))
	assert.ErrorIs(t, err, service.ErrUnsupportedImage)
}

func TestSettingsWithoutRedis(t *testing.T) {
	env := newTestEnv(t)
	mr, client := testutil.NewRedis(t)
	uc := NewSettingUsecase(env.db, env.log, repository.NewSettingRepository(),
		service.NewSettingsCache(client, time.Minute, env.log), env.audit)
	ctx := context.Background()

	_, err := uc.Create(ctx, &dto.CreateSettingRequest{SettingKey: "currency", SettingValue: json.RawMessage(`"USD"`), Category: "billing"})
	require.NoError(t, err)

	// a dead cache is a miss, the database still answers
	mr.Close()
	setting, err := uc.GetByKey(ctx, "currency")
	require.NoError(t, err)
	assert.Equal(t, "billing", setting.Category)
}
