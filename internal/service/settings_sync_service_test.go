package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/repository"
	"dental-clinic/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaultSettings_OnlyIntoEmptyTable(t *testing.T) {
	db := testutil.NewDB(t)
	log := testutil.NewLogger()
	repo := repository.NewSettingRepository()
	ctx := context.Background()

	created, err := SeedDefaultSettings(ctx, db, repo, log)
	require.NoError(t, err)
	assert.True(t, created)

	count, err := repo.Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(len(DefaultSettings())), count)

	created, err = SeedDefaultSettings(ctx, db, repo, log)
	require.NoError(t, err)
	assert.False(t, created)

	again, err := repo.Count(db)
	require.NoError(t, err)
	assert.Equal(t, count, again)

	format, err := repo.FindByKey(db, entity.SettingKeyPatientIDFormat)
	require.NoError(t, err)
	var parsed entity.PatientIDFormat
	require.NoError(t, json.Unmarshal(format.SettingValue, &parsed))
	assert.Equal(t, entity.DefaultPatientIDFormat, parsed)
}

func TestSettingsSyncService_WarmsCache(t *testing.T) {
	db := testutil.NewDB(t)
	log := testutil.NewLogger()
	mr, client := testutil.NewRedis(t)
	ctx := context.Background()

	_, err := SeedDefaultSettings(ctx, db, repository.NewSettingRepository(), log)
	require.NoError(t, err)

	cache := NewSettingsCache(client, time.Minute, log)
	require.NoError(t, NewSettingsSyncService(db, client, cache, log).SyncOnStartup(ctx))

	var all []dto.SettingResponse
	require.True(t, cache.Get(ctx, SettingsCacheKeyAll, &all))
	assert.Len(t, all, len(DefaultSettings()))

	var single dto.SettingResponse
	require.True(t, cache.Get(ctx, SettingsKeyCacheKey(entity.SettingKeyClinicInfo), &single))
	assert.Equal(t, entity.SettingKeyClinicInfo, single.SettingKey)

	var exam []dto.SettingResponse
	require.True(t, cache.Get(ctx, SettingsCategoryCacheKey("dental_examination"), &exam))
	assert.Len(t, exam, 2)

	assert.True(t, mr.TTL(RedisSettingsKeyPrefix+SettingsCacheKeyAll) > 0)

	cache.Invalidate(ctx)
	assert.Empty(t, mr.Keys())
}

func TestSettingsSyncService_RedisDown(t *testing.T) {
	db := testutil.NewDB(t)
	log := testutil.NewLogger()
	mr, client := testutil.NewRedis(t)
	mr.Close()

	cache := NewSettingsCache(client, time.Minute, log)
	err := NewSettingsSyncService(db, client, cache, log).SyncOnStartup(context.Background())
	assert.Error(t, err)
}

func TestSettingsCache_NilClientIsMiss(t *testing.T) {
	var cache *SettingsCache
	var dest []dto.SettingResponse
	assert.False(t, cache.Get(context.Background(), SettingsCacheKeyAll, &dest))
	cache.Set(context.Background(), SettingsCacheKeyAll, dest)
	cache.Invalidate(context.Background())
}
