package service

import (
	"context"
	"fmt"
	"time"

	"dental-clinic/internal/converter"
	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// syncBatchSize bounds how many settings are read and pipelined at once.
const syncBatchSize = 500

// SettingsSyncService loads the settings table into the Redis cache so the
// first reads after a restart or a Redis flush do not all hit PostgreSQL.
type SettingsSyncService struct {
	db          *gorm.DB
	redisClient *redis.Client
	cache       *SettingsCache
	log         *logrus.Logger
}

func NewSettingsSyncService(db *gorm.DB, redisClient *redis.Client, cache *SettingsCache, log *logrus.Logger) *SettingsSyncService {
	return &SettingsSyncService{
		db:          db,
		redisClient: redisClient,
		cache:       cache,
		log:         log,
	}
}

// SyncOnStartup warms the per-key, per-category and full-list cache
// entries. Rows are read in batches and each batch is written with its own
// pipeline so memory stays flat however large the table grows.
//
// Call it before accepting traffic. A failure only means a cold cache.
func (s *SettingsSyncService) SyncOnStartup(ctx context.Context) error {
	s.log.Info("Starting settings cache sync from database...")
	startTime := time.Now()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping settings sync: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	var (
		all        []dto.SettingResponse
		byCategory = make(map[string][]dto.SettingResponse)
		offset     int
	)

	for {
		var rows []entity.Setting
		err := s.db.WithContext(ctx).
			Order("id ASC").
			Limit(syncBatchSize).
			Offset(offset).
			Find(&rows).Error
		if err != nil {
			s.log.Errorf("Failed to query settings at offset %d: %+v", offset, err)
			return fmt.Errorf("query settings at offset %d: %w", offset, err)
		}

		if len(rows) == 0 {
			break
		}

		entries := make(map[string]interface{}, len(rows))
		for i := range rows {
			response := converter.SettingToResponse(&rows[i])
			entries[SettingsKeyCacheKey(response.SettingKey)] = response
			all = append(all, *response)
			byCategory[response.Category] = append(byCategory[response.Category], *response)
		}

		if err := s.cache.SetMany(ctx, entries); err != nil {
			s.log.Errorf("Failed to write settings batch at offset %d: %+v", offset, err)
			return fmt.Errorf("pipeline exec at offset %d: %w", offset, err)
		}

		if len(rows) < syncBatchSize {
			break
		}
		offset += syncBatchSize

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	lists := make(map[string]interface{}, len(byCategory)+1)
	if all == nil {
		all = []dto.SettingResponse{}
	}
	lists[SettingsCacheKeyAll] = all
	for category, settings := range byCategory {
		lists[SettingsCategoryCacheKey(category)] = settings
	}
	if err := s.cache.SetMany(ctx, lists); err != nil {
		s.log.Errorf("Failed to write settings lists: %+v", err)
		return err
	}

	s.log.Infof("Settings cache sync completed: %d settings in %v", len(all), time.Since(startTime))
	return nil
}
