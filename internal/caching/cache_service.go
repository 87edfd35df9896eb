package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"glyphor/internal/models"
)

type CacheService interface {
	// Dashboard caching
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
	SetDashboardStats(ctx context.Context, stats *models.DashboardStats, ttl time.Duration) error
	GetDashboardOverview(ctx context.Context) (*models.DashboardOverview, error)
	SetDashboardOverview(ctx context.Context, overview *models.DashboardOverview, ttl time.Duration) error

	// Spike report caching
	GetSpikeReport(ctx context.Context) (*models.SpikeMonitoringReport, error)
	SetSpikeReport(ctx context.Context, report *models.SpikeMonitoringReport, ttl time.Duration) error

	// Inventory caching
	GetInventory(ctx context.Context, id int64) (*models.Inventory, error)
	SetInventory(ctx context.Context, inv *models.Inventory, ttl time.Duration) error
	DeleteInventory(ctx context.Context, id int64) error

	// Cache invalidation
	InvalidateDashboard(ctx context.Context) error
	InvalidateAllCache(ctx context.Context) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) getJSON(ctx context.Context, key string, out any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil // cache miss
		}
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) setJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	hit, err := r.getJSON(ctx, "glyphor:dashboard:stats", &stats)
	if err != nil || !hit {
		return nil, err
	}
	return &stats, nil
}

func (r *redisCacheService) SetDashboardStats(ctx context.Context, stats *models.DashboardStats, ttl time.Duration) error {
	return r.setJSON(ctx, "glyphor:dashboard:stats", stats, ttl)
}

func (r *redisCacheService) GetDashboardOverview(ctx context.Context) (*models.DashboardOverview, error) {
	var overview models.DashboardOverview
	hit, err := r.getJSON(ctx, "glyphor:dashboard:overview", &overview)
	if err != nil || !hit {
		return nil, err
	}
	return &overview, nil
}

func (r *redisCacheService) SetDashboardOverview(ctx context.Context, overview *models.DashboardOverview, ttl time.Duration) error {
	return r.setJSON(ctx, "glyphor:dashboard:overview", overview, ttl)
}

func (r *redisCacheService) GetSpikeReport(ctx context.Context) (*models.SpikeMonitoringReport, error) {
	var report models.SpikeMonitoringReport
	hit, err := r.getJSON(ctx, "glyphor:spikes:report", &report)
	if err != nil || !hit {
		return nil, err
	}
	return &report, nil
}

func (r *redisCacheService) SetSpikeReport(ctx context.Context, report *models.SpikeMonitoringReport, ttl time.Duration) error {
	return r.setJSON(ctx, "glyphor:spikes:report", report, ttl)
}

func (r *redisCacheService) GetInventory(ctx context.Context, id int64) (*models.Inventory, error) {
	var inv models.Inventory
	hit, err := r.getJSON(ctx, fmt.Sprintf("glyphor:inventory:%d", id), &inv)
	if err != nil || !hit {
		return nil, err
	}
	return &inv, nil
}

func (r *redisCacheService) SetInventory(ctx context.Context, inv *models.Inventory, ttl time.Duration) error {
	return r.setJSON(ctx, fmt.Sprintf("glyphor:inventory:%d", inv.ID), inv, ttl)
}

func (r *redisCacheService) DeleteInventory(ctx context.Context, id int64) error {
	return r.client.Del(ctx, fmt.Sprintf("glyphor:inventory:%d", id)).Err()
}

func (r *redisCacheService) InvalidateDashboard(ctx context.Context) error {
	return r.client.Del(ctx, "glyphor:dashboard:stats", "glyphor:dashboard:overview").Err()
}

func (r *redisCacheService) InvalidateAllCache(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "glyphor:*").Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
