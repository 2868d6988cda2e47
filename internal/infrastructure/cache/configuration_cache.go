// Package cache guarda en Redis la configuración de stock, leída en cada reubicación nueva.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/jhoicas/stock-relocation/internal/domain/repository"
	"github.com/jhoicas/stock-relocation/pkg/config"
	"github.com/jhoicas/stock-relocation/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	configurationKey = "stock:configuration"

	maxRetries      = 3
	minRetryBackoff = 100 * time.Millisecond
	maxRetryBackoff = 300 * time.Millisecond
	dialTimeout     = 5 * time.Second
	readTimeout     = 3 * time.Second
	writeTimeout    = 3 * time.Second
)

var _ repository.StockConfigurationRepository = (*ConfigurationCache)(nil)

// Connect abre el cliente Redis y verifica la conexión.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.Addr,
		Password:        cfg.Password,
		DB:              cfg.DB,
		MaxRetries:      maxRetries,
		MinRetryBackoff: minRetryBackoff,
		MaxRetryBackoff: maxRetryBackoff,
		DialTimeout:     dialTimeout,
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
	})
	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// ConfigurationCache lectura con caché (read-through) sobre el repositorio de configuración.
// Save escribe en la BD e invalida la clave. Si Redis falla se lee directo de la BD.
type ConfigurationCache struct {
	next   repository.StockConfigurationRepository
	client redis.Cmdable
	ttl    time.Duration
	log    *logger.Logger
}

// NewConfigurationCache envuelve next con la caché Redis.
func NewConfigurationCache(next repository.StockConfigurationRepository, client redis.Cmdable, ttl time.Duration, log *logger.Logger) *ConfigurationCache {
	return &ConfigurationCache{next: next, client: client, ttl: ttl, log: log.Component("config_cache")}
}

// Get devuelve la configuración desde Redis o, si no está, desde la BD (y la guarda en Redis).
func (c *ConfigurationCache) Get(ctx context.Context) (*entity.StockConfiguration, error) {
	raw, err := c.client.Get(ctx, configurationKey).Bytes()
	switch {
	case err == nil:
		var cfg entity.StockConfiguration
		if jerr := json.Unmarshal(raw, &cfg); jerr == nil {
			return &cfg, nil
		}
		c.log.Warn().Msg("valor de caché corrupto, se descarta")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Msg("redis no disponible, lectura directa")
		return c.next.Get(ctx)
	}

	cfg, err := c.next.Get(ctx)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(cfg); err == nil {
		if err := c.client.Set(ctx, configurationKey, raw, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Msg("no se pudo cachear la configuración")
		}
	}
	return cfg, nil
}

// Save persiste la configuración e invalida la caché.
func (c *ConfigurationCache) Save(ctx context.Context, cfg *entity.StockConfiguration) error {
	if err := c.next.Save(ctx, cfg); err != nil {
		return err
	}
	if err := c.client.Del(ctx, configurationKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("no se pudo invalidar la caché de configuración")
	}
	return nil
}
