package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	rdb          *redis.Client
	keyGenerator *RedisKeyGenerator
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
}

func NewClient(config *RedisConfig, keyGenerator *RedisKeyGenerator) (*Client, error) {
	opts := &redis.Options{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password:     config.Password,
		DB:           config.Database,
		MaxRetries:   3,
		PoolSize:     10,
		PoolTimeout:  30 * time.Second,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MinIdleConns: 2,
	}

	rdb := redis.NewClient(opts)

	client := &Client{
		rdb:          rdb,
		keyGenerator: keyGenerator,
	}

	// Teste de conexão
	if err := client.Ping(context.Background()); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c.rdb == nil {
		return fmt.Errorf("Redis client is nil")
	}

	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	return nil
}

func (c *Client) Close() {
	if c.rdb != nil {
		c.rdb.Close()
	}
}

func (c *Client) Client() *redis.Client {
	return c.rdb
}

func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	result := c.rdb.Get(ctx, key)
	if result.Err() == redis.Nil {
		return "", redis.Nil // Conservar o erro redis.Nil nativo
	}
	return result.Val(), result.Err()
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	result := c.rdb.Exists(ctx, key)
	return result.Val() > 0, result.Err()
}

func (c *Client) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return c.rdb.Expire(ctx, key, expiration).Err()
}

func (c *Client) SAdd(ctx context.Context, key string, members ...interface{}) error {
	return c.rdb.SAdd(ctx, key, members...).Err()
}

func (c *Client) SIsMember(ctx context.Context, key string, member interface{}) (bool, error) {
	return c.rdb.SIsMember(ctx, key, member).Result()
}

func (c *Client) SMembers(ctx context.Context, key string) ([]string, error) {
	return c.rdb.SMembers(ctx, key).Result()
}

func (c *Client) HealthCheck(ctx context.Context) error {
	if err := c.Ping(ctx); err != nil {
		return err
	}

	stats := c.rdb.PoolStats()
	if stats.TotalConns == 0 {
		return fmt.Errorf("no Redis connections available")
	}

	return nil
}

func (c *Client) Stats() *redis.PoolStats {
	return c.rdb.PoolStats()
}

// ============================================
// MÉTODOS COM GERAÇÃO AUTOMÁTICA DE CHAVES
// ============================================

// SetWithPattern salva um valor com um padrão de chave convencionado
func (c *Client) SetWithPattern(ctx context.Context, patternName, tenantCode string, value interface{}, identifier ...string) error {
	key, err := c.keyGenerator.GenerateKey(patternName, tenantCode, identifier...)
	if err != nil {
		return fmt.Errorf("erro na geração da chave: %w", err)
	}

	ttl, err := c.keyGenerator.GetTTL(patternName)
	if err != nil {
		return fmt.Errorf("erro na recuperação do TTL: %w", err)
	}

	var duration time.Duration
	if ttl > 0 {
		duration = time.Duration(ttl) * time.Second
	}

	return c.rdb.Set(ctx, key, value, duration).Err()
}

// GetWithPattern recupera um valor com um padrão de chave convencionado
func (c *Client) GetWithPattern(ctx context.Context, patternName, tenantCode string, identifier ...string) (string, error) {
	key, err := c.keyGenerator.GenerateKey(patternName, tenantCode, identifier...)
	if err != nil {
		return "", fmt.Errorf("erro na geração da chave: %w", err)
	}

	result := c.rdb.Get(ctx, key)
	if result.Err() == redis.Nil {
		return "", redis.Nil
	}
	return result.Val(), result.Err()
}

// DelWithPattern remove um valor com um padrão de chave convencionado
func (c *Client) DelWithPattern(ctx context.Context, patternName, tenantCode string, identifier ...string) error {
	key, err := c.keyGenerator.GenerateKey(patternName, tenantCode, identifier...)
	if err != nil {
		return fmt.Errorf("erro na geração da chave: %w", err)
	}

	return c.rdb.Del(ctx, key).Err()
}

// GenerateKey expõe a geração de chave para uso direto
func (c *Client) GenerateKey(patternName, tenantCode string, identifier ...string) (string, error) {
	return c.keyGenerator.GenerateKey(patternName, tenantCode, identifier...)
}

// InvalidateDomainCache invalida todas as chaves de um domínio/contexto do tenant
func (c *Client) InvalidateDomainCache(ctx context.Context, tenantCode, domain, context string) error {
	pattern := c.keyGenerator.GenerateWildcardPattern(tenantCode, domain, context)

	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		return fmt.Errorf("erro na recuperação das chaves do padrão: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	return c.rdb.Del(ctx, keys...).Err()
}
