package chapterdex

import "go.uber.org/zap"

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	driver     string
	addrs      []string
	password   string
	keyPrefix  string
	masterPath string
	logger     *zap.Logger
}

// WithMasterFile keeps the master index in a JSON file.
func WithMasterFile(path string) Option {
	return func(c *clientConfig) {
		c.driver = "file"
		c.masterPath = path
	}
}

// WithValkey keeps the master index in Valkey.
func WithValkey(addr, password string) Option {
	return func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithRedis keeps the master index in Redis.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithKeyPrefix sets the key prefix used with WithValkey and WithRedis.
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
