package config

import "time"

type Config interface {
	HTTPPort() string

	BufferSize() int
	WriteBufferSize() int
	HeaderSize() int
	MaxBodySize() int64
	IdleTimeout() time.Duration

	ServerName() string

	LogLevel() string
	LogDevelopment() bool

	HealthEnabled() bool
	HealthPort() string

	PprofEnabled() bool
	PprofPort() string

	// Warnings lists settings that were invalid and replaced by a default.
	Warnings() []string
}

func MustLoad() (Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg, err := parse()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *config) HTTPPort() string           { return c.httpPort }
func (c *config) BufferSize() int            { return c.bufferSize }
func (c *config) WriteBufferSize() int       { return c.writeBufferSize }
func (c *config) HeaderSize() int            { return c.headerSize }
func (c *config) MaxBodySize() int64         { return c.maxBodySize }
func (c *config) IdleTimeout() time.Duration { return c.idleTimeout }
func (c *config) ServerName() string         { return c.serverName }
func (c *config) LogLevel() string           { return c.logLevel }
func (c *config) LogDevelopment() bool       { return c.logDevelopment }
func (c *config) HealthEnabled() bool        { return c.healthEnabled }
func (c *config) HealthPort() string         { return c.healthPort }
func (c *config) PprofEnabled() bool         { return c.pprofEnabled }
func (c *config) PprofPort() string          { return c.pprofPort }
func (c *config) Warnings() []string         { return c.warnings }
