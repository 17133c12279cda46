package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/the-profit-must-flow/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Defaults for the web server.
const (
	DefaultAddr            = ":8501"
	DefaultMaxUploadBytes  = 10 << 20
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultGinMode         = "release"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "PROFIT"

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// BindEnv makes v honor PROFIT_* environment variables, so that
// "server.addr" is read from PROFIT_SERVER_ADDR.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
}

// ServerConfig holds settings for the upload form server.
type ServerConfig struct {
	Addr            string        `validate:"required,hostname_port"`
	GinMode         string        `validate:"oneof=debug release test"`
	MaxUploadBytes  int64         `validate:"gt=0"`
	ReadTimeout     time.Duration `validate:"gt=0"`
	WriteTimeout    time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
	MetricsEnabled  bool
}

// DefaultServerConfig returns the server configuration with defaults applied.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            DefaultAddr,
		GinMode:         DefaultGinMode,
		MaxUploadBytes:  DefaultMaxUploadBytes,
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		MetricsEnabled:  true,
	}
}

// SetDefaults registers server defaults on v so that env vars and config
// files can override individual keys.
func SetDefaults(v *viper.Viper) {
	d := DefaultServerConfig()
	v.SetDefault("server.addr", d.Addr)
	v.SetDefault("server.gin_mode", d.GinMode)
	v.SetDefault("server.max_upload_bytes", d.MaxUploadBytes)
	v.SetDefault("server.read_timeout", d.ReadTimeout)
	v.SetDefault("server.write_timeout", d.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.ShutdownTimeout)
	v.SetDefault("server.metrics_enabled", d.MetricsEnabled)
}

// LoadServerConfig reads the server section from v and validates it.
// Precedence follows viper: flags, PROFIT_SERVER_* env vars, config file,
// then defaults.
func LoadServerConfig(v *viper.Viper) (*ServerConfig, error) {
	SetDefaults(v)

	cfg := ServerConfig{
		Addr:            v.GetString("server.addr"),
		GinMode:         v.GetString("server.gin_mode"),
		MaxUploadBytes:  v.GetInt64("server.max_upload_bytes"),
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		MetricsEnabled:  v.GetBool("server.metrics_enabled"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c ServerConfig) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		problems = append(problems, fmt.Sprintf("server.%s failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", common.ErrInvalidConfig, strings.Join(problems, ", "))
}
