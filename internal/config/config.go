package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "COACH"

	appDir     = ".life-coach"
	configName = "config"
	configType = "toml"

	BackendREST  = "rest"
	BackendGenAI = "genai"
)

type Config struct {
	Completion CompletionConfig `mapstructure:"completion"`
	Secrets    SecretsConfig    `mapstructure:"secrets"`
	Session    SessionConfig    `mapstructure:"session"`
	Log        LogConfig        `mapstructure:"log"`
}

type CompletionConfig struct {
	Backend string        `mapstructure:"backend" validate:"oneof=rest genai"`
	BaseURL string        `mapstructure:"base_url" validate:"omitempty,url"`
	Model   string        `mapstructure:"model" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type SecretsConfig struct {
	// Backend is "chain" (pass, falling back to files), "pass" or "file".
	Backend string `mapstructure:"backend" validate:"oneof=chain pass file"`
	Dir     string `mapstructure:"dir" validate:"required"`
}

type SessionConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}

type LoadOptions struct {
	// Home replaces the user's home directory when set.
	Home string
	// ConfigFile is an explicit config path. It must exist when set.
	ConfigFile string
	// DotEnv is loaded into the process environment before reading config.
	// Existing variables win. A missing file is ignored.
	DotEnv string
}

// Load resolves configuration from defaults, ~/.life-coach/config.toml, .env
// and COACH_* environment variables, in increasing precedence.
func Load(opts LoadOptions) (Config, error) {
	home := opts.Home
	if home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		home = dir
	}

	if opts.DotEnv != "" {
		if err := godotenv.Load(opts.DotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", opts.DotEnv, err)
		}
	}

	v := viper.New()
	setDefaults(v, home)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Join(home, appDir))
		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.Secrets.Dir = expandHome(cfg.Secrets.Dir, home)
	cfg.Session.Path = expandHome(cfg.Session.Path, home)
	cfg.Log.File = expandHome(cfg.Log.File, home)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func Validate(cfg Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			problems := make([]string, 0, len(fieldErrs))
			for _, fieldErr := range fieldErrs {
				problems = append(problems, fmt.Sprintf("%s failed %q", fieldErr.Namespace(), fieldErr.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

func setDefaults(v *viper.Viper, home string) {
	base := filepath.Join(home, appDir)

	v.SetDefault("completion.backend", BackendREST)
	v.SetDefault("completion.base_url", "")
	v.SetDefault("completion.model", "gemini-pro")
	v.SetDefault("completion.timeout", 60*time.Second)
	v.SetDefault("secrets.backend", "chain")
	v.SetDefault("secrets.dir", filepath.Join(base, "secrets"))
	v.SetDefault("session.path", filepath.Join(base, "session.toml"))
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
