package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/statiq"
	"github.com/sagarc03/statiq/database"
	statiqhttp "github.com/sagarc03/statiq/http"
)

// Config is the root configuration struct for statiq.
type Config struct {
	Server   ServerConfig          `mapstructure:"server"`
	Static   StaticConfig          `mapstructure:"static"`
	Database database.Config       `mapstructure:"database"`
	CORS     statiqhttp.CORSConfig `mapstructure:"cors"`
	Log      LogConfig             `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
	// Logging toggles per-request logging. It is external to the resolution
	// core; static.debug governs the core's own debug output.
	Logging bool `mapstructure:"logging"`
}

// StaticConfig holds the resolution rules in their textual form.
type StaticConfig struct {
	Dirs             []string          `mapstructure:"dirs"`
	IncludePath      []string          `mapstructure:"include_path"`
	IgnoreExtensions []string          `mapstructure:"ignore_extensions"`
	IgnoreDirs       []string          `mapstructure:"ignore_dirs"`
	MimeTypes        map[string]string `mapstructure:"mime_types"`
	Expires          int               `mapstructure:"expires" validate:"min=0"`
	Debug            bool              `mapstructure:"debug"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// Rules translates the textual static section into a core statiq.Config.
// When provider is non-nil it is queued ahead of the literal include_path
// roots, so database-mapped docroots take precedence.
func (c StaticConfig) Rules(provider statiq.RootProvider) statiq.Config {
	var roots []statiq.Root
	if provider != nil {
		roots = append(roots, statiq.Dynamic(provider))
	}
	for _, dir := range c.IncludePath {
		roots = append(roots, statiq.Dir(dir))
	}

	specs := make([]statiq.DirSpec, 0, len(c.Dirs))
	for _, s := range c.Dirs {
		specs = append(specs, statiq.ParseDirSpec(s))
	}

	return statiq.Config{
		IncludePath:      roots,
		Dirs:             specs,
		IgnoreExtensions: c.IgnoreExtensions,
		IgnoreDirs:       c.IgnoreDirs,
		Debug:            c.Debug,
	}
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"db-type": "database.type",
	"db-dsn":  "database.dsn",
	"port":    "server.port",
	"root":    "static.include_path",
	"expires": "static.expires",
	"debug":   "static.debug",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		// Use custom mapping if it exists, otherwise use flag name as-is
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5709)
	v.SetDefault("server.logging", true)

	v.SetDefault("static.include_path", []string{"."})
	v.SetDefault("static.ignore_extensions", statiq.DefaultIgnoreExtensions)
	v.SetDefault("static.ignore_dirs", []string{})
	v.SetDefault("static.expires", 0)
	v.SetDefault("static.debug", false)

	v.SetDefault("database.type", "")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.table", "statiq_docroots")

	v.SetDefault("log.level", "info")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("STATIQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// The database section has its own rules and is optional.
	if cfg.Database.Enabled() {
		if err := cfg.Database.Validate(); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}
