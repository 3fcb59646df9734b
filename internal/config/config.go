package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds runtime configuration. Values come from built-in defaults, an
// optional config file, CHECKLIST_* env vars and CLI flags (highest wins).
type Config struct {
	Dir             string            `mapstructure:"dir"`
	Format          string            `mapstructure:"format"`
	Pretty          bool              `mapstructure:"pretty"`
	Addr            string            `mapstructure:"addr"`
	Glyphs          string            `mapstructure:"glyphs"`
	DayRolloverHour int               `mapstructure:"day_rollover_hour"`
	Slots           map[string]string `mapstructure:"slots"`
	DebugLog        string            `mapstructure:"debug_log"`
}

// DefaultSlots maps checklist names to run-log slot labels.
func DefaultSlots() map[string]string {
	return map[string]string{
		"morning": "Day",
		"night":   "Night",
	}
}

// DefaultDir is ~/.checklist (or CHECKLIST_CONFIG_DIR when set, for tests).
func DefaultDir() string {
	if v := strings.TrimSpace(os.Getenv("CHECKLIST_CONFIG_DIR")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".checklist"
	}
	return filepath.Join(home, ".checklist")
}

// New returns a viper instance with defaults and env binding applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("dir", "")
	v.SetDefault("format", "json")
	v.SetDefault("pretty", false)
	v.SetDefault("addr", "127.0.0.1:5001")
	v.SetDefault("glyphs", "unicode")
	v.SetDefault("day_rollover_hour", 6)
	v.SetDefault("slots", DefaultSlots())
	v.SetDefault("debug_log", "")

	v.SetEnvPrefix("CHECKLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every flag in fs to the viper key of the same name
// (dashes become underscores).
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		err = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
	return err
}

// ReadFile reads cfgFile, or <dir>/config.yaml when cfgFile is empty. A missing
// default config file is not an error.
func ReadFile(v *viper.Viper, cfgFile string) error {
	if strings.TrimSpace(cfgFile) != "" {
		v.SetConfigFile(cfgFile)
		return v.ReadInConfig()
	}
	dir := strings.TrimSpace(v.GetString("dir"))
	if dir == "" {
		dir = DefaultDir()
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// Load unmarshals v into a Config and fills derived defaults.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Dir = strings.TrimSpace(cfg.Dir)
	if cfg.Dir == "" {
		cfg.Dir = DefaultDir()
	}
	if cfg.DayRolloverHour < 0 || cfg.DayRolloverHour > 23 {
		return Config{}, errors.New("config: day_rollover_hour must be between 0 and 23")
	}
	if len(cfg.Slots) == 0 {
		cfg.Slots = DefaultSlots()
	}
	return cfg, nil
}
