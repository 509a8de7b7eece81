package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"molten_balance/internal/engine"
	"molten_balance/internal/models"
	"molten_balance/internal/publisher"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const envPrefix = "BALANCE"

// Config is the process configuration read from configs/config.yml and
// BALANCE_* environment variables.
type Config struct {
	Port      string           `mapstructure:"port"`
	DB        DBConfig         `mapstructure:"db"`
	Log       LogConfig        `mapstructure:"log"`
	Auth      AuthConfig       `mapstructure:"auth"`
	Recompute RecomputeConfig  `mapstructure:"recompute"`
	Shift     ShiftConfig      `mapstructure:"shift"`
	Engine    EngineConfig     `mapstructure:"engine"`
	Publisher publisher.Config `mapstructure:"publisher"`
	Seed      SeedConfig       `mapstructure:"seed"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type RecomputeConfig struct {
	Tick time.Duration `mapstructure:"tick"`
}

type ShiftConfig struct {
	StartHour int    `mapstructure:"start_hour"`
	Timezone  string `mapstructure:"timezone"` // IANA name or "Local"
}

type EngineConfig struct {
	LagReference engine.LagReference `mapstructure:"lag_reference"`
	Thresholds   engine.Thresholds   `mapstructure:"thresholds"`
}

type SeedConfig struct {
	ParamsFile string `mapstructure:"params_file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "balance.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("recompute.tick", 10*time.Second)
	v.SetDefault("shift.start_hour", 7)
	v.SetDefault("shift.timezone", "Local")

	ref := engine.DefaultLagReference()
	v.SetDefault("engine.lag_reference.charge_rate", ref.ChargeRate)
	v.SetDefault("engine.lag_reference.blast_volume", ref.BlastVolume)
	v.SetDefault("engine.lag_reference.oxygen_pct", ref.OxygenPct)
	v.SetDefault("engine.lag_reference.humidification", ref.Humidification)
	v.SetDefault("engine.lag_reference.reduction_eff", ref.ReductionEff)

	th := engine.DefaultThresholds()
	v.SetDefault("engine.thresholds.rate_low", th.RateLow)
	v.SetDefault("engine.thresholds.rate_caution", th.RateCaution)
	v.SetDefault("engine.thresholds.rate_critical", th.RateCritical)
	v.SetDefault("engine.thresholds.ton_advisory", th.TonAdvisory)
	v.SetDefault("engine.thresholds.ton_excess", th.TonExcess)
	v.SetDefault("engine.thresholds.ton_emergency", th.TonEmergency)

	v.SetDefault("publisher.kind", publisher.KindNone)
	v.SetDefault("publisher.mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("publisher.mqtt.client_id", "molten-balance")
	v.SetDefault("publisher.mqtt.topic_prefix", "furnace")
	v.SetDefault("publisher.mqtt.username", "")
	v.SetDefault("publisher.mqtt.password", "")
	v.SetDefault("publisher.kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("publisher.kafka.topic", "furnace.balance")

	v.SetDefault("seed.params_file", "configs/params.yml")
}

// Load reads config.yml from the given directories (default "configs").
// A missing file is not an error; defaults and environment still apply.
func Load(dirs ...string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if len(dirs) == 0 {
		dirs = []string{"configs"}
	}
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// EngineSettings resolves the shift timezone and builds engine settings.
func (c Config) EngineSettings() (engine.Settings, error) {
	loc := time.Local
	if tz := strings.TrimSpace(c.Shift.Timezone); tz != "" && !strings.EqualFold(tz, "local") {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return engine.Settings{}, fmt.Errorf("load shift timezone %q: %w", tz, err)
		}
		loc = l
	}
	return engine.Settings{
		ShiftStartHour: c.Shift.StartHour,
		Location:       loc,
		LagReference:   c.Engine.LagReference,
		Thresholds:     c.Engine.Thresholds,
	}, nil
}

// LoadSeedParams decodes the operating parameters used before an operator
// has saved any. A missing file yields a zero snapshot and no error.
func LoadSeedParams(path string) (models.OperatingParams, error) {
	if path == "" {
		return models.OperatingParams{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.OperatingParams{}, nil
		}
		return models.OperatingParams{}, fmt.Errorf("read seed params %q: %w", path, err)
	}
	var p models.OperatingParams
	if err := yaml.Unmarshal(b, &p); err != nil {
		return models.OperatingParams{}, fmt.Errorf("decode seed params %q: %w", path, err)
	}
	return p, nil
}
