package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
		TimeoutSec  int   `mapstructure:"timeout_sec"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN      string
		MaxConns int32 `mapstructure:"max_conns"`
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

// Load reads the YAML file at path. Values can be overridden with APP_*
// variables (APP_POSTGRES_DSN, APP_TELEGRAM_TOKEN, ...), which are also picked
// up from a .env file in the working directory.
func Load(path string) (Config, error) {
	_ = gotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "prod")
	v.SetDefault("app.timezone", "Europe/Moscow")
	v.SetDefault("telegram.timeout_sec", 30)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("postgres.max_conns", 4)
	v.SetDefault("metrics.enabled", true)

	// AutomaticEnv only applies to keys viper already knows about.
	for _, k := range []string{"postgres.dsn", "telegram.token", "telegram.admin_chat_id"} {
		_ = v.BindEnv(k)
	}

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Postgres.DSN == "" {
		return errors.New("config: postgres.dsn is required")
	}
	if c.Telegram.Token != "" && c.Telegram.AdminChatID == 0 {
		return errors.New("config: telegram.admin_chat_id is required when the bot is enabled")
	}
	return nil
}

// BotEnabled reports whether a Telegram token is configured.
func (c Config) BotEnabled() bool { return c.Telegram.Token != "" }
