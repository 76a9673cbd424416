package config

import "github.com/spf13/viper"

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr    string
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	FabLab struct {
		// How far ahead a member may book, in days.
		BookingHorizonDays int `mapstructure:"booking_horizon_days"`
	} `mapstructure:"fablab"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	// ENV overrides (APP_*) win over the file.
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	v.SetDefault("fablab.booking_horizon_days", 30)

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
