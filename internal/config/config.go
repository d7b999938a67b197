package config

import (
	"fmt"

	"github.com/jasenardian/react-digital-clean/pkg/mq"
	"github.com/jasenardian/react-digital-clean/pkg/mysql"
	"github.com/jasenardian/react-digital-clean/pkg/tripay"
	"github.com/spf13/viper"
)

type Config struct {
	API      API           `mapstructure:"api"`
	Database mysql.Config  `mapstructure:"database"`
	Tripay   tripay.Config `mapstructure:"tripay"`
	TopUp    TopUp         `mapstructure:"topup"`
	MQ       mq.Config     `mapstructure:"mq"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type TopUp struct {
	MinAmount int64 `mapstructure:"min_amount"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
