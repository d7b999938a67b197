package tripay

import "time"

const (
	EnvironmentProduction = "production"
	EnvironmentSandbox    = "sandbox"

	productionBaseURL = "https://tripay.co.id/api"
	sandboxBaseURL    = "https://tripay.co.id/api-sandbox"
)

type Config struct {
	Environment  string        `mapstructure:"environment"`
	MerchantCode string        `mapstructure:"merchant_code"`
	APIKey       string        `mapstructure:"api_key"`
	PrivateKey   string        `mapstructure:"private_key"`
	CallbackURL  string        `mapstructure:"callback_url"`
	ReturnURL    string        `mapstructure:"return_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

func (c Config) BaseURL() string {
	if c.Environment == EnvironmentProduction {
		return productionBaseURL
	}
	return sandboxBaseURL
}
