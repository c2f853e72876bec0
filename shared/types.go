package shared

type Config struct {
	API      APIConfig      `mapstructure:"api" validate:"required"`
	Identity IdentityConfig `mapstructure:"identity" validate:"required"`
	Sync     SyncConfig     `mapstructure:"sync"`
}

type APIConfig struct {
	BaseURL        string `mapstructure:"baseUrl" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds" validate:"omitempty,min=1"`
}

type IdentityConfig struct {
	BaseURL string `mapstructure:"baseUrl" validate:"required,url"`
	APIKey  string `mapstructure:"apiKey"`
}

type SyncConfig struct {
	DedupeWindowSeconds int    `mapstructure:"dedupeWindowSeconds" validate:"omitempty,min=1"`
	CustomerPollSeconds int    `mapstructure:"customerPollSeconds" validate:"omitempty,min=5"`
	TimeZone            string `mapstructure:"timeZone"`
	Locale              string `mapstructure:"locale"`
}
