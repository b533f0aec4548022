package config

const (
	DefaultAPIKey   = "1234567890"
	DefaultEndpoint = "https://YOURNAME.openai.azure.com"
	DefaultLanguage = "English"
)

func Defaults() Settings {
	return Settings{
		APIKey:   DefaultAPIKey,
		Endpoint: DefaultEndpoint,
		Language: DefaultLanguage,
	}
}
