package config

// Settings are the persisted user settings. The JSON keys are the on-disk format.
type Settings struct {
	APIKey   string `json:"apiKey"`
	Endpoint string `json:"endPoint"`
	Language string `json:"lang"`
}

// LanguageOption is one entry of the language dropdown.
type LanguageOption struct {
	Value string
	Label string
}

var LanguageOptions = []LanguageOption{
	{Value: "auto", Label: "Auto detect"},
	{Value: "English", Label: "English"},
	{Value: "German", Label: "German"},
}
