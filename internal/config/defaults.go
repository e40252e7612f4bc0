package config

const (
	defaultDataDir            = "~/.local/share/stash"
	defaultLogDir             = "~/.local/share/stash/logs"
	defaultAPIBind            = "127.0.0.1:8080"
	defaultTokenTTLMinutes    = 30
	defaultBcryptCost         = 12
	defaultYouTubeBaseURL     = "https://www.youtube.com"
	defaultYouTubeTimeout     = 15
	defaultYouTubeRPM         = 30
	defaultGroqBaseURL        = "https://api.groq.com/openai/v1"
	defaultGroqModel          = "llama-3.3-70b-versatile"
	defaultGroqTimeout        = 30
	defaultMaxTranscriptChars = 4000
	defaultGroqMaxTokens      = 1000
	defaultGroqTemperature    = 0.4
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Auth: Auth{
			TokenTTLMinutes: defaultTokenTTLMinutes,
			BcryptCost:      defaultBcryptCost,
		},
		YouTube: YouTube{
			BaseURL:           defaultYouTubeBaseURL,
			TimeoutSeconds:    defaultYouTubeTimeout,
			RequestsPerMinute: defaultYouTubeRPM,
			Languages:         []string{"en"},
		},
		Groq: Groq{
			BaseURL:            defaultGroqBaseURL,
			Model:              defaultGroqModel,
			TimeoutSeconds:     defaultGroqTimeout,
			MaxTranscriptChars: defaultMaxTranscriptChars,
			MaxTokens:          defaultGroqMaxTokens,
			Temperature:        defaultGroqTemperature,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
