package config

import "time"

// Config is the root application configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	DB     DBConfig     `yaml:"db"`
	Lookup LookupConfig `yaml:"lookup"`
	Quiz   QuizConfig   `yaml:"quiz"`
	Player PlayerConfig `yaml:"player"`
	LLM    LLMConfig    `yaml:"llm"`
}

// LogConfig controls the log file. The terminal belongs to the UI, so
// logs never go to stdout.
type LogConfig struct {
	Level  string `yaml:"level"  env:"NOOKCLASS_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"NOOKCLASS_LOG_FORMAT" env-default:"text"`
	File   string `yaml:"file"   env:"NOOKCLASS_LOG_FILE"`
}

// DBConfig locates the SQLite database. An empty path resolves to the
// XDG data directory.
type DBConfig struct {
	Path string `yaml:"path" env:"NOOKCLASS_DB"`
}

// LookupConfig holds the dictionary and translation endpoints.
type LookupConfig struct {
	DictionaryURL string        `yaml:"dictionary_url" env:"NOOKCLASS_DICTIONARY_URL" env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	TranslateURL  string        `yaml:"translate_url"  env:"NOOKCLASS_TRANSLATE_URL"  env-default:"https://translate.googleapis.com/translate_a/single"`
	TargetLang    string        `yaml:"target_lang"    env:"NOOKCLASS_TARGET_LANG"    env-default:"zh-TW"`
	Timeout       time.Duration `yaml:"timeout"        env:"NOOKCLASS_LOOKUP_TIMEOUT"`
	Cache         bool          `yaml:"cache"          env:"NOOKCLASS_LOOKUP_CACHE"`
}

// QuizConfig tunes quiz sessions.
type QuizConfig struct {
	Questions     int           `yaml:"questions"      env:"NOOKCLASS_QUIZ_QUESTIONS"`
	FeedbackDelay time.Duration `yaml:"feedback_delay" env:"NOOKCLASS_QUIZ_FEEDBACK_DELAY"`
}

// PlayerConfig tunes the playback clock.
type PlayerConfig struct {
	PollInterval time.Duration `yaml:"poll_interval" env:"NOOKCLASS_POLL_INTERVAL"`
	DemoDelay    time.Duration `yaml:"demo_delay"    env:"NOOKCLASS_DEMO_DELAY"`
	Topic        string        `yaml:"topic"         env:"NOOKCLASS_TOPIC"         env-default:"General English Conversation"`
}

// LLMConfig selects the optional transcript generator. Provider "" means
// discover from the standard API key variables; "none" disables it.
type LLMConfig struct {
	Provider    string        `yaml:"provider"     env:"NOOKCLASS_LLM_PROVIDER"`
	Model       string        `yaml:"model"        env:"NOOKCLASS_LLM_MODEL"`
	APIKey      string        `yaml:"api_key"      env:"NOOKCLASS_LLM_API_KEY"`
	BaseURL     string        `yaml:"base_url"     env:"NOOKCLASS_LLM_BASE_URL"`
	MaxAttempts int           `yaml:"max_attempts" env:"NOOKCLASS_LLM_MAX_ATTEMPTS"`
	Timeout     time.Duration `yaml:"timeout"      env:"NOOKCLASS_LLM_TIMEOUT"`
}

// Defaults returns the numeric and boolean defaults. Load applies the file
// and environment on top, so an explicit zero or false survives.
func Defaults() Config {
	return Config{
		Lookup: LookupConfig{
			Timeout: 10 * time.Second,
			Cache:   true,
		},
		Quiz: QuizConfig{
			Questions:     5,
			FeedbackDelay: 1500 * time.Millisecond,
		},
		Player: PlayerConfig{
			PollInterval: 200 * time.Millisecond,
			DemoDelay:    time.Second,
		},
		LLM: LLMConfig{
			MaxAttempts: 3,
			Timeout:     30 * time.Second,
		},
	}
}
