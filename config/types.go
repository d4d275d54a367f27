package config

// Config the engine configuration
type Config struct {
	Mode            string `json:"mode,omitempty" env:"UI_ENV" envDefault:"production"`                   // production/development
	Root            string `json:"root,omitempty" env:"UI_ROOT" envDefault:"."`                           // schema root directory
	Lang            string `json:"lang,omitempty" env:"UI_LANG" envDefault:"en-us"`                       // Default language setting
	TimeZone        string `json:"timezone,omitempty" env:"UI_TIMEZONE"`                                  // Default TimeZone
	Log             string `json:"log,omitempty" env:"UI_LOG"`                                            // log file path
	LogMode         string `json:"log_mode,omitempty" env:"UI_LOG_MODE" envDefault:"TEXT"`                // JSON|TEXT
	LogMaxSize      int    `json:"log_max_size,omitempty" env:"UI_LOG_MAX_SIZE" envDefault:"100"`         // megabytes
	LogMaxBackups   int    `json:"log_max_backups,omitempty" env:"UI_LOG_MAX_BACKUPS" envDefault:"5"`     // rotated files kept
	LogMaxAge       int    `json:"log_max_age,omitempty" env:"UI_LOG_MAX_AGE" envDefault:"30"`            // days
	LogLocalTime    bool   `json:"log_local_time,omitempty" env:"UI_LOG_LOCAL_TIME" envDefault:"true"`    // rotate on local time
	ValidationDelay int    `json:"validation_delay,omitempty" env:"UI_VALIDATION_DELAY" envDefault:"200"` // field validation debounce in milliseconds
}
