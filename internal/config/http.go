package config

import "time"

type HTTP struct {
	BaseURL   string    `env:"BASE_URL,expand" envDefault:"/"`
	Address   string    `env:"ADDRESS,expand" envDefault:":3002"`
	Auth      Auth      `envPrefix:"AUTH_"`
	CORS      CORS      `envPrefix:"CORS_"`
	RateLimit RateLimit `envPrefix:"RATELIMIT_"`
}

type Auth struct {
	AllowAnonymous bool `env:"ALLOW_ANONYMOUS,expand" envDefault:"true"`
	Reader         User `envPrefix:"READER_"`
	Writer         User `envPrefix:"WRITER_"`
}

type User struct {
	Username string `env:"USERNAME,expand"`
	Password string `env:"PASSWORD,expand"`
}

type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

type RateLimit struct {
	Enabled      bool          `env:"ENABLED" envDefault:"true"`
	TrustHeaders bool          `env:"TRUST_HEADERS" envDefault:"false"`
	Interval     time.Duration `env:"INTERVAL" envDefault:"100ms"`
	MaxBurst     int           `env:"MAX_BURST" envDefault:"50"`
}
