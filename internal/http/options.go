package http

import (
	"net/http"
	"time"
)

type User struct {
	Username string
	Password string
}

type Auth struct {
	AllowAnonymous bool
	Users          []User
}

type RateLimit struct {
	Enabled      bool
	TrustHeaders bool
	Interval     time.Duration
	MaxBurst     int
}

type Options struct {
	Address        string
	BaseURL        string
	Mounts         map[string]http.Handler
	Auth           Auth
	AllowedOrigins []string
	RateLimit      RateLimit
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Address: ":3002",
		BaseURL: "",
		Mounts:  map[string]http.Handler{},
		Auth: Auth{
			AllowAnonymous: true,
		},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithMount(prefix string, handler http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.Mounts[prefix] = handler
	}
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(opts *Options) {
		opts.BaseURL = baseURL
	}
}

func WithAddress(addr string) OptionFunc {
	return func(opts *Options) {
		opts.Address = addr
	}
}

func WithAuth(allowAnonymous bool, users ...User) OptionFunc {
	return func(opts *Options) {
		opts.Auth = Auth{
			AllowAnonymous: allowAnonymous,
			Users:          users,
		}
	}
}

func WithAllowedOrigins(origins ...string) OptionFunc {
	return func(opts *Options) {
		opts.AllowedOrigins = origins
	}
}

func WithRateLimit(rateLimit RateLimit) OptionFunc {
	return func(opts *Options) {
		opts.RateLimit = rateLimit
	}
}
