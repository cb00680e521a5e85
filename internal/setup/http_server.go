package setup

import (
	"context"

	"github.com/bornholm/worklog/internal/config"
	"github.com/bornholm/worklog/internal/http"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config) (*http.Server, error) {
	apiHandler, err := getAPIHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create api handler from config")
	}

	users := make([]http.User, 0)

	if conf.HTTP.Auth.Reader.Username != "" {
		users = append(users, http.User{
			Username: conf.HTTP.Auth.Reader.Username,
			Password: conf.HTTP.Auth.Reader.Password,
		})
	}

	if conf.HTTP.Auth.Writer.Username != "" {
		users = append(users, http.User{
			Username: conf.HTTP.Auth.Writer.Username,
			Password: conf.HTTP.Auth.Writer.Password,
		})
	}

	server := http.NewServer(
		http.WithAddress(conf.HTTP.Address),
		http.WithBaseURL(conf.HTTP.BaseURL),
		http.WithAuth(conf.HTTP.Auth.AllowAnonymous, users...),
		http.WithAllowedOrigins(conf.HTTP.CORS.AllowedOrigins...),
		http.WithRateLimit(http.RateLimit{
			Enabled:      conf.HTTP.RateLimit.Enabled,
			TrustHeaders: conf.HTTP.RateLimit.TrustHeaders,
			Interval:     conf.HTTP.RateLimit.Interval,
			MaxBurst:     conf.HTTP.RateLimit.MaxBurst,
		}),
		http.WithMount("/api/v1", apiHandler),
		http.WithMount("/metrics", promhttp.Handler()),
	)

	return server, nil
}
