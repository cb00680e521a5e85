package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/bornholm/worklog/internal/http/middleware/ratelimit"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	sloghttp "github.com/samber/slog-http"
)

type Server struct {
	opts *Options
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()

	for prefix, handler := range s.opts.Mounts {
		mounted := path.Join("/", s.opts.BaseURL, prefix)
		if !strings.HasSuffix(mounted, "/") {
			mounted += "/"
		}

		mux.Handle(mounted, http.StripPrefix(strings.TrimSuffix(mounted, "/"), handler))
	}

	var handler http.Handler = mux

	handler = s.basicAuth(handler)

	if s.opts.RateLimit.Enabled {
		handler = ratelimit.Middleware(
			s.opts.RateLimit.TrustHeaders,
			s.opts.RateLimit.Interval,
			s.opts.RateLimit.MaxBurst,
		)(handler)
	}

	if len(s.opts.AllowedOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins:   s.opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		}).Handler(handler)
	}

	handler = sloghttp.New(slog.Default())(handler)

	server := &http.Server{
		Addr:    s.opts.Address,
		Handler: handler,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "could not shutdown server", slog.Any("error", errors.WithStack(err)))
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func NewServer(funcs ...OptionFunc) *Server {
	return &Server{
		opts: NewOptions(funcs...),
	}
}
