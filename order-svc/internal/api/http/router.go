package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// preflightMaxAge lets browsers cache a preflight answer, in seconds.
const preflightMaxAge = 600

type RouterConfig struct {
	// BasePath is mounted in front of every route, e.g. "/api".
	BasePath       string
	RequestTimeout time.Duration
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	// unclean paths such as //menu must reach preflight or notFound, not a 301
	r.SkipClean(true)
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(notFound)
	r.Use(recoverPanics, logRequests, withTimeout(cfg.RequestTimeout))

	routes := r
	if base := strings.TrimRight(cfg.BasePath, "/"); base != "" {
		r.Methods(http.MethodOptions).HandlerFunc(preflight)
		routes = r.PathPrefix(base).Subrouter()
	}
	handler.RegisterRoutes(routes)

	c := cors.New(cors.Options{
		AllowedOrigins:       []string{allowOrigin},
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:       []string{"Content-Type", "Authorization"},
		OptionsPassthrough:   true,
		OptionsSuccessStatus: http.StatusNoContent,
		MaxAge:               preflightMaxAge,
	})
	return ignoreTrailingSlash(c.Handler(r))
}

// StartServer serves until ctx is cancelled, then drains in-flight requests.
func StartServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Printf("Order Service starting on %s", addr)

	select {
	case <-ctx.Done():
		log.Println("Order Service shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
