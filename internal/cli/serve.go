package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hardpoint/pkg/buildinfo"
	"github.com/matzehuels/hardpoint/pkg/cache"
	"github.com/matzehuels/hardpoint/pkg/design"
	"github.com/matzehuels/hardpoint/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	redis   string // redis address for shared caching
	noCache bool   // disable caching
}

// serveCommand creates the serve command running the HTTP solver service.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP solver service",
		Long: `Run the HTTP solver service.

Endpoints:
  GET  /api/v1/health   service health and version
  GET  /api/v1/points   the design point table
  POST /api/v1/solve    solve a design and return artifacts

Solve requests carry the design file content inline:

  {"design": "<toml>", "formats": ["json", "svg-front"], "fraction": 0.5}

With --redis, artifacts are cached in Redis and shared between instances;
otherwise the local file cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis address for shared caching (host:port)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	store, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           c.router(runner),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serveCache picks the cache backend for the service.
func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.redis != "":
		store, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redis})
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", opts.redis, err)
		}
		c.Logger.Info("using redis cache", "addr", opts.redis)
		return store, nil
	default:
		return newCache(false)
	}
}

// router builds the service's HTTP routes.
func (c *CLI) router(runner *pipeline.Runner) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(c.logRequests)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handleHealth)
		r.Get("/points", handlePoints)
		r.Post("/solve", c.handleSolve(runner))
	})

	return r
}

// logRequests logs each request with method, path, status, and duration.
func (c *CLI) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		c.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

// solveResponse is the JSON body returned by the solve endpoint.
type solveResponse struct {
	ID        string            `json:"id"`
	SolveKey  string            `json:"solve_key"`
	Cached    bool              `json:"cached"`
	Artifacts map[string]string `json:"artifacts"`
}

// errorResponse is the JSON body returned on failure.
type errorResponse struct {
	Error string `json:"error"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handlePoints returns the static design point table.
func handlePoints(w http.ResponseWriter, r *http.Request) {
	type pointInfo struct {
		Key     string  `json:"key"`
		Title   string  `json:"title"`
		Frame   string  `json:"frame"`
		Sampled [3]bool `json:"sampled"`
	}
	points := make([]pointInfo, 0, len(design.LinkagePoints))
	for _, id := range design.LinkagePoints {
		points = append(points, pointInfo{
			Key:     string(id),
			Title:   design.TitleOf(id),
			Frame:   design.FrameOf(id),
			Sampled: design.SampledAxes(id),
		})
	}
	writeJSON(w, http.StatusOK, points)
}

func (c *CLI) handleSolve(runner *pipeline.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var opts pipeline.Options
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("decode request: %v", err)})
			return
		}
		// The service never reads the local filesystem on behalf of clients.
		opts.DesignFile = ""

		id := uuid.NewString()
		result, err := runner.Execute(r.Context(), opts)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			return
		}

		artifacts := make(map[string]string, len(result.Artifacts))
		for format, data := range result.Artifacts {
			artifacts[format] = string(data)
		}
		writeJSON(w, http.StatusOK, solveResponse{
			ID:        id,
			SolveKey:  result.SolveKey,
			Cached:    result.CacheInfo.Hit,
			Artifacts: artifacts,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
