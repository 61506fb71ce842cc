package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gregjones/httpcache"
	"github.com/mattn/go-colorable"

	"github.com/bkyoung/lgtm/internal/adapter/cli"
	"github.com/bkyoung/lgtm/internal/adapter/editor"
	"github.com/bkyoung/lgtm/internal/adapter/git"
	githubadapter "github.com/bkyoung/lgtm/internal/adapter/github"
	"github.com/bkyoung/lgtm/internal/adapter/observability"
	"github.com/bkyoung/lgtm/internal/adapter/store/sqlite"
	"github.com/bkyoung/lgtm/internal/config"
	"github.com/bkyoung/lgtm/internal/domain"
	"github.com/bkyoung/lgtm/internal/usecase/resolve"
	"github.com/bkyoung/lgtm/internal/usecase/review"
	"github.com/bkyoung/lgtm/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := cli.NewRootCommand(cli.Dependencies{
		NewApp:  newApp,
		Version: version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		return err
	}
	return nil
}

// newApp loads configuration and wires the full application for one
// verb invocation.
func newApp(ctx context.Context, opts cli.GlobalOptions) (*cli.App, error) {
	if err := config.LoadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	env, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}

	// $LGTM_CONFIG names the config file outright; --config is the
	// fallback, then the XDG search path.
	configFile := opts.ConfigFile
	if env.ConfigFile != "" {
		configFile = env.ConfigFile
	}

	fileCfg, err := config.Load(config.LoaderOptions{ConfigFile: configFile})
	if err != nil {
		return nil, err
	}

	cfg := config.Merge(fileCfg, env.Overlay(), flagOverlay(opts))

	logger := observability.NewLogger(os.Stderr, observability.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Colored: review.IsErrTerminal(),
	})

	policy, err := domain.ParseMatchPolicy(cfg.MatchPolicy)
	if err != nil {
		return nil, err
	}

	token, err := githubadapter.ResolveToken(ctx, cfg.GitHub.Token)
	if err != nil {
		return nil, err
	}

	cache, closeCache := openCache(cfg.Cache, logger)

	client, err := githubadapter.NewClient(githubadapter.Options{
		Token:   token,
		BaseURL: cfg.GitHub.APIURL,
		Cache:   cache,
		Logger:  logger,
	})
	if err != nil {
		_ = closeCache()
		return nil, err
	}

	resolver := resolve.NewResolver(git.NewEngine("."), client, logger)

	var progress *cli.Progress
	if review.IsErrTerminal() {
		progress = cli.NewProgress(colorable.NewColorableStderr())
	}
	reads, store := cli.WithProgress(progress, resolver, client)

	orchestrator := review.NewOrchestrator(review.Deps{
		Resolver: reads,
		Store:    store,
		Composer: editor.New(cfg.Editor),
		Prompter: cli.NewPrompter(os.Stdin, os.Stdout, review.IsInteractive(), review.IsOutputTerminal()),
		Policy:   policy,
		Logger:   logger,
	})

	return &cli.App{
		Orchestrator: orchestrator,
		Remote:       cfg.Remote,
		Close:        closeCache,
	}, nil
}

// flagOverlay turns persistent flag values into the highest-priority
// configuration layer.
func flagOverlay(opts cli.GlobalOptions) config.Config {
	return config.Config{
		Log: config.LogConfig{
			Level:  opts.LogLevel,
			Format: opts.LogFormat,
		},
	}
}

// openCache builds the HTTP response cache for the read path. A broken
// sqlite cache degrades to an in-memory one with a warning; a disabled
// cache removes the layer entirely.
func openCache(cfg config.CacheConfig, logger *slog.Logger) (httpcache.Cache, func() error) {
	noop := func() error { return nil }

	if !cfg.Enabled {
		return nil, noop
	}

	path := cfg.Path
	if path == "" {
		path = config.DefaultCachePath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Warn("response cache unavailable, falling back to memory", "path", path, "error", err)
		return httpcache.NewMemoryCache(), noop
	}

	dbCache, err := sqlite.NewCache(path, logger)
	if err != nil {
		logger.Warn("response cache unavailable, falling back to memory", "path", path, "error", err)
		return httpcache.NewMemoryCache(), noop
	}

	return dbCache, dbCache.Close
}

// Compile-time interface compliance checks
var _ review.ContextResolver = (*resolve.Resolver)(nil)
var _ review.CommentStore = (*githubadapter.Client)(nil)
var _ review.Composer = (*editor.Session)(nil)
var _ review.Prompter = (*cli.Prompter)(nil)
var _ resolve.GitEngine = (*git.Engine)(nil)
var _ resolve.PullRequestFinder = (*githubadapter.Client)(nil)
