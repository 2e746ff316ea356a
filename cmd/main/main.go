// Command twittov generates nonsense text in the style of a user's Twitter
// feed. It fetches (or re-uses a cached copy of) the user's timeline, builds
// a Markov model over it, and prints a random walk to stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/yaymukund/twittov/pkg/cache"
	"github.com/yaymukund/twittov/pkg/feed"
	"github.com/yaymukund/twittov/pkg/markov"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// runOptions collects the per-invocation settings gathered from flags.
type runOptions struct {
	username   string
	length     int
	order      int
	amount     int
	splitWords bool
	force      bool
	cachePath  string
	configPath string
}

// corpusCache is the slice of the cache store the run loop needs.
type corpusCache interface {
	Lookup(ctx context.Context, username string) ([]string, error)
	Put(ctx context.Context, username string, corpus []string) error
}

// fetcher is the slice of the feed client the run loop needs.
type fetcher interface {
	Fetch(ctx context.Context, username string, amount int) ([]string, error)
}

func main() {
	var (
		length      = flag.Int("l", markov.DefaultLength, "minimum output length, in words (or characters with -x)")
		order       = flag.Int("o", 3, "order of the Markov chains")
		amount      = flag.Int("s", 200, "how many tweets to scrape")
		splitWords  = flag.Bool("x", false, "operate on characters rather than words")
		force       = flag.Bool("f", false, "force a fresh download even if the user is already cached")
		verbose     = flag.Bool("v", false, "display verbose output")
		cachePath   = flag.String("c", "", "cache database path (overrides the config file)")
		configPath  = flag.String("config", "twittov.json", "config file path")
		showVersion = flag.Bool("version", false, "print version information and exit")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: twittov [options] username\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("twittov %s (%s, built %s)\n", Version, Commit, BuildDate)
		return
	}

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	username := flag.Arg(0)

	if err := validateFlags(*length, *order, *amount); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	opts := runOptions{
		username:   username,
		length:     *length,
		order:      *order,
		amount:     *amount,
		splitWords: *splitWords,
		force:      *force,
		cachePath:  *cachePath,
		configPath: *configPath,
	}
	if err := run(opts, logger); err != nil {
		logger.Error("twittov failed", "error", err)
		os.Exit(1)
	}
}

func validateFlags(length, order, amount int) error {
	if length < 1 {
		return fmt.Errorf("length must be a positive integer, got %d", length)
	}
	if order < 1 {
		return fmt.Errorf("order must be a positive integer, got %d", order)
	}
	if amount < 1 {
		return fmt.Errorf("scrape amount must be a positive integer, got %d", amount)
	}
	return nil
}

func run(opts runOptions, logger *slog.Logger) error {
	ctx := context.Background()

	config, err := LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cachePath := opts.cachePath
	if cachePath == "" {
		cachePath = config.CachePath
	}

	db, err := openCacheDB(cachePath)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := cache.SetupSchema(db); err != nil {
		return err
	}
	store, err := cache.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to initialize cache store: %w", err)
	}
	defer store.Close()
	store.SetLogger(logger)

	client := feed.NewClient(
		feed.WithBaseURL(config.APIBaseURL),
		feed.WithTimeout(time.Duration(config.HTTPTimeoutSec)*time.Second),
		feed.WithLogger(logger),
	)

	corpus, err := loadCorpus(ctx, store, client, opts.username, opts.amount, opts.force, logger)
	if err != nil {
		return err
	}

	var tokenizer markov.Tokenizer = markov.WordTokenizer{}
	if opts.splitWords {
		tokenizer = markov.CharTokenizer{}
	}

	g := markov.NewGenerator(tokenizer)
	g.SetLogger(logger)

	model, err := g.Build(corpus, opts.order)
	if err != nil {
		return err
	}

	text, err := g.Generate(model, markov.WithLength(opts.length))
	if errors.Is(err, markov.ErrEmptyModel) {
		return fmt.Errorf("every tweet from %s is shorter than %d tokens; try a smaller order: %w", opts.username, opts.order+1, err)
	}
	if err != nil {
		return err
	}

	fmt.Println(text)
	return nil
}

// loadCorpus returns the corpus for a username, preferring the cache unless
// force is set. A fetch that succeeds is cached for next time; a cache that
// cannot be written is only worth a warning.
func loadCorpus(ctx context.Context, store corpusCache, client fetcher, username string, amount int, force bool, logger *slog.Logger) ([]string, error) {
	if !force {
		corpus, err := store.Lookup(ctx, username)
		if err == nil {
			logger.Debug("using cached corpus", "username", username, "entries", len(corpus))
			return corpus, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			logger.Warn("cache lookup failed, fetching fresh", "username", username, "error", err)
		}
	}

	corpus, err := client.Fetch(ctx, username, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timeline for %s: %w", username, err)
	}

	if err := store.Put(ctx, username, corpus); err != nil {
		logger.Warn("failed to cache corpus", "username", username, "error", err)
	}
	return corpus, nil
}
