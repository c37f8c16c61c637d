package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/mmcdole/mediaclubs/internal/backend"
	"github.com/mmcdole/mediaclubs/internal/clubs"
	"github.com/mmcdole/mediaclubs/internal/config"
	"github.com/mmcdole/mediaclubs/internal/domain"
	"github.com/mmcdole/mediaclubs/internal/log"
	"github.com/mmcdole/mediaclubs/internal/search"
	"github.com/mmcdole/mediaclubs/internal/store"
)

// Version is set at build time via -ldflags
var Version = "dev"

type options struct {
	memberID int
	refresh  bool
	query    string
	clubID   int
	kind     string
}

func main() {
	// Handle version flag
	var showVersion bool
	var opts options
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.IntVar(&opts.memberID, "member", 0, "member id to show")
	flag.BoolVar(&opts.refresh, "refresh", false, "ignore the local cache")
	flag.StringVar(&opts.query, "search", "", "fuzzy search the member's media by title")
	flag.IntVar(&opts.clubID, "club", 0, "club id to fetch (requires -kind)")
	flag.StringVar(&opts.kind, "kind", "", "club kind: movie, book, album, song or art")
	flag.Parse()

	if showVersion {
		fmt.Printf("mediaclubs %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting mediaclubs", "version", Version)

	// Check if configured
	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, os.Stdin, os.Stdout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := backend.NewClient(cfg.Server.URL, cfg.Server.Token, logger)

	if opts.clubID != 0 || opts.kind != "" {
		return showClub(ctx, os.Stdout, client, opts.kind, opts.clubID)
	}

	if opts.memberID == 0 {
		flag.Usage()
		return errors.New("either -member or -club is required")
	}

	memberStore, err := store.NewMemberStore(cfg.Cache.Dir, cfg.Server.URL)
	if err != nil {
		// Keep going without persistence
		logger.Warn("failed to open cache, using memory only", "error", err)
		memberStore, err = store.NewMemberStore("", cfg.Server.URL)
		if err != nil {
			return fmt.Errorf("failed to create store: %w", err)
		}
	}
	defer memberStore.Close()

	svc := clubs.NewService(client, memberStore, cfg.Cache.MaxAge, logger)
	member, err := svc.LoadMember(ctx, opts.memberID, opts.refresh)
	if err != nil {
		return describeError(err)
	}

	if opts.query != "" {
		printSearch(os.Stdout, member, opts.query)
		return nil
	}
	printMember(os.Stdout, member)

	logger.Info("shutting down")
	return nil
}

// describeError turns backend failures into something a user can act on
func describeError(err error) error {
	switch {
	case errors.Is(err, domain.ErrAuthFailed):
		return fmt.Errorf("%w: check server.token in your config", err)
	case errors.Is(err, domain.ErrServerOffline):
		return fmt.Errorf("%w: check server.url in your config", err)
	default:
		return err
	}
}

func showClub(ctx context.Context, w io.Writer, client *backend.Client, kind string, id int) error {
	var err error
	switch domain.MediaKind(capitalize(kind)) {
	case domain.KindMovie:
		err = fetchAndPrint[domain.Movie](ctx, w, client, id)
	case domain.KindBook:
		err = fetchAndPrint[domain.Book](ctx, w, client, id)
	case domain.KindAlbum:
		err = fetchAndPrint[domain.Album](ctx, w, client, id)
	case domain.KindSong:
		err = fetchAndPrint[domain.Song](ctx, w, client, id)
	case domain.KindArt:
		err = fetchAndPrint[domain.Art](ctx, w, client, id)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	return describeError(err)
}

func fetchAndPrint[T domain.Variant[T]](ctx context.Context, w io.Writer, client *backend.Client, id int) error {
	club, err := backend.FetchClub[T](ctx, client, id)
	if err != nil {
		return err
	}
	printClub(w, club)
	return nil
}

func capitalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func printMember(w io.Writer, m *domain.Member) {
	fmt.Fprintf(w, "%s (%d clubs)\n", m.DisplayName(), m.Clubs.Len())
	for _, c := range m.Clubs.MovieClubs {
		printClub(w, c)
	}
	for _, c := range m.Clubs.BookClubs {
		printClub(w, c)
	}
	for _, c := range m.Clubs.AlbumClubs {
		printClub(w, c)
	}
	for _, c := range m.Clubs.ArtClubs {
		printClub(w, c)
	}

	featured := clubs.Featured(m)
	if len(featured) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Featured this month:")
	for _, item := range featured {
		fmt.Fprintf(w, "  %s\n", item.Describe())
	}
}

func printClub[T domain.Variant[T]](w io.Writer, c domain.Club[T]) {
	fmt.Fprintf(w, "\n%s club %d", c.Kind(), c.ID)
	if c.HeadOfClub != nil {
		fmt.Fprintf(w, " (head: %s)", *c.HeadOfClub)
	}
	fmt.Fprintln(w)
	if c.MediaOfMonth != nil {
		fmt.Fprintf(w, "  now:      %s\n", (*c.MediaOfMonth).Describe())
	}
	for _, v := range c.UpcomingMediaOfTheMonth {
		fmt.Fprintf(w, "  upcoming: %s\n", v.Describe())
	}
	for _, v := range c.PreviousMediaOfTheMonth {
		fmt.Fprintf(w, "  previous: %s\n", v.Describe())
	}
	if c.DiscussionBoardURL != nil {
		fmt.Fprintf(w, "  discuss:  %s\n", *c.DiscussionBoardURL)
	}
}

func printSearch(w io.Writer, m *domain.Member, query string) {
	catalog := clubs.Catalog(m)
	results := search.NewIndex(catalog).Filter(query)
	if len(results) == 0 {
		fmt.Fprintf(w, "No matches for %q\n", query)
		return
	}
	for _, r := range results {
		fmt.Fprintf(w, "%s  (clubs %v)\n", r.Item.Describe(), clubs.FeaturedIn(m, r.Item))
	}
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config, in *os.File, out io.Writer) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Welcome to mediaclubs!")
	fmt.Fprintln(out)

	// Hide the token when typed at a terminal
	var readSecret func() (string, error)
	if term.IsTerminal(int(in.Fd())) {
		readSecret = func() (string, error) {
			tokenBytes, err := term.ReadPassword(int(in.Fd()))
			fmt.Fprintln(out) // Add newline after hidden input
			return string(tokenBytes), err
		}
	}

	if err := promptCredentials(cfg, bufio.NewReader(in), out, readSecret); err != nil {
		return err
	}

	if err := config.SaveConfig(cfg, ""); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "✓ Configuration saved!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run mediaclubs again with -member <id>.")
	return nil
}

// promptCredentials asks for the backend URL and API token. The token is read
// with readSecret when set, otherwise as a plain line from reader.
func promptCredentials(cfg *config.Config, reader *bufio.Reader, out io.Writer, readSecret func() (string, error)) error {
	// Loop until we get a server URL
	for cfg.Server.URL == "" {
		fmt.Fprint(out, "Enter the backend URL (e.g., http://localhost:8080): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		cfg.Server.URL = strings.TrimRight(strings.TrimSpace(input), "/")
		if cfg.Server.URL == "" {
			fmt.Fprintln(out, "Server URL cannot be empty. Please try again.")
		}
	}

	fmt.Fprint(out, "Enter your API token (leave empty for none): ")
	var token string
	var err error
	if readSecret != nil {
		token, err = readSecret()
	} else {
		token, err = reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
	}
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	cfg.Server.Token = strings.TrimSpace(token)
	return nil
}
