// Command photoctl manages the portfolio gallery from the command line.
//
// Usage:
//
//	photoctl [-server URL] [-password PW] <command> [args]
//
// Commands:
//
//	status                 show whether the session is authenticated
//	login                  check the admin password
//	logout                 end the session
//	list                   print the merged gallery
//	search <query>         search the gallery, falling back to smart keywords
//	upload [flags] <file>  upload a photo (admin)
//	delete <id>            delete an uploaded photo (admin)
//	watch                  print the gallery size after every change
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/gabriel-vasile/mimetype"

	"portfolio/internal/contextutil"
	"portfolio/internal/gallery"
	"portfolio/internal/galleryclient"
)

var errUsage = errors.New("usage error")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "photoctl:", err)
		}
		os.Exit(1)
	}
}

type app struct {
	client   *galleryclient.Client
	password string
	out      io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("photoctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	server := fs.String("server", envOr("PHOTOCTL_SERVER", "http://localhost:9000"), "API base URL")
	password := fs.String("password", os.Getenv("PHOTOCTL_PASSWORD"), "admin password")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	ctx = contextutil.WithLogger(ctx, logger)

	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	client, err := galleryclient.New(*server)
	if err != nil {
		return err
	}
	a := &app{client: client, password: *password, out: stdout}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "status":
		return a.status(ctx)
	case "login":
		return a.login(ctx)
	case "logout":
		return a.logout(ctx)
	case "list":
		return a.list(ctx)
	case "search":
		return a.search(ctx, rest)
	case "upload":
		return a.upload(ctx, rest, stderr)
	case "delete":
		return a.delete(ctx, rest)
	case "watch":
		return a.watch(ctx)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		return errUsage
	}
}

// authenticate logs in when a password was given. Without one the admin
// calls fail with 401 from the server.
func (a *app) authenticate(ctx context.Context) error {
	if a.password == "" {
		return nil
	}
	if err := a.client.Login(ctx, a.password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return nil
}

func (a *app) status(ctx context.Context) error {
	if err := a.authenticate(ctx); err != nil {
		return err
	}
	st, err := a.client.AuthStatus(ctx)
	if err != nil {
		return err
	}
	if st.IsAuthenticated {
		fmt.Fprintf(a.out, "authenticated as %s\n", st.UserID)
		return nil
	}
	fmt.Fprintln(a.out, "not authenticated")
	return nil
}

func (a *app) login(ctx context.Context) error {
	if a.password == "" {
		return errors.New("no password given, use -password or PHOTOCTL_PASSWORD")
	}
	if err := a.authenticate(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Login successful")
	return a.client.Logout(ctx)
}

func (a *app) logout(ctx context.Context) error {
	if err := a.authenticate(ctx); err != nil {
		return err
	}
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logout successful")
	return nil
}

func (a *app) list(ctx context.Context) error {
	catalog := galleryclient.NewCatalog(a.client)
	if err := catalog.Refresh(ctx); err != nil {
		fmt.Fprintln(a.out, "warning: server unreachable, showing built-in photos only")
	}
	printPhotos(a.out, catalog.Photos())
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("search needs a query")
	}
	query := strings.Join(args, " ")

	catalog := galleryclient.NewCatalog(a.client)
	_ = catalog.Refresh(ctx)

	exp := gallery.FallbackExpander{
		Primary:  galleryclient.RemoteExpander{Client: a.client},
		Fallback: gallery.LocalExpander{},
	}
	res, err := gallery.Search(ctx, exp, catalog.Photos(), query)
	if err != nil {
		return err
	}
	if res.Intent != "" {
		fmt.Fprintln(a.out, res.Intent)
	}
	if len(res.Keywords) > 0 {
		fmt.Fprintf(a.out, "keywords: %s\n", strings.Join(res.Keywords, ", "))
	}
	printPhotos(a.out, res.Photos)
	return nil
}

func (a *app) upload(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	fs.SetOutput(stderr)
	title := fs.String("title", "", "photo title (required)")
	category := fs.String("category", "", "category: "+strings.Join(gallery.Categories, ", "))
	event := fs.String("event", "", "event name")
	description := fs.String("description", "", "description")
	tags := fs.String("tags", "", "comma separated tags")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		return errors.New("upload needs exactly one file")
	}
	path := fs.Arg(0)

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := a.authenticate(ctx); err != nil {
		return err
	}
	catalog := galleryclient.NewCatalog(a.client)
	photo, err := catalog.Upload(ctx, galleryclient.UploadInput{
		Title:       *title,
		Category:    *category,
		Event:       *event,
		Description: *description,
		Tags:        *tags,
		Filename:    filepath.Base(path),
		ContentType: mt.String(),
		File:        f,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "uploaded photo %d: %s\n", photo.ID, photo.Src)
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("delete needs a photo id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid photo id %q", args[0])
	}
	if err := a.authenticate(ctx); err != nil {
		return err
	}
	if err := galleryclient.NewCatalog(a.client).Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted photo %d\n", id)
	return nil
}

func (a *app) watch(ctx context.Context) error {
	catalog := galleryclient.NewCatalog(a.client)
	_ = catalog.Refresh(ctx)
	fmt.Fprintf(a.out, "%d photos\n", len(catalog.Photos()))

	err := a.client.Watch(ctx, &printingCatalog{Catalog: catalog, out: a.out})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printPhotos(w io.Writer, photos []gallery.Photo) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tTAGS")
	for _, p := range photos {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Title, p.Category, strings.Join(p.Tags, ","))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%d photos\n", len(photos))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// printingCatalog reports the gallery size after every refresh.
type printingCatalog struct {
	*galleryclient.Catalog
	out io.Writer
}

func (c *printingCatalog) Refresh(ctx context.Context) error {
	if err := c.Catalog.Refresh(ctx); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%d photos\n", len(c.Photos()))
	return nil
}
