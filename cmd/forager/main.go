// Forager — a terminal recipe finder.
//
// Usage:
//
//	forager [-verbose] [-quiet] [-offline]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/forager/internal/display"
	"github.com/hammamikhairi/forager/internal/domain"
	"github.com/hammamikhairi/forager/internal/export"
	"github.com/hammamikhairi/forager/internal/gateway"
	"github.com/hammamikhairi/forager/internal/images"
	"github.com/hammamikhairi/forager/internal/logger"
	"github.com/hammamikhairi/forager/internal/recipe"
	"github.com/hammamikhairi/forager/internal/search"
)

const (
	// EnvAPIURL overrides the recipe service root.
	EnvAPIURL = "FORAGER_API_URL"
	// EnvImageRelay overrides the image relay prefix.
	EnvImageRelay = "FORAGER_IMAGE_RELAY"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".forager-logs/forager.log", "file to write logs to (use \"stderr\" to log to console)")
	offline := flag.Bool("offline", false, "use the built-in sample recipes instead of the remote service")
	apiURL := flag.String("api", "", "recipe service root URL (overrides "+EnvAPIURL+")")
	relayURL := flag.String("image-relay", "", "image relay prefix URL (overrides "+EnvImageRelay+")")
	exportDir := flag.String("export-dir", ".", "directory to write exported recipe documents to")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so Bubble Tea owns the terminal.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package to the same output so
	// third-party libraries don't write over the UI.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire the recipe source.
	var source domain.RecipeSource
	api := firstNonEmpty(*apiURL, os.Getenv(EnvAPIURL))
	switch {
	case *offline || api == "":
		if !*offline {
			log.Info("no %s configured, using built-in sample recipes", EnvAPIURL)
		}
		source = recipe.NewMemorySource(log)
	default:
		source = gateway.NewClient(api, log)
		log.Info("recipe service: %s", api)
	}

	relay := firstNonEmpty(*relayURL, os.Getenv(EnvImageRelay))
	var resolver domain.ImageResolver = images.NewResolver(relay, log)
	if relay == "" {
		log.Info("no %s configured, exported documents will have no pictures", EnvImageRelay)
		resolver = noImages{}
	}

	ctrl := search.New(source, log)
	saver := export.NewSaver(resolver, *exportDir, log)

	// Warm the suggestion caches while the UI comes up. A failure only
	// degrades the affected dropdown, so it's logged and nothing else.
	go func() {
		if err := ctrl.Preload(ctx); err != nil {
			log.Warn("preload: %v", err)
		}
	}()

	fmt.Println(display.RenderBanner())

	if err := display.Run(ctrl, saver, log); err != nil {
		log.Error("display: %v", err)
		os.Exit(1)
	}
}

// noImages is the resolver used when no relay is configured: every
// lookup is a soft miss.
type noImages struct{}

func (noImages) Resolve(context.Context, []domain.RecipeImage, int) ([]byte, error) {
	return nil, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
