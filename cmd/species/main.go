package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	config "github.com/mutablelogic/go-species/pkg/config"
	zerolog "github.com/rs/zerolog"
	log "github.com/rs/zerolog/log"
	otel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug output"`
	Verbose bool `name:"verbose" help:"Enable verbose output"`

	// Backend
	Endpoint string        `name:"endpoint" env:"API_BASE_URL" help:"Backend base URL" placeholder:"URL"`
	Timeout  time.Duration `name:"timeout" help:"Request timeout, not applied to streams, overrides API_TIMEOUT" placeholder:"DURATION"`

	// Context
	ctx    context.Context
	tracer trace.Tracer
	config *config.Config
}

type CLI struct {
	Globals

	// Commands
	Endpoints EndpointsCommand `cmd:"" name:"endpoints" help:"List backend endpoints." group:"BACKEND"`
	Species   SpeciesCommand   `cmd:"" name:"species" help:"List preset species." group:"BACKEND"`
	Diagnose  DiagnoseCommand  `cmd:"" name:"diagnose" help:"Diagnose a symptom." group:"BACKEND"`
	Open      OpenCommand      `cmd:"" name:"open" help:"Open a page by path." group:"PAGES"`
	Version   VersionCommand   `cmd:"" name:"version" help:"Print version information."`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Set up logging
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Load environment from .env before kong reads env tags. API_TIMEOUT
	// is read here only, where an invalid value is logged and ignored
	cfg := config.FromEnv()

	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Species diagnosis command line interface"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	if cli.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.tracer = otel.Tracer(execName())

	// Flags override the environment
	if cli.Endpoint != "" {
		cfg.BaseURL = config.New(cli.Endpoint).BaseURL
	}
	if cli.Timeout > 0 {
		cfg.Timeout = cli.Timeout
	}
	cli.Globals.config = cfg
	log.Debug().Str("base_url", cfg.BaseURL).Dur("timeout", cfg.Timeout).Msg("config")

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}
