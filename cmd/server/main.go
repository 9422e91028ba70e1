package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"deckrush/internal/config"
)

var CLI struct {
	Debug bool `help:"Whether to enable debug logging."`

	Serve struct {
		Configs []string `arg:"" optional:"" name:"configs" help:"Configuration files for the server." type:"path"`
	} `cmd:"" default:"withargs" help:"Start the game server."`

	Config struct {
	} `cmd:"" help:"Write the default configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("deckrush"),
		kong.Description("authoritative server for a two player card economy game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	switch ctx.Command() {
	case "serve", "serve <configs>":
		if err := serveCommand(CLI.Serve.Configs); err != nil {
			writeError(err)
		}
	case "config":
		os.Stdout.Write(config.DEFAULT)
	}
}
