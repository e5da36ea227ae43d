package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"oledbmp/batchcmd"
	"oledbmp/fontcmd"
	"oledbmp/imagecmd"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

type CLI struct {
	Debug bool `help:"Enable debug output" short:"d" default:"false" env:"OLEDBMP_DEBUG"`

	Image     imagecmd.CLICmd  `cmd:"" help:"Convert an image into a packed byte array header"`
	Fontparse fontcmd.ParseCmd `cmd:"" help:"Convert a strip of fixed-width glyphs into a font header"`
	Fontgen   fontcmd.GenCmd   `cmd:"" help:"Render a TrueType font into a font header"`
	Batch     batchcmd.CLICmd  `cmd:"" help:"Convert every image of a folder into its own header"`
}

// loadEnv reads OLEDBMP_* defaults from $OLEDBMP_ENV_FILE or ./.env if present.
func loadEnv() {
	path := os.Getenv("OLEDBMP_ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not load environment file", "file", path, "error", err)
	}
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	loadEnv()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("oledbmp"),
		kong.Description("Micro OLED image and font processor"),
		kong.UsageOnError(),
	)

	logger := newLogger(cli.Debug)
	slog.SetDefault(logger)

	logger.Debug("running", "command", kctx.Command())
	if err := kctx.Run(logger); err != nil {
		logger.Error("failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
