package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/starford/anyt/internal"
	pkgconfig "github.com/starford/anyt/pkg/config"
)

// version is set at build time via -ldflags.
var version = "dev"

const defaultConfigPath = "config/config.yaml"

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if cmd.IsSet("config") {
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		return cfg, nil
	}
	// The default path is optional; built-in defaults apply without it.
	if _, err := pkgconfig.LoadIfExists(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func baseOptions(cmd *cli.Command) ([]internal.Option, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return []internal.Option{
		internal.WithConfig(cfg),
		internal.WithVersion(version),
	}, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	opts, err := baseOptions(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func indexCorpus(ctx context.Context, cmd *cli.Command) error {
	opts, err := baseOptions(cmd)
	if err != nil {
		return err
	}
	return internal.RunIndex(ctx, opts...)
}

func dump(ctx context.Context, cmd *cli.Command) error {
	opts, err := baseOptions(cmd)
	if err != nil {
		return err
	}
	opts = append(opts,
		internal.WithLogOutput(os.Stderr),
		internal.WithDumpArchive(cmd.String("archive")),
		internal.WithDumpWidth(dumpWidth(cmd)),
	)
	return internal.RunDump(ctx, opts...)
}

// dumpWidth returns --width, or the terminal width when the flag is unset
// and stdout is a terminal.
func dumpWidth(cmd *cli.Command) int {
	if cmd.IsSet("width") {
		return int(cmd.Int("width"))
	}
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	if w, _, err := term.GetSize(fd); err == nil {
		return w
	}
	return 0
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	opts, err := baseOptions(cmd)
	if err != nil {
		return err
	}
	opts = append(opts, internal.WithLogOutput(os.Stderr))
	return internal.RunMCP(ctx, opts...)
}

func main() {
	cmd := &cli.Command{
		Name:    "anyt",
		Usage:   "Index and browse the NYT Annotated Corpus through null-safe document views",
		Version: version,
		Action:  serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (.yaml or .toml)",
				DefaultText: defaultConfigPath,
				Value:       defaultConfigPath,
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Sync the index, then serve the HTTP API and watch the corpus",
				Action: serve,
			},
			{
				Name:   "index",
				Usage:  "Sync the index with the corpus once and exit",
				Action: indexCorpus,
			},
			{
				Name:  "dump",
				Usage: "Print the GUID and diagnostic view of every corpus document",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "archive",
						Usage: "Only dump this archive (path relative to the corpus root)",
					},
					&cli.IntFlag{
						Name:  "width",
						Usage: "Truncate each line to this many terminal cells (0 disables; defaults to the terminal width)",
						Value: 0,
					},
				},
				Action: dump,
			},
			{
				Name:   "mcp",
				Usage:  "Serve MCP tools over stdio",
				Action: serveMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
