package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

var (
	version  = "dev"
	revision = "none"
)

func main() {
	// Setup logger
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.Command{
		Name:  "sdlocale",
		Usage: "speech-dispatcher locale data toolkit - validate, format and rebuild symbol dictionaries",
		Description: `sdlocale works with the locale data tree of a speech subsystem:
per-locale symbol pronunciation dictionaries (symbols.dic, emojis.dic,
font-variants.dic) and plain-text test scripts for the speech-dispatcher
test harness. It validates and reformats those files, resolves symbol
lookups through the locale fallback chain, rebuilds the tree from NVDA,
CLDR and Unicode sources, and previews announcements through cloud TTS.`,
		Version: fmt.Sprintf("%s (rev: %s)", version, revision),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "Enable verbose logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Validate dictionary and test-script files",
				Action:    handleCheck,
				Aliases:   []string{"c"},
				ArgsUsage: "<file>...",
			},
			{
				Name:      "fmt",
				Usage:     "Reformat a symbols dictionary in canonical form",
				Action:    handleFmt,
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "write",
						Aliases: []string{"w"},
						Usage:   "Rewrite the file in place instead of printing to stdout",
					},
					&cli.BoolFlag{
						Name:  "generated",
						Usage: "Write generated-file framing (BOM, CRLF, doc header)",
					},
				},
			},
			{
				Name:      "lookup",
				Usage:     "Resolve a symbol through the locale fallback chain",
				Action:    handleLookup,
				Aliases:   []string{"l"},
				ArgsUsage: "<locale> <symbol>",
				Flags:     []cli.Flag{rootFlag()},
			},
			{
				Name:    "locales",
				Usage:   "List locales in the data tree",
				Action:  handleLocales,
				Aliases: []string{"ls"},
				Flags:   []cli.Flag{rootFlag()},
			},
			{
				Name:  "script",
				Usage: "Work with speech-dispatcher test scripts",
				Commands: []*cli.Command{
					{
						Name:      "show",
						Usage:     "Print the parsed directive list of a test script",
						Action:    handleScriptShow,
						ArgsUsage: "<file>",
					},
				},
			},
			{
				Name:  "import",
				Usage: "Rebuild the locale tree from upstream sources",
				Commands: []*cli.Command{
					{
						Name:      "nvda",
						Usage:     "Import per-locale symbols.dic from an NVDA checkout",
						Action:    handleImportNVDA,
						ArgsUsage: "<nvda-dir>",
						Flags:     []cli.Flag{rootFlag()},
					},
					{
						Name:      "cldr",
						Usage:     "Generate emojis.dic files from a CLDR checkout",
						Action:    handleImportCLDR,
						ArgsUsage: "<cldr-dir>",
						Flags:     []cli.Flag{rootFlag()},
					},
					{
						Name:      "font-variants",
						Usage:     "Generate base/font-variants.dic from UnicodeData.txt",
						Action:    handleImportFontVariants,
						ArgsUsage: "<UnicodeData.txt>",
						Flags:     []cli.Flag{rootFlag()},
					},
				},
			},
			{
				Name:      "preview",
				Usage:     "Synthesize how a symbol will be announced",
				Action:    handlePreview,
				ArgsUsage: "<locale> <symbol>",
				Flags: []cli.Flag{
					rootFlag(),
					&cli.StringFlag{
						Name:  "provider",
						Usage: "TTS provider: gcp, polly (default from config, then gcp)",
					},
					&cli.StringFlag{
						Name:  "voice",
						Usage: "Voice ID or name (provider-specific)",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Audio format: mp3, wav, ogg",
					},
					&cli.StringFlag{
						Name:  "region",
						Usage: "AWS region for Polly",
					},
					&cli.FloatFlag{
						Name:  "speed",
						Usage: "Speech speed (0.25-4.0, provider dependent)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: preview.<format>)",
					},
					&cli.BoolFlag{
						Name:  "stdout",
						Usage: "Stream audio to stdout instead of writing a file",
					},
					&cli.BoolFlag{
						Name:  "list-voices",
						Usage: "List voices usable for the locale and exit",
					},
				},
			},
		},
		Before: func(ctx context.Context, c *cli.Command) error {
			if c.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return nil
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("Failed to run application")
	}
}

func rootFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "root",
		Aliases: []string{"r"},
		Usage:   "Locale data tree root (default from config, then \"locale\")",
	}
}
