package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/daikw/sdlocale/internal/config"
	"github.com/daikw/sdlocale/internal/importer"
	"github.com/daikw/sdlocale/internal/locale"
	"github.com/daikw/sdlocale/internal/script"
	"github.com/daikw/sdlocale/internal/symbols"
)

var (
	okMark   = color.New(color.FgGreen)
	failMark = color.New(color.FgRed)
	keyStyle = color.New(color.FgCyan)
)

// toolConfig loads the optional config file; a missing file is not an error.
func toolConfig() *config.File {
	cfg, err := config.NewLoader().Load(".")
	if err != nil {
		log.Warn().Err(err).Msg("Ignoring unreadable config file")
		return nil
	}
	return cfg
}

// treeRoot resolves the locale tree root from the flag, config, or default.
func treeRoot(c *cli.Command) string {
	return toolConfig().EffectiveRoot(c.String("root"))
}

func handleCheck(ctx context.Context, c *cli.Command) error {
	files := c.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("usage: sdlocale check <file>...")
	}

	failed := 0
	for _, file := range files {
		if err := checkFile(file); err != nil {
			failMark.Printf("✗ %s\n", file)
			fmt.Printf("  %v\n", err)
			failed++
			continue
		}
		okMark.Printf("✓ %s\n", file)
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d files failed validation", failed, len(files)), 1)
	}
	return nil
}

func checkFile(path string) error {
	switch filepath.Ext(path) {
	case ".dic":
		_, err := symbols.ParseFile(path)
		return err
	case ".test":
		_, err := script.ParseFile(path)
		return err
	}
	return fmt.Errorf("unknown file type (want .dic or .test)")
}

func handleFmt(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("usage: sdlocale fmt <file>")
	}
	path := c.Args().Get(0)

	dict, err := symbols.ParseFile(path)
	if err != nil {
		return err
	}

	opts := symbols.WriteOptions{}
	if c.Bool("generated") {
		opts = symbols.GeneratedFileOptions(importer.DocHeader)
	}

	if c.Bool("write") {
		if err := dict.WriteFile(path, opts); err != nil {
			return err
		}
		log.Info().Str("file", path).Msg("Reformatted dictionary")
		return nil
	}
	return dict.Write(os.Stdout, opts)
}

func handleLookup(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("usage: sdlocale lookup <locale> <symbol>")
	}
	lang, key := c.Args().Get(0), c.Args().Get(1)

	tree := locale.NewTree(treeRoot(c))
	dict, err := tree.Load(lang)
	if err != nil {
		return err
	}

	rule, ok := dict.Lookup(key)
	if !ok {
		return fmt.Errorf("symbol %q not defined for locale %s (chain: %s)",
			key, lang, strings.Join(locale.FallbackChain(lang), " → "))
	}

	keyStyle.Printf("%s\n", rule.Key)
	fmt.Printf("  replacement: %q\n", rule.Replacement)
	if rule.Level != "" {
		fmt.Printf("  level:       %s\n", rule.Level)
	}
	if rule.Repeat != "" {
		fmt.Printf("  repeat:      %s\n", rule.Repeat)
	}
	if rule.DisplayName != "" {
		fmt.Printf("  display:     %s\n", rule.DisplayName)
	}
	fmt.Printf("  announced:   %q\n", symbols.AnnouncementText(rule))
	return nil
}

func handleLocales(ctx context.Context, c *cli.Command) error {
	tree := locale.NewTree(treeRoot(c))
	locales, err := tree.Discover()
	if err != nil {
		return err
	}

	if len(locales) == 0 {
		fmt.Println("No locales found. Populate the tree with 'sdlocale import'")
		return nil
	}

	for _, info := range locales {
		fmt.Printf("%-8s %4d rules  %s\n", info.Name, info.RuleCount, strings.Join(info.Files, ", "))
	}
	return nil
}
