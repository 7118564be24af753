package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/daikw/sdlocale/internal/importer"
)

func handleImportNVDA(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("usage: sdlocale import nvda <nvda-dir>")
	}

	imported, err := importer.ImportNVDA(c.Args().Get(0), treeRoot(c))
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d locales:\n", len(imported))
	for _, lang := range imported {
		fmt.Printf("  - %s\n", lang)
	}
	return nil
}

func handleImportCLDR(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("usage: sdlocale import cldr <cldr-dir>")
	}

	generated, err := importer.ImportCLDR(c.Args().Get(0), treeRoot(c))
	if err != nil {
		return err
	}
	fmt.Printf("Generated emoji dictionaries for %d locales\n", len(generated))
	return nil
}

func handleImportFontVariants(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("usage: sdlocale import font-variants <UnicodeData.txt>")
	}
	return importer.ImportFontVariants(c.Args().Get(0), treeRoot(c))
}
