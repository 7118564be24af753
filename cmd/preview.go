package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/daikw/sdlocale/internal/locale"
	"github.com/daikw/sdlocale/internal/speech"
	"github.com/daikw/sdlocale/internal/symbols"
)

func handlePreview(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() < 1 {
		return fmt.Errorf("usage: sdlocale preview <locale> <symbol>")
	}
	lang := c.Args().Get(0)

	langTag, err := speech.LanguageTag(lang)
	if err != nil {
		return err
	}

	// Flags override the config file, which overrides built-in defaults.
	cfg := toolConfig()
	providerName := cfg.EffectiveProvider(c.String("provider"))
	voice := c.String("voice")
	region := c.String("region")
	format := c.String("format")
	speed := c.Float("speed")
	if pc := cfg.ProviderConfig(providerName); pc != nil {
		if voice == "" {
			voice = pc.Voice
		}
		if region == "" {
			region = pc.Region
		}
		if format == "" {
			format = pc.Format
		}
		if speed == 0 {
			speed = pc.Speed
		}
	}
	if format == "" {
		format = "mp3"
	}

	provider, err := speech.NewProvider(ctx, providerName, region, voice, langTag)
	if err != nil {
		return err
	}

	if c.Bool("list-voices") {
		voices, err := provider.ListVoices(ctx, langTag)
		if err != nil {
			return err
		}
		if len(voices) == 0 {
			fmt.Printf("No %s voices for %s\n", provider.Name(), langTag)
			return nil
		}
		for _, v := range voices {
			fmt.Printf("%-28s %-8s %-8s %s\n", v.ID, v.Language, v.Gender, v.Description)
		}
		return nil
	}

	if c.Args().Len() != 2 {
		return fmt.Errorf("usage: sdlocale preview <locale> <symbol>")
	}
	key := c.Args().Get(1)

	dict, err := locale.NewTree(cfg.EffectiveRoot(c.String("root"))).Load(lang)
	if err != nil {
		return err
	}
	rule, ok := dict.Lookup(key)
	if !ok {
		return fmt.Errorf("symbol %q not defined for locale %s", key, lang)
	}
	text := symbols.AnnouncementText(rule)
	if text == "" {
		return fmt.Errorf("symbol %q has no spoken form", key)
	}

	log.Info().
		Str("provider", provider.Name()).
		Str("locale", lang).
		Str("symbol", key).
		Str("text", text).
		Msg("Synthesizing announcement")

	stream, err := provider.Synthesize(ctx, text, speech.Options{
		Voice:    voice,
		Language: langTag,
		Format:   format,
		Speed:    speed,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = stream.Close()
	}()

	if c.Bool("stdout") {
		_, err = io.Copy(os.Stdout, stream)
		return err
	}

	out := c.String("output")
	if out == "" {
		out = "preview." + format
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	n, err := io.Copy(f, stream)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write audio: %w", err)
	}

	fmt.Printf("Wrote %d bytes to %s\n", n, out)
	return nil
}
