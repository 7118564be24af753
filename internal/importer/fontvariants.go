package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/unicode/norm"

	"github.com/daikw/sdlocale/internal/locale"
	"github.com/daikw/sdlocale/internal/symbols"
)

// fontPrefix marks font-variant decompositions in UnicodeData.txt field 5,
// e.g. "<font> 0041" for MATHEMATICAL BOLD CAPITAL A.
const fontPrefix = "<font> "

// BuildFontVariants reads UnicodeData.txt and maps every font-variant
// character to the base character it should be pronounced as. Variants that
// NFKC composition already resolves are skipped, since engines normalize
// those on their own.
func BuildFontVariants(unicodeDataPath string) (*symbols.Dictionary, error) {
	f, err := os.Open(unicodeDataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open UnicodeData.txt: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse UnicodeData.txt: %w", err)
	}

	dict := symbols.NewDictionary()
	for _, rec := range records {
		if len(rec) < 6 || !strings.HasPrefix(rec[5], "<font>") {
			continue
		}
		variant, err := runeFromHex(rec[0])
		if err != nil {
			return nil, fmt.Errorf("bad code point %q in UnicodeData.txt: %w", rec[0], err)
		}
		pronounced, err := runeFromHex(strings.TrimPrefix(rec[5], fontPrefix))
		if err != nil {
			return nil, fmt.Errorf("bad decomposition %q in UnicodeData.txt: %w", rec[5], err)
		}
		if string(pronounced) == norm.NFKC.String(string(variant)) {
			continue
		}
		dict.AddRule(symbols.Rule{
			Key:         string(variant),
			Replacement: string(pronounced),
			Level:       symbols.LevelNone,
			Repeat:      symbols.RepeatAlways,
		})
	}
	if len(dict.Rules) == 0 {
		return nil, fmt.Errorf("no font variants found in %s", unicodeDataPath)
	}

	log.Debug().Int("variants", len(dict.Rules)).Msg("Built font-variant dictionary")
	return dict, nil
}

func runeFromHex(s string) (rune, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 16, 32)
	if err != nil {
		return 0, err
	}
	return rune(n), nil
}

// ImportFontVariants writes base/font-variants.dic generated from
// UnicodeData.txt.
func ImportFontVariants(unicodeDataPath, outRoot string) error {
	dict, err := BuildFontVariants(unicodeDataPath)
	if err != nil {
		return err
	}

	dir := filepath.Join(outRoot, locale.BaseLocale)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create base locale directory: %w", err)
	}
	dst := filepath.Join(dir, locale.FontVariantsFile)
	if err := dict.WriteFile(dst, symbols.GeneratedFileOptions(DocHeader)); err != nil {
		return err
	}

	log.Info().Str("dst", dst).Int("variants", len(dict.Rules)).Msg("Imported font variants")
	return nil
}
