package importer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/daikw/sdlocale/internal/locale"
	"github.com/daikw/sdlocale/internal/symbols"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// ImportNVDA copies every per-locale symbols.dic from an NVDA source checkout
// into the locale tree, validating each dictionary on the way. The dictionary
// content is copied byte-exact (after BOM stripping) with the generated-file
// header prepended; "en" is duplicated as "base". Returns the imported locale
// names, sorted.
func ImportNVDA(nvdaRoot, outRoot string) ([]string, error) {
	localeDir := filepath.Join(nvdaRoot, "source", "locale")
	entries, err := os.ReadDir(localeDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read NVDA locale directory: %w", err)
	}

	var imported []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		lang := entry.Name()
		src := filepath.Join(localeDir, lang, locale.SymbolsFile)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := importDictFile(src, filepath.Join(outRoot, lang, locale.SymbolsFile)); err != nil {
			return nil, err
		}
		imported = append(imported, lang)
	}
	if len(imported) == 0 {
		return nil, fmt.Errorf("no symbols.dic found under %s", localeDir)
	}
	sort.Strings(imported)

	// The English dictionary doubles as the language-independent fallback.
	enPath := filepath.Join(outRoot, "en", locale.SymbolsFile)
	if _, err := os.Stat(enPath); err == nil {
		basePath := filepath.Join(outRoot, locale.BaseLocale, locale.SymbolsFile)
		if err := importDictFile(enPath, basePath); err != nil {
			return nil, err
		}
	}

	log.Info().Int("locales", len(imported)).Str("out", outRoot).Msg("Imported NVDA dictionaries")
	return imported, nil
}

func importDictFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	// Reject malformed dictionaries before they enter the tree.
	if _, err := symbols.Parse(bytes.NewReader(data), src); err != nil {
		return err
	}
	// Strip any header a previous import generated so they do not stack up.
	data = bytes.TrimPrefix(data, []byte(DocHeader))
	data = bytes.TrimLeft(data, "\r\n")

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create locale directory: %w", err)
	}

	var out bytes.Buffer
	out.Write(utf8BOM)
	out.WriteString(DocHeader)
	out.WriteString("\n")
	out.Write(data)
	if err := os.WriteFile(dst, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}

	log.Debug().Str("src", src).Str("dst", dst).Msg("Imported dictionary")
	return nil
}
