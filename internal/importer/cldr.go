package importer

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/daikw/sdlocale/internal/locale"
	"github.com/daikw/sdlocale/internal/symbols"
)

// cldrExceptions maps locales whose CLDR annotation files use non-standard
// names. For these the listed files are merged in order.
var cldrExceptions = map[string][]string{
	"sr":    {"sr", "sr_Latn"},
	"sr_BA": {"sr_Latn_BA"},
	"yue":   {"yue", "yue_Hans"},
	"zh_HK": {"zh_Hant_HK"},
	"zh_TW": {"zh_Hant"},
}

// Files that never map to a locale directory of their own: root.xml has no
// language content, en_001 and the Cyrillic Serbian variants are folded into
// other locales.
var cldrSkip = []string{"root.xml", "en_001.xml", "sr_Cyrl.xml", "sr_Cyrl_BA.xml"}

type cldrAnnotation struct {
	CP   string `xml:"cp,attr"`
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}

type cldrFile struct {
	Annotations []cldrAnnotation `xml:"annotations>annotation"`
}

// BuildEmojiDict merges the tts annotations of the given CLDR XML files into
// an emoji pronunciation dictionary. Later files override earlier ones per
// code point. Colons are stripped from the spoken text because they are
// significant to some engines.
func BuildEmojiDict(sources []string) (*symbols.Dictionary, error) {
	dict := symbols.NewDictionary()
	for _, source := range sources {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read CLDR file: %w", err)
		}
		var file cldrFile
		if err := xml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse CLDR file %s: %w", source, err)
		}
		for _, a := range file.Annotations {
			if a.Type != "tts" || a.CP == "" {
				continue
			}
			dict.AddRule(symbols.Rule{
				Key:         a.CP,
				Replacement: strings.ReplaceAll(a.Text, ":", ""),
				Level:       symbols.LevelNone,
			})
		}
	}
	if len(dict.Rules) == 0 {
		return nil, ErrNoAnnotations
	}
	return dict, nil
}

// ErrNoAnnotations reports that a set of CLDR files contains no tts
// annotations at all.
var ErrNoAnnotations = errors.New("no tts annotations found")

// ImportCLDR generates <lang>/emojis.dic for every locale in a CLDR checkout.
// Annotation files are merged with their annotationsDerived counterparts.
// Locales without tts annotations produce no file. Returns the generated
// locale names, sorted.
func ImportCLDR(cldrRoot, outRoot string) ([]string, error) {
	annotationsDir := filepath.Join(cldrRoot, "common", "annotations")
	derivedDir := filepath.Join(cldrRoot, "common", "annotationsDerived")

	entries, err := os.ReadDir(annotationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read CLDR annotations directory: %w", err)
	}

	processed := make(map[string]bool)
	for _, f := range cldrSkip {
		processed[f] = true
	}

	var generated []string

	// Exceptions first, so their files are marked processed before the
	// directory scan.
	for lang, files := range cldrExceptions {
		var sources []string
		for _, name := range files {
			for _, dir := range []string{annotationsDir, derivedDir} {
				path := filepath.Join(dir, name+".xml")
				if _, err := os.Stat(path); err == nil {
					sources = append(sources, path)
				}
			}
			processed[name+".xml"] = true
		}
		if len(sources) == 0 {
			continue
		}
		ok, err := writeEmojiDict(sources, outRoot, lang)
		if err != nil {
			return nil, err
		}
		if ok {
			generated = append(generated, lang)
		}
	}

	for _, entry := range entries {
		name := entry.Name()
		if processed[name] || !strings.HasSuffix(name, ".xml") {
			continue
		}
		lang := strings.TrimSuffix(name, ".xml")
		sources := []string{filepath.Join(annotationsDir, name)}
		if path := filepath.Join(derivedDir, name); fileExists(path) {
			sources = append(sources, path)
		}
		ok, err := writeEmojiDict(sources, outRoot, lang)
		if err != nil {
			return nil, err
		}
		if ok {
			generated = append(generated, lang)
		}
		processed[name] = true
	}

	sort.Strings(generated)
	log.Info().Int("locales", len(generated)).Str("out", outRoot).Msg("Imported CLDR emoji dictionaries")
	return generated, nil
}

func writeEmojiDict(sources []string, outRoot, lang string) (bool, error) {
	dict, err := BuildEmojiDict(sources)
	if errors.Is(err, ErrNoAnnotations) {
		// A locale without tts annotations is simply skipped.
		log.Debug().Str("locale", lang).Msg("No tts annotations, skipping")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	dir := filepath.Join(outRoot, lang)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create locale directory: %w", err)
	}
	dst := filepath.Join(dir, locale.EmojisFile)
	if err := dict.WriteFile(dst, symbols.GeneratedFileOptions(DocHeader)); err != nil {
		return false, err
	}
	log.Debug().Str("dst", dst).Int("emojis", len(dict.Rules)).Msg("Wrote emoji dictionary")
	return true, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
