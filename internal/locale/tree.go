// Package locale manages a speech-dispatcher locale data tree: one directory
// per locale (plus "base"), each holding symbols.dic and optionally
// emojis.dic and font-variants.dic.
package locale

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/daikw/sdlocale/internal/symbols"
)

// Dictionary file names known to the tree.
const (
	SymbolsFile      = "symbols.dic"
	EmojisFile       = "emojis.dic"
	FontVariantsFile = "font-variants.dic"
)

// BaseLocale is the fallback locale every lookup ends at.
const BaseLocale = "base"

// Info describes one locale directory.
type Info struct {
	Name      string
	Files     []string // dictionary files present, sorted
	RuleCount int      // replacement rules across all present dictionaries
}

// Tree provides access to a locale data tree rooted at a directory.
type Tree struct {
	root string
}

// NewTree creates a tree handle for the given root directory.
func NewTree(root string) *Tree {
	return &Tree{root: root}
}

// Root returns the tree's root directory.
func (t *Tree) Root() string {
	return t.root
}

// Discover lists all locales in the tree, sorted by name. A directory counts
// as a locale when it contains at least one known dictionary file.
func (t *Tree) Discover() ([]Info, error) {
	entries, err := os.ReadDir(t.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale tree: %w", err)
	}

	var locales []Info
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := t.localeInfo(entry.Name())
		if err != nil {
			return nil, err
		}
		if len(info.Files) == 0 {
			continue
		}
		locales = append(locales, info)
	}

	sort.Slice(locales, func(i, j int) bool { return locales[i].Name < locales[j].Name })
	log.Debug().Str("root", t.root).Int("locales", len(locales)).Msg("Discovered locales")
	return locales, nil
}

func (t *Tree) localeInfo(name string) (Info, error) {
	info := Info{Name: name}
	for _, file := range []string{EmojisFile, FontVariantsFile, SymbolsFile} {
		path := filepath.Join(t.root, name, file)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		dict, err := symbols.ParseFile(path)
		if err != nil {
			return Info{}, err
		}
		info.Files = append(info.Files, file)
		info.RuleCount += len(dict.Rules)
	}
	sort.Strings(info.Files)
	return info, nil
}

// Exists checks whether a locale directory with dictionary data is present.
func (t *Tree) Exists(name string) bool {
	info, err := t.localeInfo(name)
	return err == nil && len(info.Files) > 0
}

// FallbackChain returns the lookup order for a locale, most specific first:
// the locale itself, its parent language for territory variants like sr_BA,
// then base.
func FallbackChain(lang string) []string {
	chain := []string{lang}
	if i := strings.IndexAny(lang, "_-"); i > 0 {
		chain = append(chain, lang[:i])
	}
	if lang != BaseLocale {
		chain = append(chain, BaseLocale)
	}
	return chain
}

// Load resolves the merged symbol dictionary for a locale. Dictionaries from
// the fallback chain are layered so the most specific locale wins per key;
// emoji and font-variant dictionaries are folded in below the locale's own
// symbols.
func (t *Tree) Load(lang string) (*symbols.Dictionary, error) {
	chain := FallbackChain(lang)

	merged := symbols.NewDictionary()
	loaded := 0
	// Apply least specific first so Merge lets later layers win.
	for i := len(chain) - 1; i >= 0; i-- {
		for _, file := range []string{FontVariantsFile, EmojisFile, SymbolsFile} {
			path := filepath.Join(t.root, chain[i], file)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			dict, err := symbols.ParseFile(path)
			if err != nil {
				return nil, err
			}
			merged.Merge(dict)
			loaded++
		}
	}
	if loaded == 0 {
		return nil, fmt.Errorf("no dictionaries found for locale %q under %s", lang, t.root)
	}

	log.Debug().
		Str("locale", lang).
		Strs("chain", chain).
		Int("files", loaded).
		Int("rules", len(merged.Rules)).
		Msg("Loaded locale dictionaries")

	return merged, nil
}
