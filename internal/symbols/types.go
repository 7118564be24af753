package symbols

import "fmt"

// VerbosityLevel controls at which user speech-verbosity setting a symbol
// is announced.
type VerbosityLevel string

// Valid verbosity levels, in increasing order of chattiness.
const (
	LevelNone VerbosityLevel = "none"
	LevelSome VerbosityLevel = "some"
	LevelMost VerbosityLevel = "most"
	LevelAll  VerbosityLevel = "all"
)

// ParseLevel validates a verbosity level tag.
func ParseLevel(s string) (VerbosityLevel, error) {
	switch VerbosityLevel(s) {
	case LevelNone, LevelSome, LevelMost, LevelAll:
		return VerbosityLevel(s), nil
	}
	return "", fmt.Errorf("unknown verbosity level %q", s)
}

// RepeatPolicy controls whether repeated occurrences of a symbol are
// individually announced.
type RepeatPolicy string

const (
	RepeatAlways RepeatPolicy = "always"
	RepeatNone   RepeatPolicy = "norep"
)

// ParseRepeat validates a repeat policy tag.
func ParseRepeat(s string) (RepeatPolicy, error) {
	switch RepeatPolicy(s) {
	case RepeatAlways, RepeatNone:
		return RepeatPolicy(s), nil
	}
	return "", fmt.Errorf("unknown repeat policy %q", s)
}

// ComplexRule describes a symbol whose detection needs a context-sensitive
// pattern rather than a literal character match. The pattern is regex text
// interpreted by the consuming speech engine; it is kept opaque here because
// those engines support constructs (lookbehind) that Go's regexp does not.
type ComplexRule struct {
	Identifier string
	Pattern    string
}

// Rule maps a symbol key (a literal character/string, or the identifier of a
// complex rule) to its spoken replacement.
type Rule struct {
	Key         string
	Replacement string // may be empty
	Level       VerbosityLevel
	Repeat      RepeatPolicy
	DisplayName string // human-readable name from the trailing "# ..." field
}

// Dictionary is the parsed content of a symbols.dic file: the ordered
// complex-symbol detection rules followed by the replacement rules.
// Complex-rule order is preserved because engines may match in file order.
type Dictionary struct {
	ComplexRules []ComplexRule
	Rules        []Rule

	byKey map[string]int
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{byKey: make(map[string]int)}
}

// Lookup returns the replacement rule for a key.
func (d *Dictionary) Lookup(key string) (Rule, bool) {
	if d.byKey == nil {
		return Rule{}, false
	}
	i, ok := d.byKey[key]
	if !ok {
		return Rule{}, false
	}
	return d.Rules[i], true
}

// AddRule appends a replacement rule, replacing any previous rule for the
// same key in place.
func (d *Dictionary) AddRule(r Rule) {
	if d.byKey == nil {
		d.byKey = make(map[string]int)
	}
	if i, ok := d.byKey[r.Key]; ok {
		d.Rules[i] = r
		return
	}
	d.byKey[r.Key] = len(d.Rules)
	d.Rules = append(d.Rules, r)
}

// AddComplexRule appends a complex-symbol rule, replacing any previous rule
// with the same identifier in place so precedence order is kept.
func (d *Dictionary) AddComplexRule(r ComplexRule) {
	for i := range d.ComplexRules {
		if d.ComplexRules[i].Identifier == r.Identifier {
			d.ComplexRules[i] = r
			return
		}
	}
	d.ComplexRules = append(d.ComplexRules, r)
}

// Merge overlays another dictionary on top of this one. Rules from the
// overlay win per key; overlay complex rules replace same-identifier rules
// and otherwise append after the base ones.
func (d *Dictionary) Merge(overlay *Dictionary) {
	if overlay == nil {
		return
	}
	for _, cr := range overlay.ComplexRules {
		d.AddComplexRule(cr)
	}
	for _, r := range overlay.Rules {
		d.AddRule(r)
	}
}

// AnnouncementText returns the text a speech engine would actually say for a
// rule: the replacement, or the display name when the replacement is empty.
func AnnouncementText(r Rule) string {
	if r.Replacement != "" {
		return r.Replacement
	}
	return r.DisplayName
}
