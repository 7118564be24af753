package symbols

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// ParseError reports a malformed dictionary or script line with its position.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// section names inside a symbols.dic file
const (
	sectionComplex = "complexSymbols:"
	sectionSymbols = "symbols:"
)

// utf8BOM is written by the original import toolchain (utf_8_sig) and must be
// accepted on input.
const utf8BOM = "\ufeff"

// ParseFile parses a symbols.dic file from disk.
func ParseFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Parse(f, path)
}

// Parse reads a symbols dictionary. name is used in error messages.
//
// The format is line-oriented and tab-separated: "#" lines are comments, the
// "complexSymbols:" section holds identifier/pattern pairs and the "symbols:"
// section holds replacement rules. Multi-byte characters pass through
// byte-exact; a leading UTF-8 BOM is stripped.
func Parse(r io.Reader, name string) (*Dictionary, error) {
	dict := NewDictionary()

	scanner := bufio.NewScanner(r)
	// Dictionary lines are short, but keep headroom for pathological input.
	const maxLine = 1024 * 1024
	scanner.Buffer(make([]byte, maxLine), maxLine)

	section := ""
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, utf8BOM)
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch line {
		case sectionComplex, sectionSymbols:
			section = line
			continue
		}

		switch section {
		case sectionComplex:
			if err := parseComplexLine(dict, line, name, lineNo); err != nil {
				return nil, err
			}
		case sectionSymbols:
			if err := parseSymbolLine(dict, line, name, lineNo); err != nil {
				return nil, err
			}
		default:
			return nil, &ParseError{File: name, Line: lineNo, Msg: "rule outside of a section"}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}

	log.Debug().
		Str("file", name).
		Int("complex_rules", len(dict.ComplexRules)).
		Int("rules", len(dict.Rules)).
		Msg("Parsed symbols dictionary")

	return dict, nil
}

func parseComplexLine(dict *Dictionary, line, name string, lineNo int) error {
	fields := strings.Split(line, "\t")
	if len(fields) != 2 {
		return &ParseError{File: name, Line: lineNo,
			Msg: fmt.Sprintf("complex symbol needs identifier and pattern, got %d fields", len(fields))}
	}
	id, pattern := fields[0], fields[1]
	if id == "" {
		return &ParseError{File: name, Line: lineNo, Msg: "empty complex symbol identifier"}
	}
	if pattern == "" {
		return &ParseError{File: name, Line: lineNo, Msg: fmt.Sprintf("complex symbol %q has empty pattern", id)}
	}
	for _, cr := range dict.ComplexRules {
		if cr.Identifier == id {
			return &ParseError{File: name, Line: lineNo, Msg: fmt.Sprintf("duplicate complex symbol %q", id)}
		}
	}
	dict.AddComplexRule(ComplexRule{Identifier: id, Pattern: pattern})
	return nil
}

func parseSymbolLine(dict *Dictionary, line, name string, lineNo int) error {
	fields := strings.Split(line, "\t")
	if len(fields) < 2 {
		return &ParseError{File: name, Line: lineNo,
			Msg: "symbol rule needs at least a key and a replacement field"}
	}

	rule := Rule{Key: unescapeKey(fields[0])}
	if rule.Key == "" {
		return &ParseError{File: name, Line: lineNo, Msg: "empty symbol key"}
	}
	if _, dup := dict.Lookup(rule.Key); dup {
		return &ParseError{File: name, Line: lineNo, Msg: fmt.Sprintf("duplicate symbol %q", rule.Key)}
	}

	rest := fields[1:]
	// A trailing "# ..." field carries the human-readable display name.
	for i, f := range rest {
		if strings.HasPrefix(f, "#") {
			rule.DisplayName = strings.TrimSpace(strings.TrimPrefix(strings.Join(rest[i:], "\t"), "#"))
			rest = rest[:i]
			break
		}
	}

	if len(rest) > 0 {
		rule.Replacement = rest[0]
		rest = rest[1:]
	}
	if len(rest) > 2 {
		return &ParseError{File: name, Line: lineNo,
			Msg: fmt.Sprintf("too many fields for symbol %q", rule.Key)}
	}
	for _, tag := range rest {
		// "-" is a placeholder for an unset tag.
		if tag == "" || tag == "-" {
			continue
		}
		if rule.Level == "" {
			if lv, err := ParseLevel(tag); err == nil {
				rule.Level = lv
				continue
			}
		}
		if rule.Repeat == "" {
			if rp, err := ParseRepeat(tag); err == nil {
				rule.Repeat = rp
				continue
			}
		}
		return &ParseError{File: name, Line: lineNo,
			Msg: fmt.Sprintf("unknown tag %q for symbol %q", tag, rule.Key)}
	}

	dict.AddRule(rule)
	return nil
}

// Keys may contain characters that collide with the file format itself, so
// they are written with backslash escapes.
var keyUnescaper = strings.NewReplacer(
	`\t`, "\t",
	`\n`, "\n",
	`\r`, "\r",
	`\0`, "\x00",
	`\#`, "#",
	`\\`, `\`,
)

var keyEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\t", `\t`,
	"\n", `\n`,
	"\r", `\r`,
	"\x00", `\0`,
	"#", `\#`,
)

func unescapeKey(s string) string { return keyUnescaper.Replace(s) }
func escapeKey(s string) string   { return keyEscaper.Replace(s) }
