package symbols

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// WriteOptions controls dictionary serialization.
type WriteOptions struct {
	// Header is prepended verbatim before the first section (comment lines).
	Header string
	// BOM writes a UTF-8 byte order mark, as the original import toolchain does.
	BOM bool
	// CRLF uses \r\n line endings to match generated dictionaries.
	CRLF bool
}

// GeneratedFileOptions matches the output of the import pipeline: BOM plus
// CRLF line endings.
func GeneratedFileOptions(header string) WriteOptions {
	return WriteOptions{Header: header, BOM: true, CRLF: true}
}

// Write serializes the dictionary. Parsing the output yields an equivalent
// rule set, preserving complex-rule order.
func (d *Dictionary) Write(w io.Writer, opts WriteOptions) error {
	bw := bufio.NewWriter(w)
	eol := "\n"
	if opts.CRLF {
		eol = "\r\n"
	}

	if opts.BOM {
		if _, err := bw.WriteString(utf8BOM); err != nil {
			return fmt.Errorf("failed to write dictionary: %w", err)
		}
	}
	if opts.Header != "" {
		header := strings.ReplaceAll(opts.Header, "\r\n", "\n")
		for _, line := range strings.Split(strings.TrimRight(header, "\n"), "\n") {
			if _, err := bw.WriteString(line + eol); err != nil {
				return fmt.Errorf("failed to write dictionary: %w", err)
			}
		}
	}

	if len(d.ComplexRules) > 0 {
		if _, err := bw.WriteString(sectionComplex + eol); err != nil {
			return fmt.Errorf("failed to write dictionary: %w", err)
		}
		for _, cr := range d.ComplexRules {
			if _, err := bw.WriteString(cr.Identifier + "\t" + cr.Pattern + eol); err != nil {
				return fmt.Errorf("failed to write dictionary: %w", err)
			}
		}
		if _, err := bw.WriteString(eol); err != nil {
			return fmt.Errorf("failed to write dictionary: %w", err)
		}
	}

	if _, err := bw.WriteString(sectionSymbols + eol); err != nil {
		return fmt.Errorf("failed to write dictionary: %w", err)
	}
	for _, r := range d.Rules {
		if _, err := bw.WriteString(formatRule(r) + eol); err != nil {
			return fmt.Errorf("failed to write dictionary: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write dictionary: %w", err)
	}
	return nil
}

// WriteFile serializes the dictionary to a file.
func (d *Dictionary) WriteFile(path string, opts WriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dictionary file: %w", err)
	}
	if err := d.Write(f, opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close dictionary file: %w", err)
	}
	return nil
}

func formatRule(r Rule) string {
	fields := []string{escapeKey(r.Key), r.Replacement}
	switch {
	case r.Level != "":
		fields = append(fields, string(r.Level))
		if r.Repeat != "" {
			fields = append(fields, string(r.Repeat))
		}
	case r.Repeat != "":
		// Level placeholder so the repeat tag keeps its column.
		fields = append(fields, "-", string(r.Repeat))
	}
	if r.DisplayName != "" {
		fields = append(fields, "# "+r.DisplayName)
	}
	return strings.Join(fields, "\t")
}
