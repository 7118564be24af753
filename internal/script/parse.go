package script

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/daikw/sdlocale/internal/symbols"
)

// ParseFile parses a test script from disk.
func ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Parse(f, path)
}

// Parse reads a test script. Every recognized line becomes exactly one
// directive, so the directive list length equals the number of recognized
// lines and keeps file order. name is used in error messages.
func Parse(r io.Reader, name string) (*Script, error) {
	s := &Script{Name: name}

	scanner := bufio.NewScanner(r)
	const maxLine = 1024 * 1024
	scanner.Buffer(make([]byte, maxLine), maxLine)

	inSpeak := false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if inSpeak {
			// Only text lines and the block terminator are valid here.
			switch {
			case strings.HasPrefix(line, "+"):
				s.Directives = append(s.Directives, Directive{
					Line: lineNo, Kind: KindText, Arg: strings.TrimPrefix(line, "+"),
				})
			case line == ".":
				inSpeak = false
				s.Directives = append(s.Directives, Directive{Line: lineNo, Kind: KindEnd})
			default:
				return nil, &symbols.ParseError{File: name, Line: lineNo,
					Msg: "speak block not terminated with \".\""}
			}
			continue
		}

		var d Directive
		var err error
		switch {
		case strings.HasPrefix(line, "!"):
			d, err = parseCommandLine(line, lineNo)
			if err == nil && d.Command == CmdSpeak {
				inSpeak = true
			}
		case strings.HasPrefix(line, "$"):
			d, err = parseWaitLine(line, lineNo)
		case strings.HasPrefix(line, "@"):
			d = Directive{Line: lineNo, Kind: KindNote, Arg: strings.TrimSpace(line[1:])}
		case strings.HasPrefix(line, "+"):
			err = fmt.Errorf("text line outside of a speak block")
		case line == ".":
			err = fmt.Errorf("\".\" without an open speak block")
		default:
			err = fmt.Errorf("unrecognized directive %q", line)
		}
		if err != nil {
			return nil, &symbols.ParseError{File: name, Line: lineNo, Msg: err.Error()}
		}
		s.Directives = append(s.Directives, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	if inSpeak {
		return nil, &symbols.ParseError{File: name, Line: lineNo,
			Msg: "unterminated speak block at end of file"}
	}

	log.Debug().
		Str("file", name).
		Int("directives", len(s.Directives)).
		Msg("Parsed test script")

	return s, nil
}

// command targets accepted on stop/pause/resume; the session defaults to SELF.
func validTarget(arg string) bool {
	switch strings.ToLower(arg) {
	case "self", "all":
		return true
	}
	return false
}

func parseCommandLine(line string, lineNo int) (Directive, error) {
	fields := strings.Fields(strings.TrimPrefix(line, "!"))
	if len(fields) == 0 {
		return Directive{}, fmt.Errorf("empty command line")
	}

	cmd, err := ParseCommand(fields[0])
	if err != nil {
		return Directive{}, err
	}
	d := Directive{Line: lineNo, Kind: KindCommand, Command: cmd}

	rest := fields[1:]
	// Optional trailing "@event" marker.
	if n := len(rest); n > 0 && strings.HasPrefix(rest[n-1], "@") {
		d.Expect = strings.TrimPrefix(rest[n-1], "@")
		rest = rest[:n-1]
	}

	switch cmd {
	case CmdStop, CmdPause, CmdResume:
		if len(rest) > 1 {
			return Directive{}, fmt.Errorf("too many arguments for %s", cmd)
		}
		if len(rest) == 1 {
			if !validTarget(rest[0]) {
				return Directive{}, fmt.Errorf("invalid target %q for %s", rest[0], cmd)
			}
			d.Arg = strings.ToLower(rest[0])
		}
	default: // speak, quit
		if len(rest) > 0 {
			return Directive{}, fmt.Errorf("%s takes no arguments", cmd)
		}
	}
	return d, nil
}

func parseWaitLine(line string, lineNo int) (Directive, error) {
	arg := strings.TrimSpace(strings.TrimPrefix(line, "$"))
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return Directive{}, fmt.Errorf("wait needs a positive number of seconds, got %q", arg)
	}
	return Directive{Line: lineNo, Kind: KindWait, Arg: strconv.Itoa(n)}, nil
}
