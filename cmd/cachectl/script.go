package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrUnknownOp is returned by ParseScript for an operation name it does not know.
var ErrUnknownOp = errors.New("unknown operation")

// Command is one parsed script line.
type Command struct {
	Line int
	Op   string
	Args []string
}

// arity is the number of arguments each operation takes.
var arity = map[string]int{
	"create-map":    1,
	"create-set":    1,
	"upsert-number": 3,
	"upsert-text":   3,
	"insert":        2,
	"remove-entry":  2,
	"remove-member": 2,
	"map-contains":  2,
	"set-contains":  2,
	"map-size":      1,
	"set-size":      1,
	"get-text":      2,
	"get-number":    2,
	"members":       1,
	"export":        1,
	"export-ipc":    1,
	"stats":         0,
}

// ParseScript reads one operation per line. Blank lines and lines starting
// with '#' are skipped. Arguments are separated by whitespace; an argument
// may be a Go-quoted string to carry spaces or an empty key.
func ParseScript(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields, err := splitFields(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cmd := Command{Line: line, Op: fields[0], Args: fields[1:]}
		if err := cmd.validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cmds, nil
}

func (c Command) validate() error {
	n, ok := arity[c.Op]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownOp, c.Op)
	}
	if len(c.Args) != n {
		return fmt.Errorf("%s takes %d argument(s), got %d", c.Op, n, len(c.Args))
	}
	if c.Op == "upsert-number" {
		if _, err := strconv.ParseFloat(c.Args[2], 64); err != nil {
			return fmt.Errorf("upsert-number: %w", err)
		}
	}
	return nil
}

// splitFields splits s on whitespace, honouring double- and back-quoted arguments.
func splitFields(s string) ([]string, error) {
	var out []string
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return out, nil
		}
		if s[0] == '"' || s[0] == '`' {
			q, err := strconv.QuotedPrefix(s)
			if err != nil {
				return nil, fmt.Errorf("bad quoted argument: %w", err)
			}
			v, err := strconv.Unquote(q)
			if err != nil {
				return nil, fmt.Errorf("bad quoted argument: %w", err)
			}
			out = append(out, v)
			s = s[len(q):]
			if s != "" && s[0] != ' ' && s[0] != '\t' {
				return nil, fmt.Errorf("missing space after quoted argument")
			}
			continue
		}
		end := strings.IndexAny(s, " \t")
		if end < 0 {
			end = len(s)
		}
		out = append(out, s[:end])
		s = s[end:]
	}
}
