package store

import (
	"fmt"
	"strings"

	"titlematch/src/internal/schema"
)

// syntaxError carries the byte offset where parsing stopped so callers can
// report a line number.
type syntaxError struct {
	off int
	msg string
}

func (e *syntaxError) Error() string { return "invalid bib: " + e.msg }

// monthMacros are the month abbreviations every BibTeX style predefines.
var monthMacros = map[string]string{
	"jan": "January", "feb": "February", "mar": "March", "apr": "April",
	"may": "May", "jun": "June", "jul": "July", "aug": "August",
	"sep": "September", "oct": "October", "nov": "November", "dec": "December",
}

// ParseBib parses BibTeX source into entries in file order. Values may be
// joined with '#'; bare names expand to earlier @string definitions or the
// month macros, and unknown names are kept as written. @comment and
// @preamble blocks are skipped.
func ParseBib(s string) ([]schema.BibEntry, error) {
	i := 0
	n := len(s)
	var recs []schema.BibEntry
	macros := make(map[string]string, len(monthMacros))
	for k, v := range monthMacros {
		macros[k] = v
	}
	fail := func(msg string) error { return &syntaxError{off: i, msg: msg} }
	skipWS := func() {
		for i < n {
			if s[i] == '%' {
				for i < n && s[i] != '\n' {
					i++
				}
				continue
			}
			if strings.IndexByte(" \t\r\n", s[i]) >= 0 {
				i++
			} else {
				break
			}
		}
	}
	readIdent := func() string {
		start := i
		for i < n && (('a' <= s[i] && s[i] <= 'z') || ('A' <= s[i] && s[i] <= 'Z')) {
			i++
		}
		return s[start:i]
	}
	// skipBlock consumes a balanced {...} or (...) body starting at the opener.
	skipBlock := func() error {
		open := s[i]
		closer := byte('}')
		if open == '(' {
			closer = ')'
		}
		depth := 0
		for i < n {
			switch s[i] {
			case open:
				depth++
			case closer:
				depth--
				if depth == 0 {
					i++
					return nil
				}
			}
			i++
		}
		return fail("unterminated block")
	}
	// readOperand reads one braced, quoted or bare value.
	readOperand := func(fname string) (string, error) {
		switch {
		case i < n && s[i] == '{':
			depth := 0
			i++
			vstart := i
			for i < n {
				switch s[i] {
				case '\\':
					i += 2
					continue
				case '{':
					depth++
				case '}':
					if depth == 0 {
						i++
						return s[vstart : i-1], nil
					}
					depth--
				}
				i++
			}
		case i < n && s[i] == '"':
			i++
			vstart := i
			for i < n {
				if s[i] == '\\' {
					i += 2
					continue
				}
				if s[i] == '"' {
					i++
					return s[vstart : i-1], nil
				}
				i++
			}
		default:
			vstart := i
			for i < n && strings.IndexByte(" \t\r\n,#=})", s[i]) < 0 {
				i++
			}
			tok := s[vstart:i]
			if tok == "" {
				return "", fail(fmt.Sprintf("missing value for field %q", fname))
			}
			if v, ok := macros[strings.ToLower(tok)]; ok {
				return v, nil
			}
			return tok, nil
		}
		return "", fail(fmt.Sprintf("unterminated value for field %q", fname))
	}
	// readValue joins the operands of a '#' concatenation.
	readValue := func(fname string) (string, error) {
		var b strings.Builder
		for {
			op, err := readOperand(fname)
			if err != nil {
				return "", err
			}
			b.WriteString(op)
			skipWS()
			if i < n && s[i] == '#' {
				i++
				skipWS()
				continue
			}
			return b.String(), nil
		}
	}
	// readFields reads "name = value" pairs up to and including the closer.
	// Values are returned raw.
	readFields := func() (map[string]string, error) {
		fields := map[string]string{}
		for {
			skipWS()
			if i >= n {
				return nil, fail("unexpected EOF in fields")
			}
			if s[i] == '}' || s[i] == ')' {
				i++
				return fields, nil
			}
			fstart := i
			for i < n && ((s[i] >= 'a' && s[i] <= 'z') || (s[i] >= 'A' && s[i] <= 'Z') || (s[i] >= '0' && s[i] <= '9') || s[i] == '_' || s[i] == '-') {
				i++
			}
			fname := strings.ToLower(strings.TrimSpace(s[fstart:i]))
			skipWS()
			if fname == "" || i >= n || s[i] != '=' {
				return nil, fail("expected '=' after field name")
			}
			i++
			skipWS()
			val, err := readValue(fname)
			if err != nil {
				return nil, err
			}
			fields[fname] = val
			if i < n && s[i] == ',' {
				i++
				continue
			}
			if i < n && (s[i] == '}' || s[i] == ')') {
				i++
				return fields, nil
			}
			return nil, fail(fmt.Sprintf("expected ',' or '}' after field %q", fname))
		}
	}
	for {
		skipWS()
		if i >= n {
			break
		}
		if s[i] != '@' {
			i++
			continue
		}
		i++
		skipWS()
		typ := strings.ToLower(readIdent())
		skipWS()
		if i >= n || (s[i] != '{' && s[i] != '(') {
			return nil, fail("expected '{' after type")
		}
		switch typ {
		case "comment", "preamble":
			if err := skipBlock(); err != nil {
				return nil, err
			}
			continue
		case "string":
			i++
			defs, err := readFields()
			if err != nil {
				return nil, err
			}
			for k, v := range defs {
				macros[k] = v
			}
			continue
		case "":
			return nil, fail("missing entry type")
		}
		// advance past delimiter
		i++
		skipWS()
		// key up to comma
		start := i
		for i < n && s[i] != ',' {
			if s[i] == '@' {
				return nil, fail("missing comma after key")
			}
			i++
		}
		if i >= n {
			return nil, fail("missing comma after key")
		}
		key := strings.TrimSpace(s[start:i])
		i++ // skip comma
		fields, err := readFields()
		if err != nil {
			return nil, err
		}
		for k, v := range fields {
			fields[k] = unescapeBib(v)
		}
		recs = append(recs, schema.BibEntry{Type: typ, Key: key, Fields: fields})
	}
	return recs, nil
}

func unescapeBib(s string) string {
	s = strings.ReplaceAll(s, "\\{", "{")
	s = strings.ReplaceAll(s, "\\}", "}")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// lineAt returns the 1-based line of byte offset off in s.
func lineAt(s string, off int) int {
	if off > len(s) {
		off = len(s)
	}
	return strings.Count(s[:off], "\n") + 1
}
