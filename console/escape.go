package console

import "fmt"

// DefaultEscapeChar is ^] (GS), the conventional console escape.
const DefaultEscapeChar byte = 0x1D

type escapeState int

const (
	stateLineStart escapeState = iota // session start or just after CR/LF
	stateNormal
	stateEscaped // escape char seen at line start
)

// escapeFilter scans the user's input stream for the detach sequence.
// As in SSH, the escape character is only recognized at the start of a line;
// escape followed by '.' detaches, escape twice sends one literal escape
// byte, escape followed by anything else passes both bytes through.
type escapeFilter struct {
	escape byte
	state  escapeState
}

func newEscapeFilter(escape byte) *escapeFilter {
	return &escapeFilter{escape: escape, state: stateLineStart}
}

// Feed consumes raw input bytes and returns the bytes to forward to the
// remote, plus whether the detach sequence was completed.
func (f *escapeFilter) Feed(in []byte) (out []byte, detach bool) {
	out = make([]byte, 0, len(in))
	for _, b := range in {
		switch f.state {
		case stateEscaped:
			switch b {
			case '.':
				return out, true
			case f.escape:
				out = append(out, f.escape)
				f.state = stateNormal
			default:
				out = append(out, f.escape, b)
				f.state = afterByte(b)
			}
		case stateLineStart:
			if b == f.escape {
				f.state = stateEscaped
				continue
			}
			out = append(out, b)
			f.state = afterByte(b)
		default:
			out = append(out, b)
			f.state = afterByte(b)
		}
	}
	return out, false
}

func afterByte(b byte) escapeState {
	if b == '\r' || b == '\n' {
		return stateLineStart
	}
	return stateNormal
}

// FormatEscapeChar renders the escape byte for display, caret notation for
// control characters.
func FormatEscapeChar(b byte) string {
	if b >= 1 && b <= 0x1F {
		return "^" + string(rune(b+'@'))
	}
	return string(b)
}

// ParseEscapeChar parses an --escape-char value: either one raw character or
// caret notation for a control character ("^]", "^A", ...).
func ParseEscapeChar(s string) (byte, error) {
	if len(s) == 2 && s[0] == '^' {
		c := s[1]
		switch {
		case c >= '@' && c <= '_':
			return checkEscapeByte(c-'@', s)
		case c >= 'a' && c <= 'z':
			return checkEscapeByte(c-'a'+1, s)
		}
		return 0, fmt.Errorf("invalid caret notation %q", s)
	}
	if len(s) == 1 {
		return checkEscapeByte(s[0], s)
	}
	return 0, fmt.Errorf("escape-char must be a single character or ^X caret notation, got %q", s)
}

func checkEscapeByte(b byte, original string) (byte, error) {
	switch {
	case b == 0:
		return 0, fmt.Errorf("NUL cannot be the escape character")
	case b == '\r' || b == '\n':
		return 0, fmt.Errorf("CR/LF cannot be the escape character (conflicts with line-start detection)")
	case b == '.':
		return 0, fmt.Errorf("%q cannot be the escape character (conflicts with the detach sequence)", original)
	case b >= 0x80:
		return 0, fmt.Errorf("non-ASCII byte 0x%02X cannot be the escape character", b)
	}
	return b, nil
}
