// Copyright (C) 2024 nsfisis. All Rights Reserved.

package reparojson

import (
	"bytes"
	"io"

	"go4.org/mem"
)

// A parser walks the JSON grammar over a cursor, echoing every accepted byte
// to out. It has one piece of state beyond the read position: the repaired
// flag, set the first time a comma correction is applied and never cleared.
//
// Each production commits its bytes to out as it accepts them; there is no
// backtracking. The only bytes ever held back are a run of whitespace after
// an array element or object member, buffered until the following byte
// decides whether a comma must be echoed, dropped, or inserted ahead of it.
type parser struct {
	in       *cursor
	out      io.Writer
	repaired bool

	b1 [1]byte // scratch for single-byte writes
}

// walkJSON parses one element and then requires end of input.
func (p *parser) walkJSON() error {
	if err := p.walkElement(); err != nil {
		return err
	}
	done, err := p.in.atEOF()
	if err != nil {
		return err
	} else if !done {
		return syntaxError(p.in.pos-1, ErrTrailingData)
	}
	return nil
}

// walkElement parses whitespace, a value, and whitespace.
func (p *parser) walkElement() error {
	if err := p.walkSpace(p.out); err != nil {
		return err
	}
	if err := p.walkValue(); err != nil {
		return err
	}
	return p.walkSpace(p.out)
}

// walkValue dispatches on the lookahead byte.
func (p *parser) walkValue() error {
	c, err := p.in.peek()
	if err != nil {
		return err
	}
	switch {
	case c == 'n':
		return p.walkLiteral("null")
	case c == 't':
		return p.walkLiteral("true")
	case c == 'f':
		return p.walkLiteral("false")
	case c == '{':
		return p.walkObject()
	case c == '[':
		return p.walkArray()
	case c == '"':
		return p.walkString()
	case c == '-' || isDigit(c):
		return p.walkNumber()
	}
	return p.invalid()
}

// walkLiteral consumes the spelling of lit, whose first byte the caller has
// already vetted, and writes the canonical spelling. A mismatched byte is an
// invalid value; a garbled literal never produces a partial echo.
func (p *parser) walkLiteral(lit string) error {
	want := mem.S(lit)
	p.in.skip()
	for i := 1; i < want.Len(); i++ {
		c, err := p.in.next()
		if err != nil {
			return err
		} else if c != want.At(i) {
			return p.invalid()
		}
	}
	_, err := io.WriteString(p.out, lit)
	return err
}

// walkObject parses an object, the opening brace vetted by the caller.
// Precondition: lookahead == '{'.
func (p *parser) walkObject() error {
	p.in.skip()
	if err := p.writeByte('{'); err != nil {
		return err
	}
	if err := p.walkSpace(p.out); err != nil {
		return err
	}

	first, err := p.in.peek()
	if err != nil {
		return err
	}
	if first == '"' {
		if err := p.walkMembers(); err != nil {
			return err
		}
	}

	// A comma here can only be trailing: drop it, keep the whitespace.
	c, err := p.in.peek()
	if err != nil {
		return err
	}
	if c == ',' {
		p.repaired = true
		p.in.skip()
		if err := p.walkSpace(p.out); err != nil {
			return err
		}
	}
	return p.walkChar('}')
}

// walkMembers parses one or more "key": value members.
// Precondition: lookahead == '"'.
func (p *parser) walkMembers() error {
	var ws bytes.Buffer
	for {
		if err := p.walkMember(); err != nil {
			return err
		}

		// Hold the whitespace after the member until the next byte decides
		// what the separator looks like.
		ws.Reset()
		if err := p.walkSpace(&ws); err != nil {
			return err
		}

		c, err := p.in.peek()
		if err != nil {
			return err
		}
		switch c {
		case '}':
			_, err := p.out.Write(ws.Bytes())
			return err

		case ',':
			if _, err := p.out.Write(ws.Bytes()); err != nil {
				return err
			}
			ws.Reset()
			p.in.skip()
			if err := p.walkSpace(&ws); err != nil {
				return err
			}

			c, err := p.in.peek()
			if err != nil {
				return err
			}
			if c == '}' {
				// Trailing comma: the comma is dropped, its whitespace kept.
				p.repaired = true
				_, err := p.out.Write(ws.Bytes())
				return err
			}
			if err := p.writeByte(','); err != nil {
				return err
			}
			if _, err := p.out.Write(ws.Bytes()); err != nil {
				return err
			}

		default:
			// Another member follows with only whitespace between: a missing
			// comma. Insert one ahead of the buffered whitespace.
			p.repaired = true
			if err := p.writeByte(','); err != nil {
				return err
			}
			if _, err := p.out.Write(ws.Bytes()); err != nil {
				return err
			}
		}
	}
}

// walkMember parses a single "key": value member.
func (p *parser) walkMember() error {
	if err := p.walkString(); err != nil {
		return err
	}
	if err := p.walkSpace(p.out); err != nil {
		return err
	}
	if err := p.walkChar(':'); err != nil {
		return err
	}
	if err := p.walkSpace(p.out); err != nil {
		return err
	}
	return p.walkValue()
}

// walkArray parses an array, the opening bracket vetted by the caller.
// Precondition: lookahead == '['.
func (p *parser) walkArray() error {
	p.in.skip()
	if err := p.writeByte('['); err != nil {
		return err
	}
	if err := p.walkSpace(p.out); err != nil {
		return err
	}

	first, err := p.in.peek()
	if err != nil {
		return err
	}
	if first != ',' && first != ']' {
		if err := p.walkElements(); err != nil {
			return err
		}
	}

	// A comma here can only be trailing: drop it, keep the whitespace.
	c, err := p.in.peek()
	if err != nil {
		return err
	}
	if c == ',' {
		p.repaired = true
		p.in.skip()
		if err := p.walkSpace(p.out); err != nil {
			return err
		}
	}
	return p.walkChar(']')
}

// walkElements parses one or more array values. Structurally the same loop
// as walkMembers, applied to bare values and "]".
func (p *parser) walkElements() error {
	var ws bytes.Buffer
	for {
		if err := p.walkValue(); err != nil {
			return err
		}

		ws.Reset()
		if err := p.walkSpace(&ws); err != nil {
			return err
		}

		c, err := p.in.peek()
		if err != nil {
			return err
		}
		switch c {
		case ']':
			_, err := p.out.Write(ws.Bytes())
			return err

		case ',':
			if _, err := p.out.Write(ws.Bytes()); err != nil {
				return err
			}
			ws.Reset()
			p.in.skip()
			if err := p.walkSpace(&ws); err != nil {
				return err
			}

			c, err := p.in.peek()
			if err != nil {
				return err
			}
			if c == ']' {
				p.repaired = true
				_, err := p.out.Write(ws.Bytes())
				return err
			}
			if err := p.writeByte(','); err != nil {
				return err
			}
			if _, err := p.out.Write(ws.Bytes()); err != nil {
				return err
			}

		default:
			p.repaired = true
			if err := p.writeByte(','); err != nil {
				return err
			}
			if _, err := p.out.Write(ws.Bytes()); err != nil {
				return err
			}
		}
	}
}

// walkString parses a quoted string. String contents are echoed verbatim;
// only the escape introducer is validated beyond framing.
func (p *parser) walkString() error {
	c, err := p.in.peek()
	if err != nil {
		return err
	} else if c != '"' {
		return p.invalid()
	}
	p.in.skip()
	if err := p.writeByte('"'); err != nil {
		return err
	}
	for {
		c, err := p.in.next()
		if err != nil {
			return err
		}
		switch c {
		case '"':
			return p.writeByte('"')
		case '\\':
			if err := p.walkEscape(); err != nil {
				return err
			}
		default:
			if err := p.writeByte(c); err != nil {
				return err
			}
		}
	}
}

// walkEscape parses the remainder of an escape sequence, the backslash
// already consumed. All bytes of a valid escape are echoed, including the
// "u" and all four hex digits of a Unicode escape.
func (p *parser) walkEscape() error {
	c, err := p.in.next()
	if err != nil {
		return err
	}
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		_, err := p.out.Write([]byte{'\\', c})
		return err

	case 'u':
		var esc [6]byte
		esc[0], esc[1] = '\\', 'u'
		for i := 2; i < len(esc); i++ {
			d, err := p.in.next()
			if err != nil {
				return err
			}
			esc[i] = d
		}
		for _, d := range esc[2:] {
			if !isHexDigit(d) {
				return p.invalid()
			}
		}
		_, err := p.out.Write(esc[:])
		return err
	}
	return p.invalid()
}

// walkNumber parses a number: integer part, optional fraction, optional
// exponent. Every digit is echoed as read; the value is never reinterpreted
// or re-rendered.
func (p *parser) walkNumber() error {
	if err := p.walkInteger(); err != nil {
		return err
	}
	if err := p.walkFraction(); err != nil {
		return err
	}
	return p.walkExponent()
}

// walkInteger parses an optional single "-" and then either a lone zero or a
// nonzero digit followed by a maximal digit run. Redundant leading zeroes are
// not consumed here; "01" parses as "0" and the "1" fails upstream as
// trailing content.
func (p *parser) walkInteger() error {
	c, err := p.in.next()
	if err != nil {
		return err
	}
	if c == '-' {
		if err := p.writeByte('-'); err != nil {
			return err
		}
		c, err = p.in.next()
		if err != nil {
			return err
		}
	}
	switch {
	case c == '0':
		return p.writeByte('0')

	case '1' <= c && c <= '9':
		if err := p.writeByte(c); err != nil {
			return err
		}
		for {
			c, ok, err := p.in.tryPeek()
			if err != nil {
				return err
			} else if !ok || !isDigit(c) {
				return nil
			}
			if err := p.writeByte(c); err != nil {
				return err
			}
			p.in.skip()
		}
	}
	return p.invalid()
}

// walkDigits consumes a maximal run of at least one digit.
func (p *parser) walkDigits() error {
	var nd int
	for {
		c, ok, err := p.in.tryPeek()
		if err != nil {
			return err
		} else if !ok {
			if nd == 0 {
				return syntaxError(p.in.pos, ErrUnexpectedEOF)
			}
			return nil
		} else if !isDigit(c) {
			if nd == 0 {
				return p.invalid()
			}
			return nil
		}
		if err := p.writeByte(c); err != nil {
			return err
		}
		p.in.skip()
		nd++
	}
}

func (p *parser) walkFraction() error {
	c, ok, err := p.in.tryPeek()
	if err != nil {
		return err
	} else if !ok || c != '.' {
		return nil
	}
	p.in.skip()
	if err := p.writeByte('.'); err != nil {
		return err
	}
	return p.walkDigits()
}

func (p *parser) walkExponent() error {
	c, ok, err := p.in.tryPeek()
	if err != nil {
		return err
	} else if !ok || (c != 'e' && c != 'E') {
		return nil
	}
	p.in.skip()
	if err := p.writeByte(c); err != nil {
		return err
	}
	if err := p.walkSign(); err != nil {
		return err
	}
	return p.walkDigits()
}

func (p *parser) walkSign() error {
	c, err := p.in.peek()
	if err != nil {
		return err
	}
	if c == '+' || c == '-' {
		if err := p.writeByte(c); err != nil {
			return err
		}
		p.in.skip()
	}
	return nil
}

// walkSpace consumes a maximal run of JSON whitespace into w, which is
// either the output sink or a pending buffer at a separator decision point.
// Whitespace is always optional; end of input is not an error here.
func (p *parser) walkSpace(w io.Writer) error {
	var b [1]byte
	for {
		c, ok, err := p.in.tryPeek()
		if err != nil {
			return err
		} else if !ok {
			return nil
		}
		switch c {
		case '\t', '\n', '\r', ' ':
			b[0] = c
			if _, err := w.Write(b[:]); err != nil {
				return err
			}
			p.in.skip()
		default:
			return nil
		}
	}
}

// walkChar consumes a required byte and echoes it.
func (p *parser) walkChar(want byte) error {
	c, err := p.in.next()
	if err != nil {
		return err
	} else if c != want {
		return p.invalid()
	}
	return p.writeByte(c)
}

func (p *parser) writeByte(c byte) error {
	p.b1[0] = c
	_, err := p.out.Write(p.b1[:])
	return err
}

func (p *parser) invalid() error {
	return syntaxError(p.in.pos, ErrInvalidValue)
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
