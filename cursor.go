// Copyright (C) 2024 nsfisis. All Rights Reserved.

package reparojson

import (
	"bufio"
	"io"
)

// A cursor reads single bytes from an input stream with one byte of
// lookahead. The lookahead slot caches either a byte or the terminal outcome
// of fetching one (end of input or a read failure), so that peeking and then
// consuming the same logical byte observe the same outcome exactly once each.
type cursor struct {
	r   *bufio.Reader
	pos int // offset of the next unconsumed byte

	ok  bool  // lookahead slot holds a byte
	b   byte  // the byte, if ok
	err error // terminal fetch outcome; sticky once set
}

func newCursor(r io.Reader) *cursor {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &cursor{r: br}
}

func (c *cursor) fill() {
	if c.ok || c.err != nil {
		return
	}
	b, err := c.r.ReadByte()
	if err != nil {
		c.err = err
		return
	}
	c.b, c.ok = b, true
}

// tryPeek reports the next byte of the input without consuming it. At the end
// of input it reports ok == false with a nil error. A read failure is cached
// and returned from this and every subsequent call.
func (c *cursor) tryPeek() (_ byte, ok bool, err error) {
	c.fill()
	if c.ok {
		return c.b, true, nil
	}
	if c.err == io.EOF {
		return 0, false, nil
	}
	return 0, false, c.err
}

// tryNext is tryPeek followed by consuming the reported byte, if any.
func (c *cursor) tryNext() (byte, bool, error) {
	b, ok, err := c.tryPeek()
	if ok {
		c.ok = false
		c.pos++
	}
	return b, ok, err
}

// peek is tryPeek with end-of-input reported as ErrUnexpectedEOF.
func (c *cursor) peek() (byte, error) {
	b, ok, err := c.tryPeek()
	if err != nil {
		return 0, err
	} else if !ok {
		return 0, syntaxError(c.pos, ErrUnexpectedEOF)
	}
	return b, nil
}

// next is tryNext with end-of-input reported as ErrUnexpectedEOF.
func (c *cursor) next() (byte, error) {
	b, ok, err := c.tryNext()
	if err != nil {
		return 0, err
	} else if !ok {
		return 0, syntaxError(c.pos, ErrUnexpectedEOF)
	}
	return b, nil
}

// skip consumes the byte held in the lookahead slot. The caller must have
// vetted it with a successful peek; calling skip without one is a programming
// error.
func (c *cursor) skip() {
	if !c.ok {
		panic("cursor: skip without a peeked byte")
	}
	c.ok = false
	c.pos++
}

// atEOF reports whether the input is exhausted, consuming at most one byte.
// A pending read failure is reported as that failure, not as end of input.
func (c *cursor) atEOF() (bool, error) {
	_, ok, err := c.tryNext()
	if err != nil {
		return false, err
	}
	return !ok, nil
}
