// Copyright (C) 2024 nsfisis. All Rights Reserved.

package reparojson

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/creachadair/mds/mtest"
)

func TestCursor(t *testing.T) {
	c := newCursor(strings.NewReader("ab"))

	// Peeking does not advance.
	for i := 0; i < 3; i++ {
		b, err := c.peek()
		if err != nil {
			t.Fatalf("peek: unexpected error: %v", err)
		}
		if b != 'a' {
			t.Fatalf("peek: got %q, want %q", b, 'a')
		}
	}
	if c.pos != 0 {
		t.Errorf("pos after peek: got %d, want 0", c.pos)
	}

	// Skipping consumes the peeked byte.
	c.skip()
	if c.pos != 1 {
		t.Errorf("pos after skip: got %d, want 1", c.pos)
	}

	b, err := c.next()
	if err != nil {
		t.Fatalf("next: unexpected error: %v", err)
	}
	if b != 'b' {
		t.Errorf("next: got %q, want %q", b, 'b')
	}

	// Exhausted input: peek and next report unexpected EOF.
	if _, err := c.peek(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("peek at EOF: got %v, want %v", err, ErrUnexpectedEOF)
	}
	if _, err := c.next(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("next at EOF: got %v, want %v", err, ErrUnexpectedEOF)
	}
	if _, ok, err := c.tryPeek(); ok || err != nil {
		t.Errorf("tryPeek at EOF: got (ok=%v, err=%v), want (false, nil)", ok, err)
	}
}

func TestCursorAtEOF(t *testing.T) {
	c := newCursor(strings.NewReader("x"))
	if done, err := c.atEOF(); done || err != nil {
		t.Errorf("atEOF with input left: got (%v, %v), want (false, nil)", done, err)
	}
	if done, err := c.atEOF(); !done || err != nil {
		t.Errorf("atEOF at end: got (%v, %v), want (true, nil)", done, err)
	}
}

// A read failure observed by a peek must surface identically when the same
// position is consumed, and must never be mistaken for end of input.
func TestCursorErrorCaching(t *testing.T) {
	errBoom := errors.New("boom")
	c := newCursor(io.MultiReader(strings.NewReader("a"), iotest.ErrReader(errBoom)))

	if b, err := c.next(); b != 'a' || err != nil {
		t.Fatalf("next: got (%q, %v), want ('a', nil)", b, err)
	}

	if _, _, err := c.tryPeek(); !errors.Is(err, errBoom) {
		t.Errorf("tryPeek: got %v, want %v", err, errBoom)
	}
	if _, _, err := c.tryNext(); !errors.Is(err, errBoom) {
		t.Errorf("tryNext after failed peek: got %v, want %v", err, errBoom)
	}
	if _, err := c.peek(); !errors.Is(err, errBoom) {
		t.Errorf("peek after failed peek: got %v, want %v", err, errBoom)
	}
	if done, err := c.atEOF(); done || !errors.Is(err, errBoom) {
		t.Errorf("atEOF with pending failure: got (%v, %v), want (false, %v)", done, err, errBoom)
	}
}

// Skipping without a vetted peek is a programming error, not a recoverable
// condition.
func TestCursorSkipPrecondition(t *testing.T) {
	c := newCursor(strings.NewReader("a"))
	mtest.MustPanic(t, func() { c.skip() })

	c.peek()
	c.skip() // vetted, must not panic
	mtest.MustPanic(t, func() { c.skip() })
}
