// Package console provides the blocking line-oriented terminal the game is
// played on.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// ErrInterrupted is returned by ReadLine when an interrupt arrives while it waits.
var ErrInterrupted = errors.New("console: interrupted")

type lineResult struct {
	text string
	err  error
}

// Console reads lines from an input stream and writes to an output stream.
//
// A single background goroutine owns the input reader and hands lines to
// ReadLine over a channel, so a blocked read can be abandoned when an
// interrupt arrives. A line typed after an interrupt is delivered to the
// next ReadLine.
type Console struct {
	in  *bufio.Reader
	out io.Writer
	mu  sync.Mutex

	lines      chan lineResult
	readerOnce sync.Once
	eof        bool

	interrupts <-chan os.Signal
	stopNotify func()

	pacing bool
	delay  time.Duration
	sleep  func(time.Duration)
}

// Option configures a Console.
type Option func(*Console)

// WithPacing enables Pause and Typewriter, with delay between typed characters.
func WithPacing(delay time.Duration) Option {
	return func(c *Console) {
		c.pacing = true
		c.delay = delay
	}
}

// WithInterrupts makes ReadLine return ErrInterrupted whenever ch receives.
func WithInterrupts(ch <-chan os.Signal) Option {
	return func(c *Console) {
		c.interrupts = ch
	}
}

// New creates a Console over in and out.
//
// Precondition: in and out must be non-nil.
// Postcondition: Returns a Console with pacing disabled unless WithPacing is given.
func New(in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		in:    bufio.NewReaderSize(in, 4096),
		out:   out,
		lines: make(chan lineResult),
		sleep: time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NotifyInterrupt routes os.Interrupt to this Console instead of terminating
// the process. Close restores the default behaviour.
//
// Postcondition: Any interrupts option given to New is replaced.
func (c *Console) NotifyInterrupt() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	c.interrupts = ch
	c.stopNotify = func() { signal.Stop(ch) }
}

// Close stops interrupt delivery. The reader goroutine exits when the input
// stream ends.
func (c *Console) Close() {
	if c.stopNotify != nil {
		c.stopNotify()
		c.stopNotify = nil
	}
}

func (c *Console) startReader() {
	go func() {
		for {
			raw, err := c.in.ReadString('\n')
			if raw != "" {
				c.lines <- lineResult{text: sanitize(raw)}
			}
			if err != nil {
				c.lines <- lineResult{err: err}
				return
			}
		}
	}()
}

// sanitize drops the line terminator and control characters other than tab.
func sanitize(raw string) string {
	raw = strings.TrimRight(raw, "\r\n")
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r < 32 && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ReadLine writes prompt and blocks for one line of input.
//
// Postcondition: Returns the line without its terminator; io.EOF once input
// is exhausted (and on every call after); ErrInterrupted on an interrupt; or
// ctx.Err() when ctx is cancelled.
func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	if c.eof {
		return "", io.EOF
	}
	c.Print(prompt)
	c.readerOnce.Do(c.startReader)

	select {
	case res := <-c.lines:
		if res.err != nil {
			c.eof = true
			if errors.Is(res.err, io.EOF) {
				return "", io.EOF
			}
			return "", fmt.Errorf("reading input: %w", res.err)
		}
		return res.text, nil
	case <-c.interrupts:
		c.Println()
		return "", ErrInterrupted
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Print writes its operands like fmt.Print.
func (c *Console) Print(a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprint(c.out, a...)
}

// Println writes its operands followed by a newline like fmt.Println.
func (c *Console) Println(a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out, a...)
}

// Pause sleeps for d when pacing is enabled.
func (c *Console) Pause(d time.Duration) {
	if c.pacing && d > 0 {
		c.sleep(d)
	}
}

// DramaticPause prints three dots spread over d, then a newline. It does
// nothing when pacing is disabled.
func (c *Console) DramaticPause(d time.Duration) {
	if !c.pacing {
		return
	}
	for range 3 {
		c.Print(".")
		c.sleep(d / 3)
	}
	c.Println()
}

// Typewriter writes text one character at a time followed by a newline.
// Escape sequences are written whole and cost no delay. Without pacing the
// text is written at once.
func (c *Console) Typewriter(text string) {
	if !c.pacing || c.delay <= 0 {
		c.Println(text)
		return
	}
	var state byte
	for len(text) > 0 {
		seq, width, n, next := ansi.DecodeSequence(text, state, nil)
		c.Print(seq)
		if width > 0 && seq != " " {
			c.sleep(c.delay)
		}
		state = next
		text = text[n:]
	}
	c.Println()
}

// Lines writes each line in turn, pausing d between them when pacing is enabled.
func (c *Console) Lines(lines []string, d time.Duration) {
	for _, line := range lines {
		c.Println(line)
		c.Pause(d)
	}
}
