// Package scene provides the game's mode state machine: a loop that runs one
// scene at a time and the title, explore, combat, and death scenes.
package scene

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/cory-johannsen/archadium/internal/frontend/console"
)

// Registered scene names.
const (
	Title   = "title"
	Explore = "explore"
	Combat  = "combat"
	Death   = "death"
)

// Transition is the result of one scene update.
type Transition string

const (
	// Stay keeps the current scene.
	Stay Transition = ""
	// Quit ends the loop.
	Quit Transition = "quit"
)

// To returns the transition into the named scene.
func To(name string) Transition { return Transition(name) }

// ErrUnknownScene is returned by Run when the start scene is not registered.
var ErrUnknownScene = errors.New("unknown scene")

// Scene is one game mode.
type Scene interface {
	// Enter runs each time the loop switches to the scene.
	Enter(ctx context.Context) error
	// Update consumes one unit of input and reports where to go next.
	Update(ctx context.Context) (Transition, error)
}

// Output is where the loop reports problems to the player.
type Output interface {
	Println(a ...any)
}

// Loop runs registered scenes.
type Loop struct {
	scenes  map[string]Scene
	current string
	out     Output
	warn    func(string) string
	logger  *zap.Logger
}

// NewLoop creates an empty Loop. style renders warnings shown to the player;
// nil leaves them unstyled.
//
// Precondition: out and logger must be non-nil.
func NewLoop(out Output, style func(string) string, logger *zap.Logger) *Loop {
	if style == nil {
		style = func(s string) string { return s }
	}
	return &Loop{
		scenes: make(map[string]Scene),
		out:    out,
		warn:   style,
		logger: logger,
	}
}

// Register adds s under name, replacing any scene already registered there.
//
// Precondition: name must be non-empty and s non-nil.
func (l *Loop) Register(name string, s Scene) {
	l.scenes[name] = s
}

// Current returns the name of the active scene.
func (l *Loop) Current() string {
	return l.current
}

// switchTo enters the named scene. An unknown name is reported and the
// current scene is kept.
func (l *Loop) switchTo(ctx context.Context, name string) (bool, error) {
	s, ok := l.scenes[name]
	if !ok {
		l.logger.Warn("transition to unknown scene", zap.String("scene", name), zap.String("current", l.current))
		l.out.Println(l.warn(fmt.Sprintf("Unknown scene: %s", name)))
		return false, nil
	}
	l.logger.Debug("entering scene", zap.String("scene", name), zap.String("from", l.current))
	l.current = name
	return true, s.Enter(ctx)
}

// Run enters start and updates the active scene until it returns Quit.
//
// Postcondition: Returns nil on Quit or end of input; ErrUnknownScene when
// start is not registered; ctx.Err() on cancellation; otherwise the first
// unrecoverable scene error. An interrupt while a scene waits for input is
// reported to the player and the scene continues.
func (l *Loop) Run(ctx context.Context, start string) error {
	ok, err := l.switchTo(ctx, start)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownScene, start)
	}
	if done, err := l.handle(err); done {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		next, err := l.scenes[l.current].Update(ctx)
		if done, err := l.handle(err); done {
			return err
		} else if err != nil {
			continue
		}

		switch next {
		case Stay:
		case Quit:
			l.logger.Info("game loop quit", zap.String("scene", l.current))
			return nil
		default:
			_, err := l.switchTo(ctx, string(next))
			if done, err := l.handle(err); done {
				return err
			}
		}
	}
}

// handle classifies a scene error. done reports whether the loop must stop,
// with the error Run should return.
func (l *Loop) handle(err error) (done bool, _ error) {
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, console.ErrInterrupted):
		l.out.Println(l.warn("Use 'quit' to exit the game."))
		return false, err
	case errors.Is(err, io.EOF):
		l.logger.Info("end of input", zap.String("scene", l.current))
		return true, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return true, err
	default:
		l.logger.Error("scene failed", zap.String("scene", l.current), zap.Error(err))
		return true, fmt.Errorf("scene %s: %w", l.current, err)
	}
}
