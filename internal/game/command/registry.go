package command

import (
	"fmt"
	"sync"
)

// Registry maps command names and aliases to Command definitions.
type Registry struct {
	commands map[string]*Command // canonical name → command
	aliases  map[string]string   // alias → canonical name
	order    []*Command
}

// NewRegistry creates a Registry populated with the given commands.
//
// Precondition: No two commands may share a canonical name or alias.
// Postcondition: Returns a Registry or an error on name/alias collisions.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{
		commands: make(map[string]*Command, len(cmds)),
		aliases:  make(map[string]string),
	}

	for i := range cmds {
		cmd := &cmds[i]
		if cmd.Verb == "" {
			cmd.Verb = cmd.Name
		}
		if _, exists := r.commands[cmd.Name]; exists {
			return nil, fmt.Errorf("duplicate command name: %q", cmd.Name)
		}
		if _, exists := r.aliases[cmd.Name]; exists {
			return nil, fmt.Errorf("command name %q conflicts with an existing alias", cmd.Name)
		}
		r.commands[cmd.Name] = cmd
		r.order = append(r.order, cmd)

		for _, alias := range cmd.Aliases {
			if _, exists := r.commands[alias]; exists {
				return nil, fmt.Errorf("alias %q conflicts with command name %q", alias, alias)
			}
			if existing, exists := r.aliases[alias]; exists {
				return nil, fmt.Errorf("duplicate alias %q: used by %q and %q", alias, existing, cmd.Name)
			}
			r.aliases[alias] = cmd.Name
		}
	}

	return r, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// DefaultRegistry returns the shared Registry of all built-in commands.
//
// Postcondition: Returns a Registry with all built-in commands registered.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(BuiltinCommands())
		if err != nil {
			panic(fmt.Sprintf("building default registry: %v", err))
		}
		defaultReg = r
	})
	return defaultReg
}

// Resolve looks up a command by name or alias.
//
// Postcondition: Returns (command, true) if found, or (nil, false).
func (r *Registry) Resolve(input string) (*Command, bool) {
	if cmd, ok := r.commands[input]; ok {
		return cmd, true
	}
	if canonical, ok := r.aliases[input]; ok {
		return r.commands[canonical], true
	}
	return nil, false
}

// Commands returns all registered commands in registration order.
func (r *Registry) Commands() []*Command {
	return append([]*Command(nil), r.order...)
}

// Group is the commands sharing one category.
type Group struct {
	Category string
	Commands []*Command
}

// CommandsByCategory groups cmds by category. Categories keep the order of
// their first command and commands keep their given order.
func CommandsByCategory(cmds []*Command) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, cmd := range cmds {
		i, ok := index[cmd.Category]
		if !ok {
			i = len(groups)
			index[cmd.Category] = i
			groups = append(groups, Group{Category: cmd.Category})
		}
		groups[i].Commands = append(groups[i].Commands, cmd)
	}
	return groups
}

// Documented returns the commands that carry help text, in registration
// order, skipping individual directions.
func (r *Registry) Documented() []*Command {
	var out []*Command
	for _, cmd := range r.order {
		if cmd.Help == "" || IsMovementCommand(cmd.Name) {
			continue
		}
		out = append(out, cmd)
	}
	return out
}
