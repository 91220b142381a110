package command

import "strings"

// Parsed holds the canonical verb and arguments of one input line.
type Parsed struct {
	// Verb is the canonical verb, or the lowercased first word when it is
	// not a known command. Empty for blank input.
	Verb string
	// Args are the remaining lowercased words.
	Args []string
	// Raw is the trimmed input as typed.
	Raw string
}

// ArgText returns the arguments joined with single spaces.
func (p Parsed) ArgText() string {
	return strings.Join(p.Args, " ")
}

// Parse interprets line using the built-in commands.
func Parse(line string) Parsed {
	return DefaultRegistry().Parse(line)
}

// Parse lowercases and tokenizes line, resolves the first word through the
// registry, turns a bare direction into a move, and rewrites "pick up X"
// as take X.
//
// Postcondition: Returns Parsed with an empty Verb iff line is blank.
func (r *Registry) Parse(line string) Parsed {
	raw := strings.TrimSpace(line)
	if raw == "" {
		return Parsed{}
	}
	words := strings.Fields(strings.ToLower(raw))
	first, rest := words[0], words[1:]
	if len(rest) == 0 {
		rest = nil
	}

	cmd, ok := r.Resolve(first)
	if !ok {
		return Parsed{Verb: first, Args: rest, Raw: raw}
	}
	if cmd.Category == CategoryMovement && IsMovementCommand(cmd.Name) {
		return Parsed{Verb: VerbMove, Args: []string{cmd.Name}, Raw: raw}
	}
	if first == "pick" && len(rest) > 0 && rest[0] == "up" {
		rest = rest[1:]
		if len(rest) == 0 {
			rest = nil
		}
	}
	return Parsed{Verb: cmd.Verb, Args: rest, Raw: raw}
}

// Direction resolves a direction word or its one-letter alias.
//
// Postcondition: Returns (canonical direction, true), or (word, false) when
// word is not a direction.
func (r *Registry) Direction(word string) (string, bool) {
	if cmd, ok := r.Resolve(strings.ToLower(word)); ok && IsMovementCommand(cmd.Name) {
		return cmd.Name, true
	}
	return word, false
}

// MatchName reports whether target is a case-insensitive substring of name.
// An empty target matches nothing.
func MatchName(target, name string) bool {
	if target == "" {
		return false
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(target))
}
