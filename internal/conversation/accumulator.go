// Package conversation holds the append-only transcript that is replayed
// to the remote model on every request.
package conversation

import (
	"errors"
	"strings"

	"github.com/ziadkadry99/beauty-advisor/internal/catalog"
	"github.com/ziadkadry99/beauty-advisor/internal/llm"
)

var (
	// ErrInvalidInput is returned for user text that is blank after trimming.
	ErrInvalidInput = errors.New("conversation: empty message")
	// ErrNoProducts is returned when a routine is requested without products.
	ErrNoProducts = errors.New("conversation: no products selected")
)

// Turn is one message of the transcript.
type Turn = llm.Message

// Accumulator is an ordered transcript starting with exactly one system
// turn. Turns are only ever appended. It is not safe for concurrent use.
type Accumulator struct {
	turns     []Turn
	verbosity Verbosity
}

// New starts a transcript with the given system prompt.
func New(systemPrompt string, verbosity Verbosity) *Accumulator {
	if verbosity == "" {
		verbosity = VerbosityDetailed
	}
	return &Accumulator{
		turns:     []Turn{{Role: llm.RoleSystem, Content: systemPrompt}},
		verbosity: verbosity,
	}
}

// AppendUser appends a user turn with the literal text.
func (a *Accumulator) AppendUser(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrInvalidInput
	}
	a.turns = append(a.turns, Turn{Role: llm.RoleUser, Content: text})
	return nil
}

// AppendAssistant appends the model output verbatim.
func (a *Accumulator) AppendAssistant(text string) {
	a.turns = append(a.turns, Turn{Role: llm.RoleAssistant, Content: text})
}

// AppendRoutineRequest appends a user turn asking for a routine built from items.
func (a *Accumulator) AppendRoutineRequest(items []catalog.Item) error {
	if len(items) == 0 {
		return ErrNoProducts
	}
	a.turns = append(a.turns, Turn{Role: llm.RoleUser, Content: RoutinePrompt(items, a.verbosity)})
	return nil
}

// Snapshot returns a copy of the full transcript.
func (a *Accumulator) Snapshot() []Turn {
	out := make([]Turn, len(a.turns))
	copy(out, a.turns)
	return out
}

// Last returns the most recent turn.
func (a *Accumulator) Last() Turn {
	return a.turns[len(a.turns)-1]
}

// Len returns the number of turns including the system turn.
func (a *Accumulator) Len() int { return len(a.turns) }
