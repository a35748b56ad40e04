// Package advisor ties a visitor's product selection and conversation
// together and runs the chat and routine flows against the remote model.
package advisor

import (
	"sync"

	"github.com/ziadkadry99/beauty-advisor/internal/catalog"
	"github.com/ziadkadry99/beauty-advisor/internal/conversation"
	"github.com/ziadkadry99/beauty-advisor/internal/llm"
	"github.com/ziadkadry99/beauty-advisor/internal/selection"
)

// Session is one visitor's state: a selection engine and a conversation.
// All methods are safe for concurrent use.
type Session struct {
	ID string

	mu     sync.Mutex
	engine *selection.Engine
	conv   *conversation.Accumulator
}

func newSession(id string, engine *selection.Engine, conv *conversation.Accumulator) *Session {
	return &Session{ID: id, engine: engine, conv: conv}
}

// View returns the current filter, visible set and selection.
func (s *Session) View() selection.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// Categories lists the category filter values, "all" first.
func (s *Session) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Categories()
}

// SetCategory changes the category filter.
func (s *Session) SetCategory(category string) selection.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetCategory(category)
	return s.engine.Snapshot()
}

// SetSearch changes the search text.
func (s *Session) SetSearch(text string) selection.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetSearchText(text)
	return s.engine.Snapshot()
}

// Select adds id to the selection. The snapshot is valid even when the
// returned error reports a failed write to durable storage.
func (s *Session) Select(id catalog.ID) (selection.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.engine.Select(id)
	return s.engine.Snapshot(), err
}

// Deselect removes id from the selection.
func (s *Session) Deselect(id catalog.ID) (selection.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.engine.Deselect(id)
	return s.engine.Snapshot(), err
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() (selection.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.engine.Clear()
	return s.engine.Snapshot(), err
}

// Selected returns the selected items in selection order.
func (s *Session) Selected() []catalog.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Selected()
}

// Transcript returns the conversation without the leading system turn.
func (s *Session) Transcript() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := s.conv.Snapshot()
	return turns[1:]
}

// appendUser appends a user turn and returns the transcript to send.
func (s *Session) appendUser(text string) ([]llm.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conv.AppendUser(text); err != nil {
		return nil, err
	}
	return s.conv.Snapshot(), nil
}

// appendRoutineRequest appends a routine request for the current selection.
// The returned prompt is the appended user text.
func (s *Session) appendRoutineRequest() ([]llm.Message, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conv.AppendRoutineRequest(s.engine.Selected()); err != nil {
		return nil, "", err
	}
	return s.conv.Snapshot(), s.conv.Last().Content, nil
}

func (s *Session) appendAssistant(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv.AppendAssistant(text)
}
