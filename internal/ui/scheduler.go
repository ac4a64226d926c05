package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/regexfav/internal/favorites"
)

type asyncResultMsg struct {
	id      uint64
	records []favorites.Record
	err     error
}

type timerMsg struct {
	id uint64
}

type layoutMsg struct{}

// teaScheduler turns coordinator work into Bubble Tea commands. Results come
// back as messages, so completion callbacks run inside Update.
type teaScheduler struct {
	next   uint64
	queued []tea.Cmd
	done   map[uint64]func([]favorites.Record, error)
	timers map[uint64]func()
}

var _ favorites.Scheduler = (*teaScheduler)(nil)

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{
		done:   make(map[uint64]func([]favorites.Record, error)),
		timers: make(map[uint64]func()),
	}
}

func (s *teaScheduler) Async(work func() ([]favorites.Record, error), done func([]favorites.Record, error)) {
	s.next++
	id := s.next
	s.done[id] = done
	s.queued = append(s.queued, func() tea.Msg {
		records, err := work()
		return asyncResultMsg{id: id, records: records, err: err}
	})
}

func (s *teaScheduler) AfterFunc(d time.Duration, fn func()) {
	s.next++
	id := s.next
	s.timers[id] = fn
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	}))
}

// drain returns the queued work as one command.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

func (s *teaScheduler) resolve(msg asyncResultMsg) {
	done, ok := s.done[msg.id]
	if !ok {
		return
	}
	delete(s.done, msg.id)
	done(msg.records, msg.err)
}

func (s *teaScheduler) fire(msg timerMsg) {
	fn, ok := s.timers[msg.id]
	if !ok {
		return
	}
	delete(s.timers, msg.id)
	fn()
}
