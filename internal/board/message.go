package board

import (
	"sync"
	"time"
)

// MessageKind classifies the message region's content.
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is a snapshot of the message region.
type Message struct {
	Text    string
	Kind    MessageKind
	Visible bool
}

// timer is the part of *time.Timer the message region needs.
type timer interface {
	Stop() bool
}

// afterFunc schedules f after d. It matches time.AfterFunc.
type afterFunc func(d time.Duration, f func()) timer

func realAfterFunc(d time.Duration, f func()) timer {
	return time.AfterFunc(d, f)
}

// messageRegion holds the outcome of the last signup attempt. Show reveals
// it and restarts the hide timer; a timer from an earlier Show never hides
// a newer message.
type messageRegion struct {
	mu      sync.Mutex
	msg     Message
	delay   time.Duration
	after   afterFunc
	pending timer
	gen     uint64
}

func newMessageRegion(delay time.Duration, after afterFunc) *messageRegion {
	return &messageRegion{delay: delay, after: after}
}

func (m *messageRegion) Show(text string, kind MessageKind) Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending != nil {
		m.pending.Stop()
	}
	m.gen++
	gen := m.gen
	m.msg = Message{Text: text, Kind: kind, Visible: true}
	m.pending = m.after(m.delay, func() { m.hide(gen) })
	return m.msg
}

func (m *messageRegion) hide(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen {
		return
	}
	m.msg.Visible = false
	m.pending = nil
}

func (m *messageRegion) Snapshot() Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.msg
}

// Close stops any pending hide timer.
func (m *messageRegion) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
}
