package tools

import "sync"

// Memo accumulates data insights appended during a session.
// It is held in memory only and is not persisted across restarts.
type Memo struct {
	mu       sync.Mutex
	insights []string
}

func NewMemo() *Memo {
	return &Memo{}
}

// Add appends an insight to the memo.
func (m *Memo) Add(insight string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insights = append(m.insights, insight)
}

// Insights returns a copy of all insights recorded so far, in insertion order.
func (m *Memo) Insights() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.insights))
	copy(out, m.insights)
	return out
}
