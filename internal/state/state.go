package state

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"TrendScout/internal/model"
)

// SymbolState is the last emitted signal for one symbol.
type SymbolState struct {
	Symbol string       `json:"symbol"`
	Signal model.Signal `json:"signal"`
	Price  float64      `json:"price"`
	BarAt  time.Time    `json:"bar_at"`
	SeenAt time.Time    `json:"seen_at"`
}

// Store tracks the last signal per symbol across runs, persisted as JSON,
// so the scheduler can alert only on transitions.
type Store struct {
	mu       sync.Mutex
	filePath string
	states   map[string]SymbolState
}

// Load reads the store from disk, starting empty if the file doesn't exist.
func Load(filePath string) (*Store, error) {
	st := &Store{filePath: filePath, states: make(map[string]SymbolState)}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &st.states); err != nil {
		return nil, err
	}
	return st, nil
}

// Update records the latest signal for a symbol and reports whether the
// signal changed since the previous run.
func (s *Store) Update(symbol string, p model.SignalPoint) (changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, seen := s.states[symbol]
	changed = !seen || prev.Signal != p.Signal

	s.states[symbol] = SymbolState{
		Symbol: symbol,
		Signal: p.Signal,
		Price:  p.Close,
		BarAt:  p.Time,
		SeenAt: time.Now(),
	}
	return changed, s.save()
}

// Get returns the last known state for a symbol.
func (s *Store) Get(symbol string) (SymbolState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[symbol]
	return st, ok
}

// All returns a snapshot of every tracked symbol.
func (s *Store) All() []SymbolState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SymbolState, 0, len(s.states))
	for _, st := range s.states {
		out = append(out, st)
	}
	return out
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.states, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0644)
}
