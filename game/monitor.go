package game

// historySize is how many recent generations are kept for cycle detection
const historySize = 5

// Monitor spots boards that have stopped changing or fallen into a short cycle
type Monitor struct {
	history []string
}

// Observe records a generation hash and reports whether it repeats one of the
// last three generations
func (m *Monitor) Observe(hash string) bool {
	stagnant := false
	for i := len(m.history) - 1; i >= 0 && i >= len(m.history)-3; i-- {
		if m.history[i] == hash {
			stagnant = true
			break
		}
	}

	m.history = append(m.history, hash)
	if len(m.history) > historySize {
		m.history = m.history[1:]
	}
	return stagnant
}
