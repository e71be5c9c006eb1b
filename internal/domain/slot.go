package domain

import "time"

// SlotCandidate кандидат временного окна для записи
// Эфемерная сущность: вычисляется на каждый запрос и никогда не сохраняется
type SlotCandidate struct {
	StartTime time.Time
	EndTime   time.Time
	Available bool
}

// Duration returns the slot length
func (s SlotCandidate) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
