package services

import "taskforge/contexts/work-tracking/task-service/domain/entities"

// transitions is the full lifecycle table. done has no outbound edges.
var transitions = map[entities.Status][]entities.Status{
	entities.StatusTodo:       {entities.StatusInProgress},
	entities.StatusInProgress: {entities.StatusDone},
	entities.StatusDone:       {},
}

// CanTransition reports whether from may move to to. Self-transitions are
// not legal moves.
func CanTransition(from entities.Status, to entities.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s names a lifecycle state at all.
func ValidStatus(s entities.Status) bool {
	_, ok := transitions[s]
	return ok
}
