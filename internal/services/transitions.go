package services

import "salespipeline/internal/models"

// canTransition looks a move up in an adjacency table. An empty current
// state accepts any target.
func canTransition[S comparable](current, to S, table map[S]map[S]bool) bool {
	var zero S
	if current == zero {
		return true
	}
	nexts, ok := table[current]
	if !ok {
		return false
	}
	return nexts[to]
}

func canMoveWorkOrder(from, to models.WorkOrderStatus) bool {
	return canTransition(from, to, models.WorkOrderTransitions)
}
