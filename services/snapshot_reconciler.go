package services

import "notary_admin_go/models"

// ReconcileSnapshot decides which snapshot to publish after a fetch.
// When next carries the same figures as prev, prev is returned as-is so consumers
// comparing pointers can skip recomputation. A nil prev always counts as a change.
func ReconcileSnapshot(prev *models.StatSnapshot, next models.StatSnapshot) (*models.StatSnapshot, bool) {
	if prev != nil && prev.Equal(next) {
		return prev, false
	}
	published := next
	return &published, true
}
