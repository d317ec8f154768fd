package service

import (
	"time"

	"societydesk/models"
)

// The lifecycle rules below are the authorization core: which transitions
// exist, which fields each role may touch, and how resolution rewards are
// computed.

// allowedTransitions maps each live status to the statuses it may move to.
// Resolved and rejected are terminal and realized as row deletion, so they
// never appear as a source state.
var allowedTransitions = map[models.ComplaintStatus][]models.ComplaintStatus{
	models.StatusSubmitted:  {models.StatusAssigned, models.StatusRejected},
	models.StatusAssigned:   {models.StatusInProgress, models.StatusSubmitted, models.StatusRejected},
	models.StatusInProgress: {models.StatusResolved, models.StatusRejected},
}

// isValidStatusTransition reports whether a complaint may move from
// oldStatus to newStatus.
func isValidStatusTransition(oldStatus, newStatus models.ComplaintStatus) bool {
	for _, s := range allowedTransitions[oldStatus] {
		if s == newStatus {
			return true
		}
	}
	return false
}

// updatableFields is the per-role allow-list for UpdateComplaint. Fields a
// role may not touch are silently dropped from the request, never erred.
var updatableFields = map[models.Role]map[string]bool{
	models.RoleResident: {
		"title":       true,
		"description": true,
		"category":    true,
		"priority":    true,
	},
	models.RoleWorker: {
		"status": true,
	},
	models.RoleManager: {
		"title":       true,
		"description": true,
		"category":    true,
		"priority":    true,
		"status":      true,
	},
}

// filterFields drops every requested change the role's allow-list does not
// permit and returns the surviving column→value map.
func filterFields(role models.Role, req *models.UpdateComplaintRequest) map[string]interface{} {
	allowed := updatableFields[role]
	fields := make(map[string]interface{})
	if req.Title != nil && allowed["title"] {
		fields["title"] = *req.Title
	}
	if req.Description != nil && allowed["description"] {
		fields["description"] = *req.Description
	}
	if req.Category != nil && allowed["category"] {
		fields["category"] = *req.Category
	}
	if req.Priority != nil && allowed["priority"] {
		fields["priority"] = *req.Priority
	}
	if req.Status != nil && allowed["status"] {
		fields["status"] = *req.Status
	}
	return fields
}

// rewardTier is one row of the resolution reward table.
type rewardTier struct {
	maxHours float64 // strict upper bound
	tokens   int
}

// rewardTiers is evaluated in ascending threshold order; first match wins.
// The table is a non-increasing step function of elapsed time.
var rewardTiers = []rewardTier{
	{maxHours: 6, tokens: 500},
	{maxHours: 12, tokens: 250},
	{maxHours: 24, tokens: 100},
	{maxHours: 48, tokens: 50},
}

const rewardFloor = 10

// RewardTokens returns the token reward for resolving a complaint after
// the given elapsed time since its last update.
func RewardTokens(elapsed time.Duration) int {
	hours := elapsed.Hours()
	for _, tier := range rewardTiers {
		if hours < tier.maxHours {
			return tier.tokens
		}
	}
	return rewardFloor
}
