// Package policy holds the access-control rules for tasks as pure
// functions over a task and an actor identity. Handlers and services
// consult these instead of inlining ownership checks.
package policy

import "github.com/promanage/promanage-api/internal/models"

// CanRead reports whether the actor may fetch the task. Single-task
// reads are open to any authenticated actor.
func CanRead(task *models.Task, actorID uint64) bool {
	return true
}

// CanUpdate reports whether the actor may change the task's content or
// status. Only the owner and the current assignee may.
func CanUpdate(task *models.Task, actorID uint64) bool {
	if task.OwnerID == actorID {
		return true
	}
	return task.AssigneeID != nil && *task.AssigneeID == actorID
}

// CanReassign reports whether the actor may change the task's assignee.
// Stricter than CanUpdate: an assignee cannot reassign a task away.
func CanReassign(task *models.Task, actorID uint64) bool {
	return task.OwnerID == actorID
}

// CanDelete reports whether the actor may delete the task. Assignees
// may never delete.
func CanDelete(task *models.Task, actorID uint64) bool {
	return task.OwnerID == actorID
}
