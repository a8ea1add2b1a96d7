// Package authz centralizes every permission decision in the system.
// Can is a pure function over (actor, action, resource); services consult
// it before any mutating call instead of re-implementing checks inline.
package authz

import "github.com/irisdash/dashboard-api/internal/models"

type Action string

const (
	// User management
	ActionPromoteUser   Action = "user.promote"
	ActionDemoteUser    Action = "user.demote"
	ActionDeleteUser    Action = "user.delete"
	ActionResetPassword Action = "user.reset_password"
	ActionListUsers     Action = "user.list"
	ActionListOnline    Action = "user.list_online"

	// Registration tokens
	ActionMintToken   Action = "token.mint"
	ActionListTokens  Action = "token.list"
	ActionDeleteToken Action = "token.delete"

	// Notes
	ActionReadNote   Action = "note.read"
	ActionEditNote   Action = "note.edit"
	ActionDeleteNote Action = "note.delete"
	ActionPinNote    Action = "note.pin"

	// Tasks
	ActionCreateTask   Action = "task.create"
	ActionDeleteTask   Action = "task.delete"
	ActionDropTask     Action = "task.drop"
	ActionPickupTask   Action = "task.pickup"
	ActionCompleteTask Action = "task.complete"

	// Chats
	ActionCreateChat  Action = "chat.create"
	ActionReadChat    Action = "chat.read"
	ActionSendMessage Action = "chat.send"
	ActionPurgeChat   Action = "chat.purge"
)

// Can reports whether the actor may perform the action on the resource.
// The resource is a *models.User target, *models.Note, or *models.Task
// depending on the action; actions without a resource take nil.
func Can(actor *models.User, action Action, resource interface{}) bool {
	if actor == nil {
		return false
	}

	switch action {
	case ActionListUsers, ActionListOnline, ActionResetPassword,
		ActionMintToken, ActionListTokens, ActionDeleteToken,
		ActionCreateTask, ActionDeleteTask, ActionDropTask,
		ActionCreateChat, ActionPurgeChat:
		return actor.IsAdmin

	case ActionPromoteUser:
		target, ok := resource.(*models.User)
		return ok && actor.IsAdmin && !target.IsAdmin

	case ActionDemoteUser, ActionDeleteUser:
		// The original admin can never be demoted or deleted, by anyone.
		target, ok := resource.(*models.User)
		return ok && actor.IsAdmin && !target.IsOriginalAdmin

	case ActionReadNote:
		note, ok := resource.(*models.Note)
		return ok && (note.IsGlobal || note.UserID == actor.ID || actor.IsAdmin)

	case ActionEditNote, ActionDeleteNote, ActionPinNote:
		note, ok := resource.(*models.Note)
		return ok && (note.UserID == actor.ID || actor.IsAdmin)

	case ActionPickupTask:
		// Any authenticated user may claim from the dropped pool.
		task, ok := resource.(*models.Task)
		return ok && task.IsDropped()

	case ActionCompleteTask:
		task, ok := resource.(*models.Task)
		return ok && task.OwnerUserID != nil && *task.OwnerUserID == actor.ID && !task.IsDone

	case ActionReadChat, ActionSendMessage:
		// Any authenticated user.
		return true
	}

	return false
}
