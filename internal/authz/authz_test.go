package authz

import (
	"testing"

	"github.com/irisdash/dashboard-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint64) *uint64 { return &v }

var (
	originalAdmin = &models.User{ID: 1, IsAdmin: true, IsOriginalAdmin: true}
	admin         = &models.User{ID: 2, IsAdmin: true}
	alice         = &models.User{ID: 3}
	bob           = &models.User{ID: 4}
)

func TestCanAdminOnlyActions(t *testing.T) {
	adminOnly := []Action{
		ActionListUsers, ActionListOnline, ActionResetPassword,
		ActionMintToken, ActionListTokens, ActionDeleteToken,
		ActionCreateTask, ActionDeleteTask, ActionDropTask,
		ActionCreateChat, ActionPurgeChat,
	}

	for _, action := range adminOnly {
		assert.True(t, Can(admin, action, nil), "admin should be allowed %s", action)
		assert.False(t, Can(alice, action, nil), "regular user should be denied %s", action)
		assert.False(t, Can(nil, action, nil), "nil actor should be denied %s", action)
	}
}

func TestCanPromote(t *testing.T) {
	assert.True(t, Can(admin, ActionPromoteUser, alice))
	assert.False(t, Can(admin, ActionPromoteUser, originalAdmin), "already an admin")
	assert.False(t, Can(admin, ActionPromoteUser, admin), "already an admin")
	assert.False(t, Can(alice, ActionPromoteUser, bob))
}

func TestCanDemoteAndDelete(t *testing.T) {
	for _, action := range []Action{ActionDemoteUser, ActionDeleteUser} {
		assert.True(t, Can(admin, action, alice), "%s on regular user", action)
		assert.True(t, Can(originalAdmin, action, admin), "%s on regular admin", action)
		assert.False(t, Can(admin, action, originalAdmin), "original admin is immune to %s", action)
		assert.False(t, Can(originalAdmin, action, originalAdmin), "original admin is immune to %s even from itself", action)
		assert.False(t, Can(alice, action, bob), "non-admin may not %s", action)
	}
}

func TestCanReadNote(t *testing.T) {
	private := &models.Note{UserID: alice.ID}
	shared := &models.Note{UserID: alice.ID, IsGlobal: true}

	assert.True(t, Can(alice, ActionReadNote, private), "owner reads own private note")
	assert.False(t, Can(bob, ActionReadNote, private), "private note hidden from others")
	assert.True(t, Can(admin, ActionReadNote, private), "admin reads any note")
	assert.True(t, Can(bob, ActionReadNote, shared), "shared note visible to all")
}

func TestCanEditNote(t *testing.T) {
	shared := &models.Note{UserID: alice.ID, IsGlobal: true}

	for _, action := range []Action{ActionEditNote, ActionDeleteNote, ActionPinNote} {
		assert.True(t, Can(alice, action, shared), "owner may %s", action)
		assert.True(t, Can(admin, action, shared), "admin may %s", action)
		assert.False(t, Can(bob, action, shared), "shared visibility does not grant %s", action)
	}
}

func TestCanPickupTask(t *testing.T) {
	dropped := &models.Task{IsGlobal: true}
	assigned := &models.Task{OwnerUserID: uintPtr(alice.ID)}

	assert.True(t, Can(bob, ActionPickupTask, dropped), "anyone may claim from the pool")
	assert.False(t, Can(bob, ActionPickupTask, assigned), "assigned task cannot be claimed")
	assert.False(t, Can(admin, ActionPickupTask, assigned), "not even by an admin")
}

func TestCanCompleteTask(t *testing.T) {
	assigned := &models.Task{OwnerUserID: uintPtr(alice.ID)}
	done := &models.Task{OwnerUserID: uintPtr(alice.ID), IsDone: true}
	dropped := &models.Task{IsGlobal: true}

	assert.True(t, Can(alice, ActionCompleteTask, assigned), "assignee completes own task")
	assert.False(t, Can(bob, ActionCompleteTask, assigned), "only the assignee")
	assert.False(t, Can(admin, ActionCompleteTask, assigned), "admin role does not override assignment")
	assert.False(t, Can(alice, ActionCompleteTask, done), "done is terminal")
	assert.False(t, Can(alice, ActionCompleteTask, dropped), "unassigned task has no assignee")
}

func TestCanChat(t *testing.T) {
	assert.True(t, Can(alice, ActionReadChat, nil))
	assert.True(t, Can(alice, ActionSendMessage, nil))
	assert.False(t, Can(nil, ActionSendMessage, nil))
}
