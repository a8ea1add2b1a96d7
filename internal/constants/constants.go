// Package constants holds shared configuration values
package constants

// Session
const (
	// SessionCookieName is the cookie carrying the session ID.
	SessionCookieName = "iris_session"

	// ContextKeyUserID is the key for the authenticated user's ID, both in
	// the session store and in the gin request context.
	ContextKeyUserID = "user_id"

	// ContextKeyUser is the gin context key for the loaded user model.
	ContextKeyUser = "current_user"
)

// Accounts
const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	// RegistrationTokenLength is the length of a minted registration token.
	RegistrationTokenLength = 8
)

// Tasks
const (
	// PickupDeadlineDays is the working window granted when a task is
	// claimed from the dropped pool.
	PickupDeadlineDays = 7

	// ReminderThresholdDays marks a task as due soon when exactly this
	// many days remain.
	ReminderThresholdDays = 1

	// TaskDisplayIDMin and TaskDisplayIDMax bound the random 6-digit
	// display label assigned at task creation.
	TaskDisplayIDMin = 100000
	TaskDisplayIDMax = 999999
)

// Chat pagination
const (
	DefaultMessagePageSize = 10
	MaxMessagePageSize     = 100
)

// MaxImportBodyBytes caps the response body read during link import.
const MaxImportBodyBytes = 2 << 20
