// Package services holds the business logic between the HTTP handlers and
// the repositories. Every mutating operation consults the authz policy
// before touching a repository.
package services

import "errors"

// ErrPermissionDenied is returned whenever the authz policy rejects an
// (actor, action, resource) triple. It is never downgraded.
var ErrPermissionDenied = errors.New("permission denied")
