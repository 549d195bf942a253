package session

import "errors"

var (
	// ErrNotFound is returned when no session snapshot has been persisted.
	ErrNotFound = errors.New("session not found")
	// ErrInvalidSession is returned when a session violates the
	// token/user invariant.
	ErrInvalidSession = errors.New("session token and user must be set together")
	// ErrSaveSession is returned when persisting a session fails.
	ErrSaveSession = errors.New("failed to save session")
	// ErrClearSession is returned when removing the persisted session fails.
	ErrClearSession = errors.New("failed to clear session")
	// ErrCorruptSnapshot is returned when the persisted snapshot cannot be
	// decoded.
	ErrCorruptSnapshot = errors.New("corrupt session snapshot")
)
