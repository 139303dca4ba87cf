package repositories

import "errors"

var (
	ErrNotFound = errors.New("record not found")
	// ErrStaleSession is returned when a conditional status write finds the
	// session no longer in the status it was read in.
	ErrStaleSession = errors.New("session status changed concurrently")
	// ErrInUse is returned when deleting a record still referenced by an
	// interview session.
	ErrInUse = errors.New("record is referenced by an interview session")
)
