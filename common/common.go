package common

import "errors"

var (
	// ErrNilArguments is returned when a required argument is nil
	ErrNilArguments = errors.New("received nil argument(s)")
	// ErrNilLogger is returned when a component requires a logger and none is set
	ErrNilLogger = errors.New("received nil logger")
)
