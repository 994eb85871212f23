package constants

import "errors"

// Configuration errors.
var (
	ErrNoConfigDir   = errors.New("could not determine configuration directory")
	ErrUnknownOutput = errors.New("unknown output format")
)

// Fixture errors.
var (
	ErrFixtureNotFound = errors.New("simulation file not found")
	ErrFixtureIsDir    = errors.New("simulation path is a directory")
)
