package main

// Exit codes used across bibval commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, invalid paths)
	ExitDataError   = 3 // Data error (malformed input, source/API failure)
)
