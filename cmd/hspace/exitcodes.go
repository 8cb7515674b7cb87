package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (no repository, missing config or input file)
	ExitDataError   = 3 // Data error (malformed GEXF or table, validation failure, empty view)
)
