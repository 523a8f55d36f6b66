package main

// command is the mode the binary runs in.
type command string

const (
	commandServe       command = "serve"
	commandMigrate     command = "migrate"
	commandHealthcheck command = "healthcheck"
)

// parseCommand reads the subcommand from the arguments. Empty or unknown
// input means serve.
func parseCommand(args []string) command {
	if len(args) == 0 {
		return commandServe
	}
	switch command(args[0]) {
	case commandMigrate:
		return commandMigrate
	case commandHealthcheck:
		return commandHealthcheck
	default:
		return commandServe
	}
}
