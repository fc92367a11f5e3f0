package types

// Command describes a single external invocation: the program path, its
// arguments, and the complete environment the child receives. Nothing from the
// invoking process's environment is inherited unless the caller merged it in.
type Command struct {
	Path string
	Args []string
	Env  map[string]string
}

// CommandResult is produced exactly once per Command, upon process
// termination (or spawn failure, reported through the sentinel exit code).
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}
