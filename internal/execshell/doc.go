// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with lifecycle logging and typed failures, and
// OSCommandRunner executes processes through os/exec. grass runs git and tmux through it.
package execshell
