// Package command turns an option set into an invocation of the fetch binary
// and runs it.
//
// # Serialization
//
// Options are emitted in the order they were added. Each name gets a "--"
// prefix unless it already has one. A value is one of:
//
//   - no value, an empty string or a boolean: emitted as a bare flag (--help)
//   - a single string: split on commas, one flag per piece
//   - a list: one flag per element, elements are never split
//
// The destination path always comes last.
//
//	opts := command.NewOptionSet().
//		Single("repo", "https://github.com/foo/bar").
//		Single("source-path", "/modules/a,/modules/b").
//		Flag("help")
//	b := command.NewBuilder("/opt/fetchbin/fetch_linux_amd64")
//	b.CommandLine(opts, "/tmp/out")
//	// /opt/fetchbin/fetch_linux_amd64 --repo="https://github.com/foo/bar"
//	//   --source-path="/modules/a" --source-path="/modules/b" --help /tmp/out
//
// CommandLine renders the historical shell form: every choice is wrapped in
// double quotes and nothing is escaped. It is meant for display. Execution
// uses Args, an argument vector passed straight to the process launcher, so
// no shell ever parses the values.
//
// # Execution
//
// Runner.Start launches the binary without blocking, streams its output to
// the runner's writers as it arrives, and reports (error, stdout, stderr) to
// a callback when the process exits. Runner.Run blocks with the standard
// streams inherited and returns an *ExitError for a non-zero exit status.
// Nothing is retried and nothing is logged here.
package command
