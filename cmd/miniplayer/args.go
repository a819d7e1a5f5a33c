package main

import "strings"

type cliArgs struct {
	traceLog bool
	path     string
}

// parseArgs reads `[-traceLog] [--open <path> | <path>]`. The first of
// `--open <path>` or a bare path wins. Other dash arguments are skipped,
// since launchers such as Finder add their own (-psn_0_1234), and a dangling
// --open is ignored.
func parseArgs(args []string) cliArgs {
	var out cliArgs
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		switch {
		case !strings.HasPrefix(arg, "-"):
			if out.path == "" {
				out.path = strings.TrimSpace(arg)
			}
		case name == "traceLog":
			out.traceLog = !hasValue || value == "true" || value == "1"
		case name == "open" && hasValue:
			if out.path == "" {
				out.path = strings.TrimSpace(value)
			}
		case name == "open" && i+1 < len(args):
			i++
			if out.path == "" {
				out.path = strings.TrimSpace(args[i])
			}
		}
	}
	return out
}
