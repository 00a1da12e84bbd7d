package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build metadata, set at build time via -ldflags "-X ...".
var (
	// Version is the release version, "dev" for local builds.
	Version = "dev"
	// Commit is the VCS revision the binary was built from.
	Commit = ""
	// Date is the build timestamp.
	Date = ""
)

// PrintVersion writes the version banner, including build metadata when
// it was stamped in.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "tricalc version %s", Version)
	if Commit != "" {
		fmt.Fprintf(out, " (commit %s)", Commit)
	}
	if Date != "" {
		fmt.Fprintf(out, " built %s", Date)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// HasVersionFlag reports whether the arguments request the version
// banner. It lets main print the version without a full config parse,
// so --version works even alongside otherwise invalid flags.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "-version" || arg == "--version" || arg == "-V" {
			return true
		}
	}
	return false
}
