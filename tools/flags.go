package tools

import (
	"strconv"
	"strings"
)

// Command line parsing in the style of the PCL console helpers: options
// may appear anywhere on the command line and input files are recognized
// by their extension rather than by position.

type FlagsForCommandEstimate struct {
	KSearch      int
	Folder       bool
	Recursive    bool
	Silent       bool
	LogTimestamp bool
	Search       string
	Help         bool
}

func ParseFlagsForCommandEstimate(args []string) FlagsForCommandEstimate {
	return FlagsForCommandEstimate{
		KSearch:      ParseArgumentInt(args, "-k", 0),
		Folder:       HasArgument(args, "-folder"),
		Recursive:    HasArgument(args, "-recursive"),
		Silent:       HasArgument(args, "-silent"),
		LogTimestamp: HasArgument(args, "-timestamp"),
		Search:       ParseArgumentString(args, "-search", "kdtree"),
		Help:         HasArgument(args, "-h"),
	}
}

// HasArgument reports whether the named option appears in args.
func HasArgument(args []string, name string) bool {
	for _, arg := range args {
		if arg == name {
			return true
		}
	}
	return false
}

// ParseArgumentInt scans args for the named option and parses the value
// that follows it. Absent or malformed values yield the default.
func ParseArgumentInt(args []string, name string, defaultValue int) int {
	for i, arg := range args {
		if arg == name && i+1 < len(args) {
			if value, err := strconv.Atoi(args[i+1]); err == nil {
				return value
			}
		}
	}
	return defaultValue
}

// ParseArgumentString scans args for the named option and returns the
// value that follows it, or the default when the option is absent.
func ParseArgumentString(args []string, name string, defaultValue string) string {
	for i, arg := range args {
		if arg == name && i+1 < len(args) {
			return args[i+1]
		}
	}
	return defaultValue
}

// ParseFileExtensionArgument returns the arguments carrying the given
// file extension, preserving their order of appearance.
func ParseFileExtensionArgument(args []string, extension string) []string {
	var files []string
	for _, arg := range args {
		if strings.HasSuffix(strings.ToLower(arg), strings.ToLower(extension)) {
			files = append(files, arg)
		}
	}
	return files
}

// ParseBareArguments returns the arguments that are neither options nor
// option values.
func ParseBareArguments(args []string) []string {
	var bare []string
	skipNext := false
	for _, arg := range args {
		if skipNext {
			skipNext = false
			continue
		}
		if strings.HasPrefix(arg, "-") {
			skipNext = optionTakesValue(arg)
			continue
		}
		bare = append(bare, arg)
	}
	return bare
}

func optionTakesValue(name string) bool {
	return name == "-k" || name == "-search"
}
