package output

import (
	"io"
	"os"
)

// ResolveColorMode combines the root command's --color flag with the
// detected TTY state into the effective isTTY value for NewPrinter:
//   - "never":  disable colors even on a terminal
//   - "always": force colors, e.g. when piping into a pager
//   - "auto" (or anything else): follow the detected TTY state
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTTY
	}
}

// IsTTY reports whether a writer is a terminal. Only an *os.File that
// is a character device counts; buffers and pipes are not.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
