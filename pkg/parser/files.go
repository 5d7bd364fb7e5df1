package parser

import "fmt"

// WriteOp is the kind of file write found in a command.
type WriteOp int

const (
	// WriteOpNone indicates no file write.
	WriteOpNone WriteOp = iota
	// WriteOpRedirect is output redirection (>).
	WriteOpRedirect
	// WriteOpAppend is append redirection (>>).
	WriteOpAppend
	// WriteOpTee is the tee command.
	WriteOpTee
	// WriteOpCopy is cp.
	WriteOpCopy
	// WriteOpMove is mv.
	WriteOpMove
)

// String returns the operation name.
func (w WriteOp) String() string {
	switch w {
	case WriteOpNone:
		return "none"
	case WriteOpRedirect:
		return "redirect"
	case WriteOpAppend:
		return "append"
	case WriteOpTee:
		return "tee"
	case WriteOpCopy:
		return "copy"
	case WriteOpMove:
		return "move"
	default:
		return "unknown"
	}
}

// FileWrite is a file the command writes to.
type FileWrite struct {
	Path      string
	Operation WriteOp
	Location  Location
}

// String returns "op -> path".
func (f *FileWrite) String() string {
	return fmt.Sprintf("%s -> %s", f.Operation, f.Path)
}

// writeTargets returns the files a known writer command writes to.
func writeTargets(cmd Command) (WriteOp, []string) {
	switch cmd.Name {
	case "tee":
		targets := make([]string, 0, len(cmd.Args))

		for _, arg := range cmd.Args {
			if arg != "" && arg[0] != '-' {
				targets = append(targets, arg)
			}
		}

		return WriteOpTee, targets
	case "cp":
		if len(cmd.Args) >= 2 { //nolint:mnd // source and destination
			return WriteOpCopy, []string{cmd.Args[len(cmd.Args)-1]}
		}
	case "mv":
		if len(cmd.Args) >= 2 { //nolint:mnd // source and destination
			return WriteOpMove, []string{cmd.Args[len(cmd.Args)-1]}
		}
	}

	return WriteOpNone, nil
}
