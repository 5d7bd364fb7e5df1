package parser

import (
	"mvdan.cc/sh/v3/syntax"
)

// astWalker collects commands and file writes while syntax.Walk descends
// into pipelines, chains, subshells and command substitutions.
type astWalker struct {
	commands   []Command
	fileWrites []FileWrite
}

func (w *astWalker) visit(node syntax.Node) bool {
	switch n := node.(type) {
	case *syntax.CallExpr:
		w.extractCommand(n)
	case *syntax.Stmt:
		w.extractRedirects(n)
	}

	return true
}

func (w *astWalker) extractCommand(call *syntax.CallExpr) {
	if len(call.Args) == 0 {
		return
	}

	name := wordToString(call.Args[0])
	if name == "" {
		return
	}

	cmd := Command{
		Name: name,
		Args: wordsToStrings(call.Args[1:]),
		Location: Location{
			Line:   call.Pos().Line(),
			Column: call.Pos().Col(),
		},
	}

	w.commands = append(w.commands, cmd)

	op, targets := writeTargets(cmd)
	for _, target := range targets {
		w.fileWrites = append(w.fileWrites, FileWrite{
			Path:      target,
			Operation: op,
			Location:  cmd.Location,
		})
	}
}

func (w *astWalker) extractRedirects(stmt *syntax.Stmt) {
	for _, redir := range stmt.Redirs {
		var op WriteOp

		switch redir.Op {
		case syntax.RdrOut, syntax.RdrAll:
			op = WriteOpRedirect
		case syntax.AppOut, syntax.AppAll:
			op = WriteOpAppend
		default:
			continue
		}

		path := wordToString(redir.Word)
		if path == "" {
			continue
		}

		w.fileWrites = append(w.fileWrites, FileWrite{
			Path:      path,
			Operation: op,
			Location: Location{
				Line:   redir.Pos().Line(),
				Column: redir.Pos().Col(),
			},
		})
	}
}
