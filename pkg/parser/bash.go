package parser

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"mvdan.cc/sh/v3/syntax"
)

var (
	// ErrEmptyCommand is returned when trying to parse an empty command.
	ErrEmptyCommand = errors.New("empty command")
	// ErrParseFailed is returned when parsing fails.
	ErrParseFailed = errors.New("failed to parse command")
)

// ParseResult contains the results of parsing a Bash command.
type ParseResult struct {
	Commands   []Command
	FileWrites []FileWrite
}

// BashParser parses Bash commands using mvdan.cc/sh.
type BashParser struct {
	parser *syntax.Parser
}

// NewBashParser creates a new BashParser instance.
func NewBashParser() *BashParser {
	return &BashParser{
		parser: syntax.NewParser(),
	}
}

// Parse parses a Bash command string and extracts every simple command and
// file write in it.
func (p *BashParser) Parse(command string) (*ParseResult, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, ErrEmptyCommand
	}

	file, err := p.parser.Parse(strings.NewReader(command), "")
	if err != nil {
		return nil, errors.Wrap(ErrParseFailed, err.Error())
	}

	walker := &astWalker{}
	syntax.Walk(file, walker.visit)

	return &ParseResult{
		Commands:   walker.commands,
		FileWrites: walker.fileWrites,
	}, nil
}

// CommandNames returns the distinct command names in order of first
// appearance.
func (r *ParseResult) CommandNames() []string {
	names := make([]string, 0, len(r.Commands))

	for _, cmd := range r.Commands {
		if !slices.Contains(names, cmd.Name) {
			names = append(names, cmd.Name)
		}
	}

	return names
}

// WritePaths returns the distinct paths written to.
func (r *ParseResult) WritePaths() []string {
	paths := make([]string, 0, len(r.FileWrites))

	for _, fw := range r.FileWrites {
		if !slices.Contains(paths, fw.Path) {
			paths = append(paths, fw.Path)
		}
	}

	return paths
}

// HasCommand checks if the parse result contains a command with the given name.
func (r *ParseResult) HasCommand(name string) bool {
	return slices.ContainsFunc(r.Commands, func(c Command) bool { return c.Name == name })
}

// Summary is the audit-friendly digest of a command.
type Summary struct {
	Commands []string `json:"commands,omitempty"`
	Writes   []string `json:"writes,omitempty"`

	// Unparsed is set when the command is not valid Bash.
	Unparsed bool `json:"unparsed,omitempty"`
}

// Summarize parses command and returns its digest. Parse failures yield a
// summary with Unparsed set rather than an error.
func (p *BashParser) Summarize(command string) Summary {
	result, err := p.Parse(command)
	if err != nil {
		return Summary{Unparsed: !errors.Is(err, ErrEmptyCommand)}
	}

	return Summary{
		Commands: result.CommandNames(),
		Writes:   result.WritePaths(),
	}
}
