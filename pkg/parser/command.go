// Package parser extracts a structural summary from Bash command strings
// using mvdan.cc/sh. The summary is recorded in audit entries.
package parser

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Location is a position in the command string.
type Location struct {
	Line   uint
	Column uint
}

// Command is one simple command found in a Bash string.
type Command struct {
	Name     string
	Args     []string
	Location Location
}

// String returns the command with its arguments joined by spaces.
func (c *Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}

	return c.Name + " " + strings.Join(c.Args, " ")
}

// wordToString flattens the literal parts of a word. Expansions are
// dropped.
func wordToString(word *syntax.Word) string {
	if word == nil {
		return ""
	}

	var b strings.Builder

	for _, part := range word.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			b.WriteString(p.Value)
		case *syntax.SglQuoted:
			b.WriteString(p.Value)
		case *syntax.DblQuoted:
			for _, inner := range p.Parts {
				if lit, ok := inner.(*syntax.Lit); ok {
					b.WriteString(lit.Value)
				}
			}
		}
	}

	return b.String()
}

func wordsToStrings(words []*syntax.Word) []string {
	result := make([]string, 0, len(words))

	for _, word := range words {
		if s := wordToString(word); s != "" {
			result = append(result, s)
		}
	}

	return result
}
