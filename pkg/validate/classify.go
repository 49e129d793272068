package validate

import (
	"strings"
	"unicode"
)

type Kind int

const (
	FieldInput Kind = iota
	Command
)

// Input is user text split into a command with arguments or plain field data.
type Input struct {
	Kind    Kind
	Command string
	Args    []string
	Text    string
}

func IsCommand(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "/")
}

// Classify lowercases the command name and drops a "@botname" suffix.
func Classify(text string) Input {
	trimmed := strings.TrimSpace(text)
	if !IsCommand(trimmed) {
		return Input{Kind: FieldInput, Text: trimmed}
	}
	fields := strings.Fields(strings.TrimPrefix(trimmed, "/"))
	if len(fields) == 0 {
		return Input{Kind: Command, Text: trimmed}
	}
	name := strings.ToLower(fields[0])
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	return Input{
		Kind:    Command,
		Command: name,
		Args:    fields[1:],
		Text:    trimmed,
	}
}

func (in Input) IsCommand() bool {
	return in.Kind == Command
}

func (in Input) Arg(i int) string {
	if i < 0 || i >= len(in.Args) {
		return ""
	}
	return in.Args[i]
}

// Rest is the raw text after the command name with line breaks kept.
func (in Input) Rest() string {
	if in.Kind != Command {
		return ""
	}
	body := strings.TrimPrefix(in.Text, "/")
	i := strings.IndexFunc(body, unicode.IsSpace)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(body[i:])
}
