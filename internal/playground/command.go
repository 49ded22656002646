package playground

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const HelpText = `
Available commands:
  wait                      - Spawn a waiter that blocks until it gets a permit.
  wait timeout <duration>   - Spawn a waiter that gives up after the duration. Example: 500ms, 2s.
  try                       - Take a permit only if one is free right now.
  release [count]           - Return one or count permits.
  status                    - Show permits, queued waiters and holders.
  help                      - Display this help message.
  exit                      - Leave the playground.
`

var (
	// ErrInvalidCommand - indicates an unknown command or incorrect arguments.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrInvalidSyntax - is returned for an empty query.
	ErrInvalidSyntax = errors.New("invalid syntax")
)

// CommandType - represents the type of a playground command.
type CommandType string

const (
	CommandUNKNOWN     CommandType = "unknown"
	CommandWAIT        CommandType = "wait"
	CommandWAITTIMEOUT CommandType = "wait timeout"
	CommandTRY         CommandType = "try"
	CommandRELEASE     CommandType = "release"
	CommandSTATUS      CommandType = "status"
	CommandHELP        CommandType = "help"
	CommandEXIT        CommandType = "exit"
)

// Command - parsed playground command.
type Command struct {
	Type    CommandType
	Timeout time.Duration
	Count   int
}

func newCommandTrie() *trieNode {
	root := newTrieNode()
	root.insert([]string{"wait"}, CommandWAIT)
	root.insert([]string{"wait", "timeout"}, CommandWAITTIMEOUT)
	root.insert([]string{"try"}, CommandTRY)
	root.insert([]string{"release"}, CommandRELEASE)
	root.insert([]string{"status"}, CommandSTATUS)
	root.insert([]string{"help"}, CommandHELP)
	root.insert([]string{"exit"}, CommandEXIT)

	return root
}

// Parser - turns input lines into commands.
type Parser struct {
	trie *trieNode
}

// NewParser - creates a parser that knows every playground command.
func NewParser() *Parser {
	return &Parser{trie: newCommandTrie()}
}

// Parse - converts the query string into a Command or returns an error for invalid syntax.
func (p *Parser) Parse(query string) (Command, error) {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return Command{}, fmt.Errorf("%w: query cannot be empty", ErrInvalidSyntax)
	}

	cmdType, args := p.trie.search(tokens)
	cmd := Command{Type: cmdType, Count: 1}

	switch cmdType {
	case CommandUNKNOWN:
		return Command{}, fmt.Errorf("%w: unrecognized command %q", ErrInvalidCommand, tokens[0])
	case CommandWAITTIMEOUT:
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: %s requires exactly 1 argument", ErrInvalidCommand, cmdType)
		}

		timeout, err := time.ParseDuration(args[0])
		if err != nil || timeout <= 0 {
			return Command{}, fmt.Errorf("%w: invalid timeout %q", ErrInvalidCommand, args[0])
		}
		cmd.Timeout = timeout
	case CommandRELEASE:
		if len(args) > 1 {
			return Command{}, fmt.Errorf("%w: %s accepts at most 1 argument", ErrInvalidCommand, cmdType)
		}

		if len(args) == 1 {
			count, err := strconv.Atoi(args[0])
			if err != nil || count <= 0 {
				return Command{}, fmt.Errorf("%w: invalid count %q", ErrInvalidCommand, args[0])
			}
			cmd.Count = count
		}
	default:
		if len(args) != 0 {
			return Command{}, fmt.Errorf("%w: %s takes no arguments", ErrInvalidCommand, cmdType)
		}
	}

	return cmd, nil
}
