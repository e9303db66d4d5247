package commands

import (
	"errors"
	"strconv"
	"strings"
)

type Operation int

const (
	DEFAULT = iota
	// Store a file and record an upload transaction: upload <path> <owner>.
	UPLOAD
	// Grant a recipient access: grant <content_ref> <owner> <recipient>.
	GRANT
	// Retrieve a file: request <content_ref> <recipient> <output_dir>.
	REQUEST
	// Mine all pending transactions into a new block.
	MINE
	// Stop an in-flight mining task.
	STOP
	// Print chain length, validity and pool size.
	STATUS
	// Revalidate the whole chain.
	VALIDATE
	// Render the last <depth> blocks of the chain.
	SHOW
)

// A command contains an operation and many arguments.
type Command struct {
	Op   Operation
	Args []string
}

func (c Command) IsValid() bool {
	switch c.Op {
	case MINE, STOP, STATUS, VALIDATE:
		return len(c.Args) == 0
	case UPLOAD:
		return len(c.Args) == 2
	case GRANT, REQUEST:
		return len(c.Args) == 3
	case SHOW:
		if len(c.Args) != 1 {
			return false
		}
		// depth must be a number.
		if _, err := strconv.Atoi(c.Args[0]); err != nil {
			return false
		}
		return true
	default:
		return false
	}
}

// CreateCommand parses a command from its textual form.
func CreateCommand(s string) (Command, error) {
	// split command by space.
	ss := strings.Split(s, " ")
	if len(ss) == 0 {
		return Command{}, errors.New("command is empty")
	}
	cmd := Command{}
	switch ss[0] {
	case "upload":
		cmd.Op = UPLOAD
	case "grant":
		cmd.Op = GRANT
	case "request":
		cmd.Op = REQUEST
	case "mine":
		cmd.Op = MINE
	case "stop":
		cmd.Op = STOP
	case "status":
		cmd.Op = STATUS
	case "validate":
		cmd.Op = VALIDATE
	case "show":
		cmd.Op = SHOW
	}
	cmd.Args = ss[1:]
	if !cmd.IsValid() {
		return Command{}, errors.New("invalid command")
	}
	return cmd, nil
}

// Create a brand new command with default operation.
func NewDefaultCommand() Command {
	return Command{
		Op: DEFAULT,
	}
}

func (c Command) IsDefault() bool {
	return c.Op == DEFAULT
}
