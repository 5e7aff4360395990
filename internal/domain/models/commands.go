package models

import "strings"

// CommandType enumerates the requests staff can send to the dashboard number.
type CommandType string

const (
	CommandDigest      CommandType = "digest"
	CommandDepartment  CommandType = "dept"
	CommandDepartments CommandType = "departments"
	CommandHelp        CommandType = "help"
	CommandUnknown     CommandType = "unknown"
)

// Command is a parsed staff request.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command from free-form message text. A leading slash is optional.
func ParseCommand(message string) Command {
	tokens := strings.Fields(strings.TrimSpace(message))
	if len(tokens) == 0 {
		return Command{Type: CommandUnknown, Raw: message}
	}

	cmd := Command{Raw: message, Type: CommandUnknown}
	switch strings.ToLower(strings.TrimPrefix(tokens[0], "/")) {
	case "digest", "dashboard", "summary":
		cmd.Type = CommandDigest
	case "dept", "department":
		cmd.Type = CommandDepartment
	case "departments", "depts":
		cmd.Type = CommandDepartments
	case "help", "?":
		cmd.Type = CommandHelp
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}
	return cmd
}
