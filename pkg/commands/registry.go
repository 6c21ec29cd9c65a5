// Package commands implements grapnel's command layer: a small
// registry of verbs dispatched from the host's prompt, each a thin
// orchestration over the marks store and the editor host.
package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gobwas/glob"

	"github.com/entrhq/grapnel/pkg/editor"
	"github.com/entrhq/grapnel/pkg/logging"
	"github.com/entrhq/grapnel/pkg/marks"
)

// PromptEvent distinguishes live-preview keystrokes from a confirmed
// command submission. Commands only run on EventValidate; every other
// event is a no-op.
type PromptEvent int

const (
	EventPreview PromptEvent = iota
	EventValidate
)

// Context carries the collaborators a command handler needs.
type Context struct {
	Host      editor.Host
	StorePath string
	Exclude   []glob.Glob
	Log       *logging.Logger
}

// Handler processes one command invocation.
type Handler func(c *Context, args []string) error

// Command is a registered grapnel command.
type Command struct {
	Name        string
	Description string
	MaxArgs     int // -1 for unlimited
	Handler     Handler
}

// commandRegistry holds all registered commands
var commandRegistry map[string]*Command

func init() {
	commandRegistry = make(map[string]*Command)

	registerCommand(&Command{
		Name:        "set",
		Description: "Mark the current file and selection at a slot",
		MaxArgs:     1,
		Handler:     handleSet,
	})

	registerCommand(&Command{
		Name:        "get",
		Description: "Jump to the file and selection marked at a slot",
		MaxArgs:     1,
		Handler:     handleGet,
	})

	registerCommand(&Command{
		Name:        "remove",
		Description: "Evict the mark at a slot",
		MaxArgs:     1,
		Handler:     handleRemove,
	})

	registerCommand(&Command{
		Name:        "update",
		Description: "Refresh the stored selection for the current file",
		MaxArgs:     0,
		Handler:     handleUpdate,
	})

	registerCommand(&Command{
		Name:        "list",
		Description: "Show all marks for the current project",
		MaxArgs:     0,
		Handler:     handleList,
	})
}

// registerCommand adds a command to the registry
func registerCommand(cmd *Command) {
	commandRegistry[cmd.Name] = cmd
}

// Get retrieves a command from the registry.
func Get(name string) (*Command, bool) {
	cmd, exists := commandRegistry[name]
	return cmd, exists
}

// All returns every registered command.
func All() []*Command {
	cmds := make([]*Command, 0, len(commandRegistry))
	for _, cmd := range commandRegistry {
		cmds = append(cmds, cmd)
	}
	return cmds
}

// Dispatch parses one line of prompt input and runs the named command.
// Anything other than a validate event is ignored, so live-preview
// keystrokes never touch the store.
func Dispatch(c *Context, input string, event PromptEvent) error {
	if event != EventValidate {
		return nil
	}

	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil
	}

	cmd, exists := Get(fields[0])
	if !exists {
		return fmt.Errorf("unknown command: %s", fields[0])
	}

	args := fields[1:]
	if cmd.MaxArgs >= 0 && len(args) > cmd.MaxArgs {
		return fmt.Errorf("%s takes at most %d argument(s)", cmd.Name, cmd.MaxArgs)
	}

	c.debugf("dispatching %s %v", cmd.Name, args)
	return cmd.Handler(c, args)
}

// parseIndex extracts the slot index from the argument list.
func parseIndex(args []string) (int, error) {
	if len(args) == 0 {
		return 0, marks.ErrMissingIndex
	}
	index, err := strconv.Atoi(args[0])
	if err != nil || index < 0 {
		return 0, marks.ErrInvalidIndex
	}
	return index, nil
}

func (c *Context) debugf(format string, v ...interface{}) {
	if c.Log != nil {
		c.Log.Debugf(format, v...)
	}
}

// excluded reports whether a normalized path matches any configured
// exclude pattern.
func (c *Context) excluded(path string) bool {
	for _, g := range c.Exclude {
		if g.Match(path) {
			return true
		}
	}
	return false
}
