package debugger

import (
	"bufio"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/beevik/cmd"
	"github.com/hornc/musys/device"
	"github.com/hornc/musys/musys"
)

// Shell is a line-oriented inspection loop over a completed (or
// in-progress) Engine run. Grounded on host.Host's RunCommands /
// processCommand pair, stripped of every 6502-specific command and
// replaced with MUSYS's own: vars, buses, paragraphs, device, set.
type Shell struct {
	engine   *musys.Engine
	devices  *device.Table
	settings *settings

	output *bufio.Writer
	quit   bool
}

// New creates a Shell over engine's state, using devices to resolve
// "device" command lookups.
func New(engine *musys.Engine, devices *device.Table) *Shell {
	return &Shell{
		engine:   engine,
		devices:  devices,
		settings: newSettings(),
	}
}

var cmds *cmd.Tree

func init() {
	root := cmd.NewTree("musys")
	root.AddCommand(cmd.Command{
		Name:        "help",
		Brief:       "Display help for a command",
		Description: "Display a summary of all commands, or detailed help for one.",
		Usage:       "help [<command>]",
		Data:        (*Shell).cmdHelp,
	})
	root.AddCommand(cmd.Command{
		Name:        "vars",
		Brief:       "Display register contents",
		Description: "Display EXP and all 26 variables A through Z.",
		Usage:       "vars",
		Data:        (*Shell).cmdVars,
	})
	root.AddCommand(cmd.Command{
		Name:        "buses",
		Brief:       "Display output bus contents",
		Description: "Display the accumulated words on all six output buses.",
		Usage:       "buses",
		Data:        (*Shell).cmdBuses,
	})
	root.AddCommand(cmd.Command{
		Name:        "paragraphs",
		Brief:       "Display remaining data paragraph contents",
		Description: "Display the unconsumed values of all 26 data paragraphs.",
		Usage:       "paragraphs",
		Data:        (*Shell).cmdParagraphs,
	})
	root.AddCommand(cmd.Command{
		Name:        "device",
		Brief:       "Look up a device code",
		Description: "Look up a device mnemonic (e.g. O1, K) in the loaded device catalog.",
		Usage:       "device <name>",
		Data:        (*Shell).cmdDevice,
	})
	root.AddCommand(cmd.Command{
		Name:        "set",
		Brief:       "Display or change a shell setting",
		Description: "With no arguments, display all shell settings. Otherwise set one.",
		Usage:       "set [<field> <value>]",
		Data:        (*Shell).cmdSet,
	})
	root.AddCommand(cmd.Command{
		Name:        "quit",
		Brief:       "Quit the inspection shell",
		Description: "Exit the inspection shell and return to the calling program.",
		Usage:       "quit",
		Data:        (*Shell).cmdQuit,
	})
	cmds = root
}

// Run reads commands from r, one per line, and writes responses to w
// until r is exhausted or a "quit" command is issued.
func (s *Shell) Run(r io.Reader, w io.Writer) error {
	input := bufio.NewScanner(r)
	s.output = bufio.NewWriter(w)
	defer s.output.Flush()

	for {
		fmt.Fprint(s.output, "musys> ")
		s.output.Flush()

		if !input.Scan() {
			return nil
		}
		line := strings.TrimSpace(input.Text())
		if s.settings.Verbose {
			fmt.Fprintf(s.output, "> %s\n", line)
		}

		if err := s.process(line); err != nil {
			return err
		}
		if s.quit {
			return nil
		}
		s.output.Flush()
	}
}

func (s *Shell) process(line string) error {
	if line == "" {
		return nil
	}

	c, err := cmds.Lookup(line)
	switch {
	case err == cmd.ErrNotFound:
		fmt.Fprintln(s.output, "Command not found.")
		return nil
	case err == cmd.ErrAmbiguous:
		fmt.Fprintln(s.output, "Command is ambiguous.")
		return nil
	case err != nil:
		fmt.Fprintf(s.output, "ERROR: %v.\n", err)
		return nil
	}
	if c.Command == nil {
		return nil
	}

	handler := c.Command.Data.(func(*Shell, cmd.Selection) error)
	return handler(s, c)
}

func (s *Shell) cmdHelp(c cmd.Selection) error {
	if len(c.Args) == 0 {
		s.displayCommands(cmds)
		return nil
	}
	sel, err := cmds.Lookup(strings.Join(c.Args, " "))
	if err != nil {
		fmt.Fprintf(s.output, "%v\n", err)
		return nil
	}
	if sel.Command.Usage != "" {
		fmt.Fprintf(s.output, "Usage: %s\n\n", sel.Command.Usage)
	}
	if sel.Command.Description != "" {
		fmt.Fprintf(s.output, "%s\n", sel.Command.Description)
	}
	return nil
}

func (s *Shell) displayCommands(tree *cmd.Tree) {
	fmt.Fprintf(s.output, "%s commands:\n", tree.Title)
	for _, c := range tree.Commands {
		if c.Brief != "" {
			fmt.Fprintf(s.output, "    %-12s  %s\n", c.Name, c.Brief)
		}
	}
}

func (s *Shell) cmdVars(c cmd.Selection) error {
	vars := s.engine.Vars()
	fmt.Fprintf(s.output, "EXP = %s\n", s.format(vars.EXP))
	for letter := byte('A'); letter <= 'Z'; letter++ {
		fmt.Fprintf(s.output, "%c = %s\n", letter, s.format(vars.Get(letter)))
	}
	return nil
}

func (s *Shell) cmdBuses(c cmd.Selection) error {
	buses := s.engine.Buses()
	for bus := 1; bus <= musys.NumBuses; bus++ {
		fmt.Fprintf(s.output, "bus %d: %s\n", bus, strings.Join(buses.Bus(bus), " "))
	}
	return nil
}

func (s *Shell) cmdParagraphs(c cmd.Selection) error {
	paragraphs := s.engine.Paragraphs()
	for letter := byte('A'); letter <= 'Z'; letter++ {
		remaining := paragraphs.Remaining(letter)
		if len(remaining) == 0 {
			continue
		}
		fmt.Fprintf(s.output, "%c: %v\n", letter, remaining)
	}
	return nil
}

func (s *Shell) cmdDevice(c cmd.Selection) error {
	if len(c.Args) == 0 {
		s.displayUsage(c.Command)
		return nil
	}
	name := strings.ToUpper(c.Args[0])
	entry, ok := s.devices.Lookup(name)
	if !ok {
		fmt.Fprintf(s.output, "Device '%s' not found.\n", name)
		return nil
	}
	fmt.Fprintf(s.output, "%s: code %o (%s)\n", entry.Name, entry.Number, entry.Description)
	return nil
}

func (s *Shell) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		fmt.Fprintln(s.output, "Settings:")
		s.settings.Display(s.output)

	case 1:
		s.displayUsage(c.Command)

	default:
		key, value := strings.ToLower(c.Args[0]), strings.Join(c.Args[1:], " ")

		var err error
		switch s.settings.Kind(key) {
		case reflect.Invalid:
			err = fmt.Errorf("setting '%s' not found", key)
		case reflect.Bool:
			var v bool
			v, err = strconv.ParseBool(value)
			if err == nil {
				err = s.settings.Set(key, v)
			}
		case reflect.Int:
			var v int
			v, err = strconv.Atoi(value)
			if err == nil {
				err = s.settings.Set(key, v)
			}
		default:
			err = s.settings.Set(key, value)
		}

		if err == nil {
			fmt.Fprintln(s.output, "Setting updated.")
		} else {
			fmt.Fprintf(s.output, "%v\n", err)
		}
	}
	return nil
}

func (s *Shell) cmdQuit(c cmd.Selection) error {
	s.quit = true
	return nil
}

func (s *Shell) displayUsage(c *cmd.Command) {
	if c.Usage != "" {
		fmt.Fprintf(s.output, "Usage: %s\n", c.Usage)
	}
}

// format renders v in the shell's configured radix (8 or 10).
func (s *Shell) format(v int) string {
	if s.settings.Radix == 8 {
		sign := ""
		if v < 0 {
			sign, v = "-", -v
		}
		return sign + strconv.FormatInt(int64(v), 8)
	}
	return strconv.Itoa(v)
}
