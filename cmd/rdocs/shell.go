package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/recent-documents/rdocs/listengine"
	"github.com/ZanzyTHEbar/recent-documents/rdocs/ports"

	"github.com/spf13/cobra"
)

var shellFormat string

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactively sort, filter and select recent documents",
	Long: `Read list commands from stdin and re-render after each one.

Commands:
  show                     render the current view
  click <column>           header click (column2, column3, column4)
  sort <field> [desc]      sort by a field
  filter [text]            filter by name; no text clears the filter
  select [id...]           replace the selection; no ids clears it
  invoke <id>              open a document
  stats                    size and age figures for the view
  help                     list commands
  quit                     leave the shell`,
	RunE: runShell,
}

func init() {
	shellCmd.Flags().StringVar(&shellFormat, "format", formatTable, "Output format (table, json)")
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	surface, err := newConsoleSurface(cmd.OutOrStdout(), cmd.ErrOrStderr(), shellFormat)
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), surface)
	if err != nil {
		return err
	}
	defer s.Close()

	surface.Render(s.engine.Snapshot())
	return newListShell(s.engine, surface).run(cmd.InOrStdin())
}

var errQuit = errors.New("quit")

// listShell turns text commands into engine calls.
type listShell struct {
	engine  *listengine.Engine
	surface ports.Surface
}

func newListShell(engine *listengine.Engine, surface ports.Surface) *listShell {
	return &listShell{engine: engine, surface: surface}
}

func (sh *listShell) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		err := sh.exec(scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			sh.surface.Error("Command failed", err)
		}
	}
	return scanner.Err()
}

// exec runs one command line. Mutating commands re-render the view.
func (sh *listShell) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "quit", "exit":
		return errQuit
	case "help":
		sh.surface.Notify("commands: show, click <column>, sort <field> [desc], filter [text], select [id...], invoke <id>, stats, quit")
		return nil
	case "show":
	case "click":
		if len(args) != 1 {
			return fmt.Errorf("usage: click <column>")
		}
		if _, err := sh.engine.ClickColumn(args[0]); err != nil {
			return err
		}
	case "sort":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("usage: sort <field> [desc|asc]")
		}
		descending := false
		if len(args) == 2 {
			switch strings.ToLower(args[1]) {
			case "desc":
				descending = true
			case "asc":
			default:
				return fmt.Errorf("%w: direction must be asc or desc, got %q", listengine.ErrInvalidArgument, args[1])
			}
		}
		if _, err := sh.engine.SortBy(args[0], descending); err != nil {
			return err
		}
	case "filter":
		sh.engine.Filter(strings.Join(args, " "))
		if err := sh.resort(); err != nil {
			return err
		}
	case "select":
		if err := sh.engine.Select(args); err != nil {
			return err
		}
	case "invoke":
		if len(args) != 1 {
			return fmt.Errorf("usage: invoke <id>")
		}
		r, err := sh.engine.Invoke(args[0])
		if err != nil {
			return err
		}
		sh.surface.Notify(fmt.Sprintf("Item invoked: %s (%s)", r.Name, r.Link))
		return nil
	case "stats":
		sh.surface.Notify(formatStats(sh.engine.Stats()))
		return nil
	default:
		return fmt.Errorf("unknown command %q", name)
	}

	sh.surface.Render(sh.engine.Snapshot())
	return nil
}

// resort applies the active column's sort to the view again, since Filter
// returns records in canonical order.
func (sh *listShell) resort() error {
	for _, col := range sh.engine.Columns() {
		if col.IsSorted {
			_, err := sh.engine.SortBy(col.FieldName, col.IsSortedDescending)
			return err
		}
	}
	return nil
}
