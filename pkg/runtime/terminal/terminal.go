package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hr-tools/punchbook/pkg/runtime/terminal/commands"
	"github.com/hr-tools/punchbook/pkg/services/attendance"
)

// CLI represents the command-line interface
type CLI struct {
	recorder attendance.Recorder
	reporter attendance.Reporter
	printer  *Printer
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Recorder attendance.Recorder
	Reporter attendance.Reporter
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		recorder: opts.Recorder,
		reporter: opts.Reporter,
		printer:  NewPrinter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "punchbook",
		Short: "Attendance ledger tool",
	}

	cmd.AddCommand(commands.NewCheckInCmd(cli.recorder, out))
	cmd.AddCommand(commands.NewCheckOutCmd(cli.recorder, out))
	cmd.AddCommand(commands.NewReportCmd(cli.reporter, cli.printer))

	return cmd
}
