package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	diagio "github.com/blockflow/blockflow/pkg/io"
)

// convertCommand creates the convert command for cross-format re-serialization.
func (c *CLI) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert a diagram between JSON and TOML",
		Long: `Convert a diagram between JSON and TOML.

Both files name their format by extension (.json or .toml). The diagram is
fully validated on import, so a successful convert guarantees the output
renders identically to the input. Converting to the same format rewrites
the file in canonical form.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(args[0], args[1])
		},
	}
}

// runConvert imports the diagram from input and exports it to output.
func (c *CLI) runConvert(input, output string) error {
	prog := newProgress(c.Logger)

	d, err := diagio.ImportFile(input)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if err := diagio.ExportFile(d, output); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	prog.done(fmt.Sprintf("Converted %d blocks, %d edges", d.BlockCount(), d.EdgeCount()))

	printSuccess("Converted %s", input)
	printFile(output)
	printNewline()
	printNextStep("Render", appName+" render "+output)
	return nil
}
