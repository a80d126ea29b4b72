package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/agiangrant/trellis"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default trellis.toml and an example tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}

func runInit(cmd *cobra.Command, force bool) error {
	out := cmd.OutOrStdout()

	if _, err := os.Stat(trellis.ConfigFile); err == nil && !force {
		return errors.Errorf("%s already exists (use --force to overwrite)", trellis.ConfigFile)
	}
	if err := trellis.SaveConfig(trellis.ConfigFile, trellis.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(out, "  ✓ Created %s\n", trellis.ConfigFile)

	// Create ui.toml if it doesn't exist
	if _, err := os.Stat(exampleTreeFile); os.IsNotExist(err) {
		if err := os.WriteFile(exampleTreeFile, []byte(exampleTree), 0644); err != nil {
			return errors.Wrapf(err, "failed to create %s", exampleTreeFile)
		}
		fmt.Fprintf(out, "  ✓ Created %s\n", exampleTreeFile)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintf(out, "  trellis render %s --access\n", exampleTreeFile)
	fmt.Fprintf(out, "  trellis tab %s -n 3\n", exampleTreeFile)
	return nil
}

const exampleTreeFile = "ui.toml"

const exampleTree = `# Widget tree for trellis render / trellis tab
# Types: column, row, label, button, input, box, expand

[root]
type = "column"
gap = 8

[[root.children]]
type = "label"
text = "Settings"
class = "text-xl font-bold"

[[root.children]]
type = "input"
text = "Display name"

[[root.children]]
type = "row"
gap = 4
class = "p-2 bg-gray-50"

[[root.children.children]]
type = "button"
text = "Save"

[[root.children.children]]
type = "button"
text = "Cancel"

[[root.children.children]]
type = "button"
text = "Delete"
disabled = true
`
