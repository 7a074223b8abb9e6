package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goex-lang/goex/internal/project"
)

var (
	initDir    string
	initModule string
)

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Initialize a new project",
	Long: `Scaffold a new Go-Extended project: manifest, source directory with
an example unit, and the output directory.

Examples:
  goex init myproject
  goex init myproject --module github.com/user/myproject`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initDir, "directory", "d", "", "project directory (default is current directory)")
	initCmd.Flags().StringVar(&initModule, "module", "", "Go module path for the generated code")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := resolveDir(initDir)
	if err != nil {
		return err
	}

	man, err := project.Init(root, args[0], initModule)
	if err != nil {
		return err
	}

	fmt.Printf("Project %q initialized in %s\n", man.Name, root)
	fmt.Printf("Example file created: %s\n", filepath.Join(root, man.SourceDir, "main.gox"))
	fmt.Printf("Configuration saved in: %s\n", project.ManifestJSON)
	return nil
}
