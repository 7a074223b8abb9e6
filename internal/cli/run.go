package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build the project and run its main package",
	Long: `Build the project, then execute the generated main package with
"go run". The Go toolchain must be on PATH.

Examples:
  goex run
  goex run -d ./myproject`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&buildDir, "directory", "d", "", "project directory (default is current directory)")
	runCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "print per-unit progress")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	result, err := buildProject()
	if err != nil {
		return err
	}

	if result.MainDir == "" {
		return fmt.Errorf("no main package found in the generated output")
	}

	fmt.Printf("Running %s...\n", result.MainDir)

	goRun := exec.Command("go", "run", ".")
	goRun.Dir = result.MainDir
	goRun.Stdin = os.Stdin
	goRun.Stdout = os.Stdout
	goRun.Stderr = os.Stderr

	if err := goRun.Run(); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	return nil
}
