package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "goex",
	Short: "Go-Extended transpiler - classes and exceptions for Go",
	Long: `goex transpiles Go-Extended (.gox) sources to standard Go.

Go-Extended is a superset of Go with classes, single inheritance,
constructors, and try/catch/finally. Classes lower to structs with
embedding, exceptions to panic/recover.

Example usage:
  goex init myproject --module github.com/user/myproject
  goex build                       # Transpile the project in ./src to ./build
  goex run                         # Build, then go run the main package
  goex transpile input.gox -o out.go`,
	SilenceUsage: true,
}

// Execute runs the CLI. Any command failure exits non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveDir resolves a project directory flag, defaulting to the
// working directory.
func resolveDir(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}
