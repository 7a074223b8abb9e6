package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goex-lang/goex/internal/gen"
	"github.com/goex-lang/goex/internal/project"
	"github.com/goex-lang/goex/internal/syntax"
)

var (
	transpileOut     string
	transpileVerbose bool
	transpileEmitAST bool
)

var transpileCmd = &cobra.Command{
	Use:   "transpile <file>",
	Short: "Transpile a single file",
	Long: `Transpile one .gox file in single-file mode: exception support types
are emitted inline, so the output is a self-contained Go file.

Examples:
  goex transpile input.gox
  goex transpile input.gox -o output.go
  goex transpile input.gox --emit-ast`,
	Args: cobra.ExactArgs(1),
	RunE: runTranspile,
}

func init() {
	transpileCmd.Flags().StringVarP(&transpileOut, "output", "o", "", "output file (default is the input with a .go extension)")
	transpileCmd.Flags().BoolVarP(&transpileVerbose, "verbose", "v", false, "print progress")
	transpileCmd.Flags().BoolVar(&transpileEmitAST, "emit-ast", false, "dump the syntax tree instead of generating code")
	rootCmd.AddCommand(transpileCmd)
}

func runTranspile(cmd *cobra.Command, args []string) error {
	input := args[0]

	source, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	file, err := syntax.Parse(input, bytes.NewReader(source), nil)
	if err != nil {
		return err
	}

	if transpileEmitAST {
		syntax.Fprint(os.Stdout, file)
		return nil
	}

	ctx := &gen.Context{Classes: project.Classes([]*project.Unit{{File: file}})}
	code, err := ctx.Generate(file)
	if err != nil {
		return err
	}

	output := transpileOut
	if output == "" {
		output = strings.TrimSuffix(input, ".gox") + ".go"
	}

	if err := os.WriteFile(output, []byte(code), 0644); err != nil {
		return err
	}

	if transpileVerbose {
		fmt.Printf("Generated: %s -> %s\n", input, output)
	}
	return nil
}
