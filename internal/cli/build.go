package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/goex-lang/goex/internal/project"
)

var (
	buildDir     string
	buildVerbose bool
	buildNoCache bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Transpile the project",
	Long: `Transpile every .gox unit of the project into the output directory,
in dependency order. The shared exception module and go.mod are generated
alongside the units.

Examples:
  goex build                 # Build the project in the current directory
  goex build -d ./myproject  # Build a specific project
  goex build -v              # Print one line per unit instead of a bar`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildDir, "directory", "d", "", "project directory (default is current directory)")
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "print per-unit progress")
	buildCmd.Flags().BoolVar(&buildNoCache, "no-cache", false, "disable the incremental build cache")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	result, err := buildProject()
	if err != nil {
		return err
	}

	fmt.Printf("\nBuild complete:\n")
	fmt.Printf("  Units:  %d (%d cached)\n", len(result.Units), result.Cached)
	if result.Exceptions {
		fmt.Printf("  Shared: %s\n", project.ExceptionsFile)
	}
	fmt.Printf("  Output: %s\n", result.OutputDir)
	return nil
}

// buildProject runs a project build with progress reporting, shared by
// build and run.
func buildProject() (*project.Result, error) {
	root, err := resolveDir(buildDir)
	if err != nil {
		return nil, err
	}

	b, err := project.NewBuilder(root)
	if err != nil {
		return nil, err
	}
	b.NoCache = buildNoCache

	fmt.Printf("Transpiling project: %s\n", b.Manifest.Name)

	var bar *progressbar.ProgressBar
	b.Progress = func(done, total int, path string) {
		if buildVerbose {
			fmt.Printf("  [%d/%d] %s\n", done, total, path)
			return
		}
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan]Transpiling[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	return b.Build()
}
