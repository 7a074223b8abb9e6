package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goex-lang/goex/internal/project"
)

var infoDir string

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show project information",
	Long: `Parse the project and print its manifest, units, packages,
and dependency edges without generating any output.`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().StringVarP(&infoDir, "directory", "d", "", "project directory (default is current directory)")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	root, err := resolveDir(infoDir)
	if err != nil {
		return err
	}

	b, err := project.NewBuilder(root)
	if err != nil {
		return err
	}

	info, err := b.Inspect()
	if err != nil {
		return err
	}

	man := info.Manifest
	fmt.Printf("Project Information: %s\n", man.Name)
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Version: %s\n", man.Version)
	fmt.Printf("Main package: %s\n", man.MainPackage)
	fmt.Printf("Source directory: %s\n", man.SourceDir)
	fmt.Printf("Output directory: %s\n", man.OutputDir)
	fmt.Printf("Go module: %s\n", man.Module)
	fmt.Println()

	fmt.Println("Units:")
	for _, u := range info.Units {
		fmt.Printf("  %s (package %s)\n", u.Path, u.Package)
		if len(u.Imports) > 0 {
			fmt.Printf("    Imports: %s\n", strings.Join(u.Imports, ", "))
		}
	}
	fmt.Println()

	fmt.Println("Packages:")
	pkgs := make([]string, 0, len(info.Packages))
	for pkg := range info.Packages {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)
	for _, pkg := range pkgs {
		fmt.Printf("  %s: %d unit(s)\n", pkg, info.Packages[pkg])
	}
	fmt.Println()

	fmt.Println("Dependencies:")
	paths := make([]string, 0, len(info.Edges))
	for path := range info.Edges {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		fmt.Printf("  %s -> %s\n", path, strings.Join(info.Edges[path], ", "))
	}

	return nil
}
