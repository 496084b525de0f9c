package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/spf13/cobra"

	"github.com/Inesh-volunteer/graphbook/api"
	"github.com/Inesh-volunteer/graphbook/internal/compose"
	"github.com/Inesh-volunteer/graphbook/internal/flatgraph"
	"github.com/Inesh-volunteer/graphbook/internal/primitive"
)

var (
	outputDir   string
	catalogPath string
)

func init() {
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "graphbook-out", "Directory for converted graphs")
	rootCmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "Path to a primitive op-type catalog (JSON)")
	rootCmd.AddCommand(datasetCmd)
}

var rootCmd = &cobra.Command{
	Use:   "graphbook [input]",
	Short: "Rebuild nested graphbook graphs from flat graph exports",
	Long: `Reads a flat graph JSON file (or every .json file in a folder),
reconstructs the nested composite tree from its scope-path annotations,
and writes one graphbook JSON file per graph.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(workFS(), args[0], outputDir, catalogPath)
	},
}

func runConvert(fsys billy.Filesystem, input, outputDir, catalogPath string) error {
	cat := primitive.NewCatalog()
	if catalogPath != "" {
		data, err := util.ReadFile(fsys, catalogPath)
		if err != nil {
			return fmt.Errorf("read catalog: %w", err)
		}
		if cat, err = primitive.LoadCatalog(data); err != nil {
			return err
		}
	}

	files, err := inputFiles(fsys, input)
	if err != nil {
		return err
	}
	if err := fsys.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, file := range files {
		data, err := util.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		flat, err := flatgraph.Decode(data)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		fmt.Printf("Converting: %s\n", flat.Name)
		root, err := compose.Convert(flat, compose.Options{Catalog: cat})
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		out := fsys.Join(outputDir, path.Base(root.Name)+".json")
		if err := writeGraph(fsys, out, root); err != nil {
			return err
		}
		fmt.Printf("Generated: %s\n", out)
	}
	return nil
}

// inputFiles resolves the input argument to the list of flat graph
// files: the file itself, or every .json entry of a folder.
func inputFiles(fsys billy.Filesystem, input string) ([]string, error) {
	info, err := fsys.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if !info.IsDir() {
		return []string{input}, nil
	}

	entries, err := fsys.ReadDir(input)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, fsys.Join(input, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .json graphs in %s", input)
	}
	return files, nil
}

func marshalGraph(root *api.Operation) ([]byte, error) {
	data, err := json.MarshalIndent(root, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", root.Name, err)
	}
	return data, nil
}

func writeGraph(fsys billy.Filesystem, name string, root *api.Operation) error {
	data, err := marshalGraph(root)
	if err != nil {
		return err
	}
	if err := util.WriteFile(fsys, name, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
