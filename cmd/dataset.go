package cmd

import (
	"fmt"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/spf13/cobra"

	"github.com/Inesh-volunteer/graphbook/internal/dataset"
)

var datasetOut string

func init() {
	datasetCmd.Flags().StringVarP(&datasetOut, "output", "o", "", "Write the rebuilt graph here instead of stdout")
}

var datasetCmd = &cobra.Command{
	Use:   "dataset [dataset] [vocab]",
	Short: "Rebuild a graph from a row-encoded dataset",
	Long: `Rebuilds a nested graph from its row-encoded, vocabulary-tokenized
dataset form. The dataset is either a JSON file plus a vocab JSON file,
or a single SQLite database (.db) holding both.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDataset(workFS(), args)
	},
}

func runDataset(fsys billy.Filesystem, args []string) error {
	ds, vocab, err := loadDataset(fsys, args)
	if err != nil {
		return err
	}

	top, err := dataset.Deconstruct(ds, vocab)
	if err != nil {
		return err
	}

	if datasetOut != "" {
		if err := writeGraph(fsys, datasetOut, top); err != nil {
			return err
		}
		fmt.Printf("Generated: %s\n", datasetOut)
		return nil
	}
	data, err := marshalGraph(top)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func loadDataset(fsys billy.Filesystem, args []string) (*dataset.Hierarchical, dataset.Vocab, error) {
	if strings.HasSuffix(args[0], ".db") {
		return dataset.LoadSQLite(args[0])
	}
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("a JSON dataset needs a vocab file argument")
	}

	dsData, err := util.ReadFile(fsys, args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read dataset: %w", err)
	}
	ds, err := dataset.ParseDataset(dsData)
	if err != nil {
		return nil, nil, err
	}

	vocabData, err := util.ReadFile(fsys, args[1])
	if err != nil {
		return nil, nil, fmt.Errorf("read vocab: %w", err)
	}
	vocab, err := dataset.ParseVocab(vocabData)
	if err != nil {
		return nil, nil, err
	}
	return ds, vocab, nil
}

// workFS is the filesystem commands operate on, rooted at the working
// directory. Tests swap in a memfs through the run helpers instead.
func workFS() billy.Filesystem {
	return osfs.New(".")
}
