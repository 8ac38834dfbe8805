package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"totallines/internal/config"
	"totallines/internal/domain"
	"totallines/internal/linecount"
	"totallines/internal/logging"
	"totallines/internal/safeio"
)

const (
	// Extension is the file-name suffix that selects files to count.
	Extension = ".java"
	// Label names the counted language in the result line.
	Label = "Java"
)

var getwd = os.Getwd

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		logging.Logger.WithError(err).Error("totallines failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "totallines",
		Short:         "Print the total number of lines of " + Label + " code under the current directory",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.Setup(cfg.Log)
			for _, w := range cfg.Warnings {
				logging.For("config").Warn(w)
			}

			wd, err := getwd()
			if err != nil {
				return domain.TraversalFailure("cli.getwd", ".", err)
			}
			total, err := countTree(wd, cfg.CacheSize)
			if err != nil {
				return err
			}
			return printTotal(cmd.OutOrStdout(), total)
		},
	}
}

func countTree(root string, cacheSize int) (int, error) {
	fsys, err := safeio.NewSafeFS(root)
	if err != nil {
		return 0, domain.TraversalFailure("cli.open_root", root, err)
	}
	counter, err := linecount.New(fsys, Extension, linecount.WithCacheSize(cacheSize))
	if err != nil {
		return 0, err
	}
	return counter.Total()
}

func printTotal(w io.Writer, total int) error {
	_, err := fmt.Fprintf(w, "Total lines of %s code: %d\n", Label, total)
	return err
}
