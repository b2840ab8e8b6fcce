// Command cvscope renders captured matrix snapshots as navigable trees.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abacchini/cvscope/cvscope"
	"github.com/abacchini/cvscope/internal/memread"
	"github.com/abacchini/cvscope/internal/snapshot"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	log := logrus.New()

	root := &cobra.Command{
		Use:          "cvscope",
		Short:        "Inspect captured matrix buffers",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if viper.GetBool("verbose") {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug tracing")
	viper.SetEnvPrefix("CVSCOPE")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	root.AddCommand(newDumpCmd(log), newExampleCmd(log))
	return root
}

func newDumpCmd(log *logrus.Logger) *cobra.Command {
	var (
		depth     int
		expandAll bool
		name      string
	)

	cmd := &cobra.Command{
		Use:   "dump <snapshot>",
		Short: "Render a snapshot as an indented tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			snap, err := snapshot.Read(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			log.WithFields(logrus.Fields{
				"file":    args[0],
				"regions": len(snap.Regions),
			}).Debug("loaded snapshot")

			node := cvscope.DescribeMat(snap.Header, snap.Image(), cvscope.WithLogger(log))

			opt := cvscope.WithExpansion(func(path string) bool {
				return pathDepth(path) < depth
			})
			if expandAll {
				opt = cvscope.ExpandAll()
			}
			return cvscope.Emit(node, cvscope.NewIndentSink(cmd.OutOrStdout(), name), opt)
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 2, "expand nodes up to this depth (0 = summary only)")
	cmd.Flags().BoolVar(&expandAll, "expand", false, "expand every node")
	cmd.Flags().StringVar(&name, "name", "mat", "label for the root node")
	return cmd
}

// newExampleCmd writes a small sample snapshot, mostly useful for trying
// out the dump command.
func newExampleCmd(log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "example <file>",
		Short: "Write a sample snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			const rows, cols = 3, 4

			elems := make([]float32, rows*cols)
			for i := range elems {
				elems[i] = float32(i) / 2
			}
			raw := memread.Bytes(elems)

			rc := int32(1)
			snap := &snapshot.Snapshot{
				Header: cvscope.MatHeader{
					Flags:     5, // CV_32FC1
					Rows:      rows,
					Cols:      cols,
					Dims:      2,
					Step:      []int64{cols * 4},
					Data:      0x1000,
					DataStart: 0x1000,
					DataEnd:   0x1000 + uint64(len(raw)),
					DataLimit: 0x1000 + uint64(len(raw)),
					RefCount:  &rc,
				},
				Regions: []snapshot.Region{{Addr: 0x1000, Data: raw}},
			}

			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			if err := snapshot.Write(f, snap); err != nil {
				return fmt.Errorf("writing %s: %w", args[0], err)
			}
			log.WithField("file", args[0]).Info("sample snapshot written")
			return nil
		},
	}
}

func pathDepth(p string) int {
	if p == "/" {
		return 0
	}
	return strings.Count(p, "/")
}
