package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sternxxxx/ML-Methods-and-Tools/config"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/imdb"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/lessons"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/logging"
	"github.com/sternxxxx/ML-Methods-and-Tools/internal/results"
)

var params lessons.Params

var rootCmd = &cobra.Command{
	Use:   "lessons",
	Short: "Neural-network sentiment classification exercises on the IMDB review corpus",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "dev"
		}
		config.LoadEnv(env)
		logging.InitLogger()

		if params.DataDir == "" {
			params.DataDir = config.GetString("IMDB_DATA_DIR", ".cache/imdb")
		}
		if params.ResultsDir == "" {
			params.ResultsDir = config.GetString("RESULTS_DIR", "results")
		}
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the lessons in teaching order",
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range lessons.All() {
			fmt.Printf("%-22s %s\n", l.Name, l.Title)
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run [lesson ...]",
	Short: "Run one or more lessons sequentially (default: all)",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := args
		if len(names) == 0 {
			for _, l := range lessons.All() {
				names = append(names, l.Name)
			}
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		if err := lessons.RunAll(ctx, names, params); err != nil {
			slog.Error("[Main] Lesson run failed", slog.String("error", err.Error()))
			return err
		}
		return nil
	},
}

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Download and encode the review corpus, then print a sample",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		train, test, wordIndex, err := imdb.Load(ctx, imdb.LoadOptions{
			DataDir: params.DataDir,
			Seed:    params.Seed,
		})
		if err != nil {
			return err
		}

		fmt.Printf("train: %d reviews, test: %d reviews, vocabulary: %d words\n",
			train.Len(), test.Len(), len(wordIndex))
		if train.Len() > 0 {
			fmt.Printf("\nfirst review (%d tokens, label %d):\n%s\n",
				len(train.Reviews[0]), train.Labels[0],
				imdb.Decode(train.Reviews[0], wordIndex))
		}
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report [lesson ...]",
	Short: "Regenerate HTML reports from saved run histories",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := results.NewStore(params.ResultsDir)

		names := args
		if len(names) == 0 {
			saved, err := store.Lessons()
			if err != nil {
				return err
			}
			names = saved
		}

		for _, name := range names {
			runs, err := store.LoadRuns(name)
			if err != nil {
				return err
			}
			summary := ""
			if l, err := lessons.Get(name); err == nil {
				summary = l.Summary
			}
			if err := store.WriteReport(name, summary, runs); err != nil {
				return err
			}
			slog.Info("[Main] Report regenerated", slog.String("lesson", name))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&params.DataDir, "data-dir", "", "dataset cache directory (default $IMDB_DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&params.ResultsDir, "results-dir", "", "artifact output directory (default $RESULTS_DIR)")
	rootCmd.PersistentFlags().Int64Var(&params.Seed, "seed", 42, "random seed for shuffling and weight init")

	runCmd.Flags().IntVar(&params.Epochs, "epochs", 0, "override the lesson's epoch count")
	runCmd.Flags().IntVar(&params.BatchSize, "batch-size", 0, "override the lesson's batch size")
	runCmd.Flags().IntVar(&params.MaxSamples, "samples", 0, "cap train/test examples for quick runs")
	runCmd.Flags().IntVar(&params.MaxLen, "maxlen", 0, "override sequence length for sequence lessons")
	runCmd.Flags().BoolVar(&params.Progress, "progress", false, "draw per-epoch progress bars")

	rootCmd.AddCommand(listCmd, runCmd, datasetCmd, reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
