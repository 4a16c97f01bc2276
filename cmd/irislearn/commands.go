package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"irislearn/pkg/crossval"
	"irislearn/pkg/pipeline"
	"irislearn/pkg/report"
)

func newRunCmd(load func() config) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "full demo: preview, cross-validate both pipelines, report importances",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := load()
			out := cmd.OutOrStdout()

			raw, f, err := loadFrame()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "loaded %d rows, %d feature columns\n\n", f.NumRows(), len(raw.FeatureNames))
			if err := report.Head(out, f, 5); err != nil {
				return err
			}

			forest, logreg, err := buildPipelines(raw, cfg)
			if err != nil {
				return err
			}

			names := []string{forest.Name, logreg.Name}
			scores := map[string][]float64{}
			for _, p := range []*pipeline.Pipeline{forest, logreg} {
				s, err := crossval.CrossValidate(p, f, foldSpec(cfg))
				if err != nil {
					return err
				}
				scores[p.Name] = s
			}
			fmt.Fprintf(out, "\n%d-fold cross-validation accuracy:\n", cfg.Folds)
			if err := report.ScoreSummary(out, names, scores); err != nil {
				return err
			}

			// refit the forest on the full table before reading importances
			if err := forest.Fit(f); err != nil {
				return err
			}
			imps, err := forest.FeatureImportances()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nfeature importances (%d trees):\n", cfg.Trees)
			return report.Importances(out, imps)
		},
	}
}

func newCVCmd(load func() config) *cobra.Command {
	return &cobra.Command{
		Use:   "cv",
		Short: "cross-validate both pipelines and summarize fold scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := load()
			raw, f, err := loadFrame()
			if err != nil {
				return err
			}
			forest, logreg, err := buildPipelines(raw, cfg)
			if err != nil {
				return err
			}
			names := []string{forest.Name, logreg.Name}
			scores := map[string][]float64{}
			for _, p := range []*pipeline.Pipeline{forest, logreg} {
				s, err := crossval.CrossValidate(p, f, foldSpec(cfg))
				if err != nil {
					return err
				}
				scores[p.Name] = s
			}
			return report.ScoreSummary(cmd.OutOrStdout(), names, scores)
		},
	}
}

func newImportancesCmd(load func() config) *cobra.Command {
	return &cobra.Command{
		Use:   "importances",
		Short: "fit the forest on the full table and print feature importances",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := load()
			raw, f, err := loadFrame()
			if err != nil {
				return err
			}
			forest, _, err := buildPipelines(raw, cfg)
			if err != nil {
				return err
			}
			if err := forest.Fit(f); err != nil {
				return err
			}
			imps, err := forest.FeatureImportances()
			if err != nil {
				return err
			}
			return report.Importances(cmd.OutOrStdout(), imps)
		},
	}
}

func newPlotCmd(load func() config) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "write fold-score and importance bar charts as PNGs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := load()
			raw, f, err := loadFrame()
			if err != nil {
				return err
			}
			forest, logreg, err := buildPipelines(raw, cfg)
			if err != nil {
				return err
			}
			names := []string{forest.Name, logreg.Name}
			scores := map[string][]float64{}
			for _, p := range []*pipeline.Pipeline{forest, logreg} {
				s, err := crossval.CrossValidate(p, f, foldSpec(cfg))
				if err != nil {
					return err
				}
				scores[p.Name] = s
			}
			if err := forest.Fit(f); err != nil {
				return err
			}
			imps, err := forest.FeatureImportances()
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			scorePath := filepath.Join(outDir, "cv_scores.png")
			impPath := filepath.Join(outDir, "importances.png")
			if err := report.SaveScoreBars(scorePath, names, scores); err != nil {
				return err
			}
			if err := report.SaveImportanceBars(impPath, imps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s\n", scorePath, impPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "directory for the PNG files")
	return cmd
}
