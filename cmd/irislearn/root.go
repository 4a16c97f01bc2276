package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"irislearn/pkg/crossval"
	"irislearn/pkg/dataprep"
	"irislearn/pkg/dataset"
	"irislearn/pkg/frame"
	"irislearn/pkg/model"
	"irislearn/pkg/pipeline"
)

const targetColumn = "species"

type config struct {
	Seed     int64
	Folds    int
	Trees    int
	Stratify bool
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:           "irislearn",
		Short:         "compare classifiers on the bundled iris table",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	flags := root.PersistentFlags()
	flags.Int64("seed", 42, "random seed for sampling and fold shuffling")
	flags.Int("folds", 5, "cross-validation fold count")
	flags.Int("trees", 200, "random forest ensemble size")
	flags.Bool("stratify", false, "stratify folds by class")

	v.SetEnvPrefix("irislearn")
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)

	load := func() config {
		return config{
			Seed:     v.GetInt64("seed"),
			Folds:    v.GetInt("folds"),
			Trees:    v.GetInt("trees"),
			Stratify: v.GetBool("stratify"),
		}
	}

	root.AddCommand(newRunCmd(load))
	root.AddCommand(newCVCmd(load))
	root.AddCommand(newImportancesCmd(load))
	root.AddCommand(newPlotCmd(load))
	return root
}

// loadFrame loads the bundled dataset and assembles the tidy table.
func loadFrame() (*dataset.Raw, *frame.Frame, error) {
	raw, err := dataset.Load()
	if err != nil {
		return nil, nil, err
	}
	f, err := frame.Assemble(raw.Features, raw.FeatureNames, raw.Target, raw.TargetNames, targetColumn)
	if err != nil {
		return nil, nil, err
	}
	return raw, f, nil
}

// buildPipelines constructs the two classifiers under comparison: a random
// forest on raw measurements and a logistic regression behind a scaler.
// Both share the same column spec.
func buildPipelines(raw *dataset.Raw, cfg config) (forest, logreg *pipeline.Pipeline, err error) {
	spec := pipeline.Spec{Features: raw.FeatureNames, Target: targetColumn}

	forest, err = pipeline.New("random-forest", spec,
		model.NewRandomForest(
			model.WithNEstimators(cfg.Trees),
			model.WithBootstrap(true),
			model.WithForestRandomState(cfg.Seed),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("build forest pipeline: %w", err)
	}

	logreg, err = pipeline.New("logistic-regression", spec,
		model.NewLogisticRegression(model.WithSeed(cfg.Seed)),
		dataprep.NewStandardScaler(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("build logistic pipeline: %w", err)
	}
	return forest, logreg, nil
}

func foldSpec(cfg config) crossval.KFold {
	return crossval.KFold{K: cfg.Folds, Shuffle: true, Stratify: cfg.Stratify, Seed: cfg.Seed}
}
