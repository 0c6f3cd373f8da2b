package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gocausal/adapters/excel"
	"gocausal/adapters/rng"
	"gocausal/app"
	"gocausal/domain/core"
	"gocausal/internal/ledger"
	"gocausal/internal/report"
	"gocausal/internal/sampler"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Optional .env for local overrides
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "gocausal",
		Short: "Causal inference teaching toolkit: sample, intervene, imagine",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newAssociateCmd(),
		newInterveneCmd(),
		newCounterfactualCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newService() *app.ScenarioService {
	return app.NewScenarioService(rng.NewAdapter(), ledger.NewInMemoryLedger())
}

func newRunCmd() *cobra.Command {
	var seed int64
	var n int
	var dose float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run all three scenarios and print the report",
		Long: `Run the association, intervention and counterfactual scenarios with a
shared seed and print the markdown report.

Example: gocausal run --seed 42 --n 10000 --dose 1.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newService().RunAll(cmd.Context(), n, dose, seed)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(result)
			}
			fmt.Print(report.NewBuilder().Markdown(result))
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic sampling")
	cmd.Flags().IntVar(&n, "n", 10000, "Sample size per scenario")
	cmd.Flags().Float64Var(&dose, "dose", 1.5, "Constant treatment value for do(A)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit raw JSON instead of markdown")

	return cmd
}

func newAssociateCmd() *cobra.Command {
	var seed int64
	var n int

	cmd := &cobra.Command{
		Use:   "associate",
		Short: "Sample the binary scenario and print observed probabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := newService().RunAssociation(cmd.Context(), freshRunID(), n, seed)
			if err != nil {
				return err
			}
			return printJSON(summary)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic sampling")
	cmd.Flags().IntVar(&n, "n", 10000, "Sample size")

	return cmd
}

func newInterveneCmd() *cobra.Command {
	var seed int64
	var n int
	var dose float64

	cmd := &cobra.Command{
		Use:   "intervene",
		Short: "Contrast observation with do(A=dose) and do(B)",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := newService().RunIntervention(cmd.Context(), freshRunID(), n, dose, seed)
			if err != nil {
				return err
			}
			return printJSON(summary)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic sampling")
	cmd.Flags().IntVar(&n, "n", 10000, "Sample size")
	cmd.Flags().Float64Var(&dose, "dose", 1.5, "Constant treatment value for do(A)")

	return cmd
}

func newCounterfactualCmd() *cobra.Command {
	var tObs, yObs float64

	cmd := &cobra.Command{
		Use:   "counterfactual",
		Short: "Abduct the latent trait and predict under both treatments",
		Long: `Abduct the latent trait from an observed binary (treatment, outcome) pair,
then predict the outcome under each hypothetical treatment.

Example: gocausal counterfactual --treatment 1 --outcome 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := newService().RunCounterfactual(cmd.Context(), freshRunID(), tObs, yObs)
			if err != nil {
				return err
			}
			return printJSON(summary)
		},
	}

	cmd.Flags().Float64Var(&tObs, "treatment", 1, "Observed treatment (0 or 1)")
	cmd.Flags().Float64Var(&yObs, "outcome", 1, "Observed outcome (0 or 1)")

	return cmd
}

func newExportCmd() *cobra.Command {
	var seed int64
	var n int
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate both scenarios' datasets and write them to a workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), n, seed, out)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic sampling")
	cmd.Flags().IntVar(&n, "n", 1000, "Sample size per sheet")
	cmd.Flags().StringVar(&out, "out", "scm_datasets.xlsx", "Output workbook path")

	return cmd
}

func runExport(ctx context.Context, n int, seed int64, out string) error {
	streams := rng.NewAdapter()

	binStream, err := streams.SeededStream(ctx, app.StreamAssociation, seed)
	if err != nil {
		return err
	}
	binary, err := sampler.NewBinaryScenario(binStream).Sample(n)
	if err != nil {
		return err
	}

	contStream, err := streams.SeededStream(ctx, app.StreamIntervention, seed)
	if err != nil {
		return err
	}
	continuous, err := sampler.NewContinuousScenario(contStream).Sample(n)
	if err != nil {
		return err
	}

	writer := excel.NewDatasetWriter()
	if err := writer.AddBinarySheet("binary", binary); err != nil {
		return err
	}
	if err := writer.AddContinuousSheet("continuous", continuous); err != nil {
		return err
	}
	if err := writer.Save(out); err != nil {
		return err
	}

	fmt.Printf("wrote %d samples per scenario to %s\n", n, out)
	return nil
}

func freshRunID() core.RunID {
	return core.RunID(core.NewID())
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
