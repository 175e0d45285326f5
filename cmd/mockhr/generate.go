package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nomemory/lambdas/hr"
	"github.com/nomemory/lambdas/stream"
	"github.com/nomemory/lambdas/utils/jsonstream"
	"github.com/nomemory/lambdas/utils/yamlstream"
)

func newGenerateCommand() *cobra.Command {
	command := &cobra.Command{
		Use:     "generate",
		Short:   "Fabricate a mock manager dataset",
		Example: "mockhr generate --count 100 --seed 7 --format csv -o managers.csv",
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, _ := cmd.Flags().GetInt("count")
			seed, _ := cmd.Flags().GetUint64("seed")
			format, _ := cmd.Flags().GetString("format")
			outputPath, _ := cmd.Flags().GetString("output")

			if count < 0 {
				return fmt.Errorf("%w: count must not be negative", errUserInput)
			}

			out := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("%w: %v", errFileAccess, err)
				}
				defer f.Close()
				out = f
			}

			// Records flow from the mock source straight to the writer, the
			// dataset is never materialized
			return writeDataset(cmd.Context(), out, format, hr.NewMock(seed).ManagerStream(count))
		},
	}

	command.Flags().Int("count", 1000, "Number of records to fabricate")
	command.Flags().Uint64("seed", 1, "Mock data seed, the same seed always yields the same dataset")
	command.Flags().StringP("format", "f", "jsonl", "Output format: json|jsonl|yaml|csv")
	command.Flags().StringP("output", "o", "", "Output file (defaults to stdout)")

	return command
}

func writeDataset(ctx context.Context, w io.Writer, format string, managers stream.Stream[hr.Manager]) error {
	var err error
	switch format {
	case "json":
		err = jsonstream.StreamJsonToWriter(ctx, w, managers)
	case "jsonl":
		enc := json.NewEncoder(w)
		err = managers.ConsumeWithErr(ctx, func(m hr.Manager) error { return enc.Encode(m) })
	case "yaml":
		err = yamlstream.StreamYamlToWriter(ctx, w, managers)
	case "csv":
		err = writeCsvDataset(ctx, w, managers)
	default:
		return fmt.Errorf("%w: unknown format %q", errUserInput, format)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", errEncoding, err)
	}
	return nil
}

func writeCsvDataset(ctx context.Context, w io.Writer, managers stream.Stream[hr.Manager]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "department", "salary"}); err != nil {
		return err
	}
	err := managers.ConsumeWithErr(ctx, func(m hr.Manager) error {
		return cw.Write([]string{
			strconv.FormatInt(m.ID, 10),
			m.Name,
			m.Department,
			strconv.FormatFloat(m.Salary, 'f', 2, 64),
		})
	})
	if err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
