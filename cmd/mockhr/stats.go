package main

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nomemory/lambdas/hr"
	"github.com/nomemory/lambdas/stream"
	"github.com/nomemory/lambdas/utils/store"
)

func newStatsCommand() *cobra.Command {
	command := &cobra.Command{
		Use:     "stats <DATASET FILE>",
		Short:   "Summarize a jsonl manager dataset",
		Example: "mockhr stats managers.jsonl",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			datasetPath := args[0]
			if _, err := os.Stat(datasetPath); err != nil {
				return fmt.Errorf("%w: %v", errFileAccess, err)
			}

			managerStore, err := store.NewFileJsonStreamStore[hr.Manager](datasetPath)
			if err != nil {
				return fmt.Errorf("%w: %v", errFileAccess, err)
			}
			managers := managerStore.ReadStream(false)

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			count, err := managers.Count(ctx)
			if err != nil {
				return fmt.Errorf("%w: %v", errEncoding, err)
			}
			fmt.Fprintf(out, "Managers: %s\n", humanize.Comma(int64(count)))
			if count == 0 {
				return nil
			}

			totalSalary, err := stream.Reduce(ctx, managers, 0.0, func(acc float64, m hr.Manager) float64 {
				return acc + m.Salary
			})
			if err != nil {
				return fmt.Errorf("%w: %v", errEncoding, err)
			}
			fmt.Fprintf(out, "Total salary: $%s\n", humanize.CommafWithDigits(totalSalary, 2))
			fmt.Fprintf(out, "Average salary: $%s\n", humanize.CommafWithDigits(totalSalary/float64(count), 2))

			byDepartment, err := stream.CollectGroupedBy(ctx, managers, func(m hr.Manager) string {
				return m.Department
			})
			if err != nil {
				return fmt.Errorf("%w: %v", errEncoding, err)
			}
			fmt.Fprintln(out, "Departments:")
			for _, department := range slices.Sorted(maps.Keys(byDepartment)) {
				departmentTotal := 0.0
				for _, m := range byDepartment[department] {
					departmentTotal += m.Salary
				}
				fmt.Fprintf(out, "  %s: %d managers, total $%s\n",
					department, len(byDepartment[department]), humanize.CommafWithDigits(departmentTotal, 2))
			}

			return nil
		},
	}

	return command
}
