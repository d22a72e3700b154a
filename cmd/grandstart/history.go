package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/AzorianSolutions/grandstart/internal/inventory"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit      int
		subscriber string
		jsonOutput bool
	)
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recent runs, or the devices of one run",
		Long: `Reads the inventory database. Without arguments the most recent runs are
listed; with a run ID its devices are shown; with --subscriber every device
generated for that subscriber is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := a.cfg.Database.Path
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("no inventory database at %s", path)
			}

			db, err := openInventory(ctx, a)
			if err != nil {
				return fmt.Errorf("opening inventory: %w", err)
			}
			defer db.Close()
			repo := inventory.NewSQLiteRepository(db.DB)

			var devices []inventory.Device
			switch {
			case len(args) == 1:
				if _, err := repo.GetRun(ctx, args[0]); err != nil {
					return err
				}
				devices, err = repo.ListDevices(ctx, args[0])
			case subscriber != "":
				devices, err = repo.ListBySubscriber(ctx, subscriber)
			default:
				runs, err := repo.ListRuns(ctx, limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd.OutOrStdout(), runs)
				}
				return printRuns(cmd, runs)
			}
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), devices)
			}
			return printDevices(cmd, devices)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to list")
	cmd.Flags().StringVar(&subscriber, "subscriber", "", "list every device generated for a subscriber")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
	return cmd
}

func printRuns(cmd *cobra.Command, runs []inventory.Run) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tINPUT\tSUBSCRIBERS\tLINES\tDEVICES\tDRY RUN")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%t\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.InputPath,
			r.Counters.Subscribers, r.Counters.Lines, r.Counters.Devices, r.DryRun)
	}
	return tw.Flush()
}

func printDevices(cmd *cobra.Command, devices []inventory.Device) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DEVICE\tMODEL\tSUBSCRIBER\tLOCATION\tLINES\tFILE")
	for _, d := range devices {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			d.DeviceID, d.Model, d.SubscriberID, d.LocationID, d.Lines, d.FilePath)
	}
	return tw.Flush()
}
