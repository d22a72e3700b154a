package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AzorianSolutions/grandstart/internal/generator"
	"github.com/AzorianSolutions/grandstart/internal/lineimport"
	"github.com/AzorianSolutions/grandstart/internal/output"
	"github.com/AzorianSolutions/grandstart/internal/provisioning"
	"github.com/AzorianSolutions/grandstart/internal/template"
)

// requestFlags are shared by run and plan. Empty values fall back to the
// configuration.
type requestFlags struct {
	input         string
	format        string
	sheet         string
	output        string
	template      string
	useLocationID bool
	strict        bool
	dryRun        bool
	createOutput  bool
	jsonOutput    bool
}

func (f *requestFlags) bindInput(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "subscriber line file (.csv or .xlsx)")
	cmd.Flags().StringVar(&f.format, "format", "", "force the input format: csv or xlsx")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "worksheet to read from an XLSX input")
	cmd.Flags().BoolVar(&f.useLocationID, "use-location-id", false, "group each subscriber's lines by location")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "print the result as JSON")
}

// request merges the flags over the loaded configuration.
func (f *requestFlags) request(cmd *cobra.Command, a *app) generator.Request {
	cfg := a.cfg
	req := generator.Request{
		InputPath:        pick(f.input, cfg.Input.Path),
		InputFormat:      lineimport.Format(pick(f.format, cfg.Input.Format)),
		Sheet:            pick(f.sheet, cfg.Input.Sheet),
		TemplatePath:     pick(f.template, cfg.Template.Path),
		OutputDir:        pick(f.output, cfg.Output.Dir),
		SubscriberColumn: cfg.Input.SubscriberColumn,
		LocationColumn:   cfg.Input.LocationColumn,
		UseLocationID:    cfg.Grouping.UseLocationID,
		Strict:           cfg.Template.Strict || f.strict,
		DryRun:           f.dryRun,
	}
	if cmd.Flags().Changed("use-location-id") {
		req.UseLocationID = f.useLocationID
	}
	return req
}

func pick(flag, configured string) string {
	if flag != "" {
		return flag
	}
	return configured
}

func newRunCmd(a *app) *cobra.Command {
	f := &requestFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate one configuration file per adapter",
		Long: `Reads the subscriber line file, sizes each subscriber (or subscriber
location) onto adapters and writes one rendered template per adapter into the
output directory. Files are named {subscriber}-{location}-{model}-{n}.xml.

Example:
  grandstart run -i lines.csv -t ht8xx.xml -o configs/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, a, f)
		},
	}
	f.bindInput(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "directory for generated configurations")
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "device configuration template")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail when a $LINE token has no matching column")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "render everything but write no files")
	cmd.Flags().BoolVar(&f.createOutput, "create-output", false, "create the output directory when missing")
	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, f *requestFlags) error {
	ctx := cmd.Context()
	req := f.request(cmd, a)

	var w output.Writer
	if req.DryRun {
		w = output.NewDryRun(req.OutputDir, a.cfg.Output.Extension)
	} else {
		fw, err := output.NewFileWriter(output.Options{
			Dir:       req.OutputDir,
			Extension: a.cfg.Output.Extension,
			Create:    f.createOutput,
		})
		if err != nil {
			return err
		}
		w = fw
	}

	sink, cleanup := openSinks(ctx, a)
	defer cleanup()

	gen := generator.New(a.log, w,
		generator.WithSink(sink),
		generator.WithTemplateOptions(template.WithMarkers(a.cfg.Template.OpenMarker, a.cfg.Template.CloseMarker)),
	)
	result, err := gen.Run(ctx, req)
	if err != nil {
		return err
	}

	if f.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), struct {
			RunID    string                     `json:"run_id"`
			DryRun   bool                       `json:"dry_run"`
			Counters provisioning.Counters      `json:"counters"`
			Devices  []generator.RenderedConfig `json:"devices"`
		}{result.RunID, req.DryRun, result.Counters, result.Configs})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s\n", result.RunID)
	for _, path := range result.Files {
		fmt.Fprintln(out, path)
	}
	return printCounters(out, result.Counters)
}

func newPlanCmd(a *app) *cobra.Command {
	f := &requestFlags{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the adapters each subscriber needs without rendering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := generator.New(a.log, nil).Plan(cmd.Context(), f.request(cmd, a))
			if err != nil {
				return err
			}
			if f.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), plan)
			}
			return printPlan(cmd.OutOrStdout(), plan)
		},
	}
	f.bindInput(cmd)
	return cmd
}

func printPlan(w io.Writer, plan *generator.Plan) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SUBSCRIBER\tLOCATION\tLINES\tHT818\tHT814\tHT812\tDEVICES")
	for _, g := range plan.Groups {
		location := g.LocationID
		if location == "" {
			location = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			g.SubscriberID, location, g.Lines,
			g.Counts.EightPort, g.Counts.FourPort, g.Counts.TwoPort, g.Counts.Total())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return printCounters(w, plan.Counters)
}

func printCounters(w io.Writer, c provisioning.Counters) error {
	_, err := fmt.Fprintf(w,
		"subscribers=%d groups=%d lines=%d devices=%d ht818=%d ht814=%d ht812=%d\n",
		c.Subscribers, c.Groups, c.Lines, c.Devices, c.HT818, c.HT814, c.HT812)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
