package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AzorianSolutions/grandstart/internal/infrastructure/logging"
	"github.com/AzorianSolutions/grandstart/internal/lineimport"
	"github.com/AzorianSolutions/grandstart/internal/output"
	"github.com/AzorianSolutions/grandstart/internal/provisioning"
	"github.com/AzorianSolutions/grandstart/internal/report"
	"github.com/AzorianSolutions/grandstart/internal/template"
)

// Default column names of the line file.
const (
	DefaultSubscriberColumn = "SUBSCRIBER_ID"
	DefaultLocationColumn   = "LOCATION_ID"
)

// Generator runs provisioning requests. It holds no per-run state and may
// be reused.
type Generator struct {
	logger       *logging.Logger
	writer       output.Writer
	sink         report.Sink
	templateOpts []template.Option
	now          func() time.Time
	newID        func() string
}

// Option configures a Generator.
type Option func(*Generator)

// WithSink sets where run results are reported.
func WithSink(sink report.Sink) Option {
	return func(g *Generator) { g.sink = sink }
}

// WithTemplateOptions sets the options used to parse templates.
func WithTemplateOptions(opts ...template.Option) Option {
	return func(g *Generator) { g.templateOpts = opts }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithIDFunc replaces the run ID generator.
func WithIDFunc(newID func() string) Option {
	return func(g *Generator) { g.newID = newID }
}

// New creates a Generator writing through w.
func New(logger *logging.Logger, w output.Writer, opts ...Option) *Generator {
	g := &Generator{
		logger: logger,
		writer: w,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logging.Discard()
	}
	return g
}

// Run executes req.
func (g *Generator) Run(ctx context.Context, req Request) (*Result, error) {
	req = withDefaults(req)
	if err := checkPaths(req, true); err != nil {
		return nil, err
	}
	if g.writer == nil {
		return nil, fmt.Errorf("%w: no output writer", ErrInvalidRequest)
	}

	runID := g.newID()
	started := g.now()
	log := g.logger.With("run_id", runID)

	log.Info("subscriber line file", "path", req.InputPath)
	log.Info("configuration output path", "path", req.OutputDir, "dry_run", req.DryRun)

	idx, err := template.Load(req.TemplatePath, g.templateOpts...)
	if err != nil {
		return nil, err
	}

	groups, err := g.loadGroups(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &Result{RunID: runID}
	result.Counters.Subscribers = provisioning.CountSubscribers(groups)

	tally := newSubscriberTally(log)
	owners := make(map[string]provisioning.Group)
	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		counts := provisioning.Size(len(group.Lines))
		result.Counters.AddGroup(len(group.Lines), counts)
		tally.add(group, counts, req.UseLocationID)

		for _, alloc := range provisioning.Allocate(group, counts) {
			if prev, ok := owners[alloc.DeviceID]; ok {
				return nil, fmt.Errorf("%w: %s from %s and %s",
					ErrDuplicateDevice, alloc.DeviceID, describeGroup(prev), describeGroup(group))
			}
			owners[alloc.DeviceID] = group

			cfg, err := render(idx, group, alloc, req.Strict, log)
			if err != nil {
				return nil, err
			}
			result.Configs = append(result.Configs, cfg)
		}
	}
	tally.flush()

	events := make([]report.DeviceEvent, 0, len(result.Configs))
	for i := range result.Configs {
		cfg := &result.Configs[i]
		path, err := g.writer.Write(ctx, cfg.DeviceID, cfg.Text)
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", cfg.DeviceID, err)
		}
		cfg.Path = path
		result.Files = append(result.Files, path)
		events = append(events, report.DeviceEvent{
			RunID:        runID,
			DeviceID:     cfg.DeviceID,
			Model:        cfg.Class.Tag(),
			SubscriberID: cfg.SubscriberID,
			LocationID:   cfg.LocationID,
			Lines:        cfg.Lines,
			Path:         path,
		})
		log.Trace("configuration written", "device_id", cfg.DeviceID, "path", path)
	}

	result.Summary = report.Summary{
		RunID:         runID,
		StartedAt:     started,
		FinishedAt:    g.now(),
		InputPath:     req.InputPath,
		TemplatePath:  req.TemplatePath,
		OutputDir:     req.OutputDir,
		UseLocationID: req.UseLocationID,
		DryRun:        req.DryRun,
		Counters:      result.Counters,
	}

	if g.sink != nil {
		if err := g.sink.Report(ctx, result.Summary, events); err != nil {
			log.Error("reporting run failed", "error", err)
			result.ReportErr = err
		}
	}
	return result, nil
}

// Plan groups and sizes the lines of req without reading a template or
// writing files.
func (g *Generator) Plan(ctx context.Context, req Request) (*Plan, error) {
	req = withDefaults(req)
	if err := checkPaths(req, false); err != nil {
		return nil, err
	}

	groups, err := g.loadGroups(ctx, req)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Groups: make([]GroupPlan, 0, len(groups))}
	plan.Counters.Subscribers = provisioning.CountSubscribers(groups)

	tally := newSubscriberTally(g.logger)
	owners := make(map[string]provisioning.Group)
	for _, group := range groups {
		counts := provisioning.Size(len(group.Lines))
		plan.Counters.AddGroup(len(group.Lines), counts)
		tally.add(group, counts, req.UseLocationID)

		gp := GroupPlan{
			SubscriberID: group.SubscriberID,
			LocationID:   group.LocationID,
			Lines:        len(group.Lines),
			Counts:       counts,
		}
		for _, alloc := range provisioning.Allocate(group, counts) {
			if prev, ok := owners[alloc.DeviceID]; ok {
				return nil, fmt.Errorf("%w: %s from %s and %s",
					ErrDuplicateDevice, alloc.DeviceID, describeGroup(prev), describeGroup(group))
			}
			owners[alloc.DeviceID] = group
			gp.DeviceIDs = append(gp.DeviceIDs, alloc.DeviceID)
		}
		plan.Groups = append(plan.Groups, gp)
	}
	tally.flush()
	return plan, nil
}

func (g *Generator) loadGroups(ctx context.Context, req Request) ([]provisioning.Group, error) {
	records, err := lineimport.ReadFile(ctx, req.InputPath, lineimport.FileOptions{
		Format: req.InputFormat,
		Sheet:  req.Sheet,
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", req.InputPath, err)
	}

	if err := lineimport.Validate(records, req.SubscriberColumn); err != nil {
		return nil, err
	}
	if req.UseLocationID {
		if err := lineimport.CheckColumns(records, req.LocationColumn); err != nil {
			return nil, err
		}
	}

	return provisioning.GroupLines(records, provisioning.GroupOptions{
		SubscriberColumn: req.SubscriberColumn,
		LocationColumn:   req.LocationColumn,
		UseLocationID:    req.UseLocationID,
	}), nil
}

func render(idx *template.Index, group provisioning.Group, alloc provisioning.Allocation, strict bool, log *logging.Logger) (RenderedConfig, error) {
	fields := alloc.Fields()

	if tokens := idx.Unresolved(fields); len(tokens) > 0 {
		if strict {
			return RenderedConfig{}, fmt.Errorf("rendering %s: %w: %s",
				alloc.DeviceID, template.ErrUnresolvedToken, strings.Join(tokens, ", "))
		}
		log.Warn("unresolved template tokens",
			"device_id", alloc.DeviceID,
			"tokens", strings.Join(tokens, ","),
		)
	}

	return RenderedConfig{
		DeviceID:     alloc.DeviceID,
		Class:        alloc.Class,
		SubscriberID: group.SubscriberID,
		LocationID:   group.LocationID,
		Lines:        len(alloc.Lines),
		Text:         idx.Build(fields),
	}, nil
}

// describeGroup names a group for error messages.
func describeGroup(g provisioning.Group) string {
	if g.LocationID == "" {
		return fmt.Sprintf("subscriber %q (no location)", g.SubscriberID)
	}
	return fmt.Sprintf("subscriber %q location %q", g.SubscriberID, g.LocationID)
}

func withDefaults(req Request) Request {
	if req.SubscriberColumn == "" {
		req.SubscriberColumn = DefaultSubscriberColumn
	}
	if req.LocationColumn == "" {
		req.LocationColumn = DefaultLocationColumn
	}
	return req
}

// checkPaths verifies the input (and, when needed, the template) exist.
func checkPaths(req Request, needTemplate bool) error {
	if req.InputPath == "" {
		return fmt.Errorf("%w: input path is required", ErrInvalidRequest)
	}
	if err := checkFile(req.InputPath, ErrInputNotFound); err != nil {
		return err
	}
	if !needTemplate {
		return nil
	}
	if req.TemplatePath == "" {
		return fmt.Errorf("%w: template path is required", ErrInvalidRequest)
	}
	return checkFile(req.TemplatePath, ErrTemplateNotFound)
}

func checkFile(path string, notFound error) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", notFound, path)
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidRequest, path)
	}
	return nil
}
