package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"movienight/internal/catalog"
	"movienight/internal/config"
	"movienight/internal/logging"
	"movienight/internal/rowfill"
	"movienight/internal/services"
	"movienight/internal/youtube"
)

// DateLayout is the day-granularity layout of the payload date.
const DateLayout = "2006-01-02"

// RowFiller fills a single row and tops it up from a fallback pool.
type RowFiller interface {
	Fill(ctx context.Context, row rowfill.RowSpec, seen *catalog.SeenSet) ([]catalog.Item, error)
	Fallback(ctx context.Context, row rowfill.RowSpec, queries []string, seen *catalog.SeenSet, items []catalog.Item) ([]catalog.Item, error)
	Target() int
}

// Writer persists a completed payload.
type Writer interface {
	Write(payload catalog.Payload) error
}

// Plan is the static description of one run.
type Plan struct {
	Criteria        string
	Rows            []rowfill.RowSpec
	FallbackQueries []string
}

// PlanFromConfig builds a Plan from curation settings.
func PlanFromConfig(cfg *config.Config) Plan {
	rows := make([]rowfill.RowSpec, 0, len(cfg.Curation.Rows))
	for _, row := range cfg.Curation.Rows {
		rows = append(rows, rowfill.RowSpec{
			Name:    row.Name,
			Order:   youtube.Order(row.RowOrder()),
			Queries: append([]string(nil), row.Queries...),
		})
	}
	return Plan{
		Criteria:        cfg.Curation.Criteria,
		Rows:            rows,
		FallbackQueries: append([]string(nil), cfg.Curation.FallbackQueries...),
	}
}

// ShortfallError reports a row that could not reach its item count.
type ShortfallError struct {
	Row   string
	Found int
	Want  int
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("row %q has %d of %d items after fallback", e.Row, e.Found, e.Want)
}

func (e *ShortfallError) Unwrap() error {
	return services.ErrShortfall
}

// Runner sequences rows, enforces per-row cardinality, and emits the payload.
type Runner struct {
	filler RowFiller
	writer Writer
	plan   Plan
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock overrides the time source used for the payload date.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logging.NewComponentLogger(logger, "workflow")
	}
}

// NewRunner constructs a Runner. A nil writer skips persistence.
func NewRunner(filler RowFiller, writer Writer, plan Plan, opts ...Option) *Runner {
	r := &Runner{
		filler: filler,
		writer: writer,
		plan:   plan,
		now:    time.Now,
		logger: logging.NewComponentLogger(nil, "workflow"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run fills every row in declared order and writes the payload once all rows
// are complete. Any error leaves the output untouched.
func (r *Runner) Run(ctx context.Context) (*catalog.Payload, error) {
	logger := logging.WithContext(ctx, r.logger)
	started := time.Now()
	seen := catalog.NewSeenSet()
	target := r.filler.Target()

	logger.Info("run started", logging.Int("rows", len(r.plan.Rows)), logging.Int("row_size", target))

	all := make([]catalog.Item, 0, len(r.plan.Rows)*target)
	titles := make([]string, 0, len(r.plan.Rows))
	for _, row := range r.plan.Rows {
		items, err := r.fillRow(ctx, row, seen, target)
		if err != nil {
			return nil, err
		}
		titles = append(titles, row.Name)
		all = append(all, items...)
	}

	payload := catalog.Payload{
		Date:      r.now().UTC().Format(DateLayout),
		Criteria:  r.plan.Criteria,
		RowTitles: titles,
		Items:     all,
	}
	if err := payload.Validate(); err != nil {
		return nil, services.Wrap(services.ErrOutput, "workflow", "validate payload", "", err)
	}

	if r.writer != nil {
		if err := r.writer.Write(payload); err != nil {
			return nil, err
		}
	}

	logger.Info("run complete",
		logging.Int("items", len(payload.Items)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return &payload, nil
}

func (r *Runner) fillRow(ctx context.Context, row rowfill.RowSpec, seen *catalog.SeenSet, target int) ([]catalog.Item, error) {
	items, err := r.filler.Fill(ctx, row, seen)
	if err != nil {
		return nil, err
	}
	if len(items) < target {
		items, err = r.filler.Fallback(ctx, row, r.plan.FallbackQueries, seen, items)
		if err != nil {
			return nil, err
		}
	}
	if len(items) < target {
		logging.ErrorWithContext(logging.WithContext(services.WithRow(ctx, row.Name), r.logger),
			"row shortfall", "row_shortfall",
			logging.Int("found", len(items)),
			logging.Int("want", target),
			logging.String(logging.FieldErrorHint, "widen the row query pool or fallback queries"),
		)
		return nil, &ShortfallError{Row: row.Name, Found: len(items), Want: target}
	}
	return items[:target], nil
}
