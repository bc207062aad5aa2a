package workflow_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"movienight/internal/catalog"
	"movienight/internal/config"
	"movienight/internal/rowfill"
	"movienight/internal/services"
	"movienight/internal/workflow"
	"movienight/internal/youtube"
)

var fixedNow = func() time.Time {
	return time.Date(2026, 3, 9, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
}

type memoryWriter struct {
	payloads []catalog.Payload
	err      error
}

func (w *memoryWriter) Write(p catalog.Payload) error {
	if w.err != nil {
		return w.err
	}
	w.payloads = append(w.payloads, p)
	return nil
}

// scriptedFiller hands out fresh items per row; fallbackYield controls how
// many items Fallback can add for a given row.
type scriptedFiller struct {
	fillYield     map[string]int
	fallbackYield map[string]int
	next          int
	fallbackRows  []string
	fillErr       error
}

func (f *scriptedFiller) Target() int { return 4 }

func (f *scriptedFiller) item(seen *catalog.SeenSet) catalog.Item {
	f.next++
	id := fmt.Sprintf("vid%08d", f.next)
	seen.Claim(id)
	return catalog.Item{Title: "Film " + id, YouTubeID: id, Leads: []string{}, Awards: []string{}}
}

func (f *scriptedFiller) Fill(_ context.Context, row rowfill.RowSpec, seen *catalog.SeenSet) ([]catalog.Item, error) {
	if f.fillErr != nil {
		return nil, f.fillErr
	}
	var items []catalog.Item
	for i := 0; i < f.fillYield[row.Name]; i++ {
		items = append(items, f.item(seen))
	}
	return items, nil
}

func (f *scriptedFiller) Fallback(_ context.Context, row rowfill.RowSpec, _ []string, seen *catalog.SeenSet, items []catalog.Item) ([]catalog.Item, error) {
	f.fallbackRows = append(f.fallbackRows, row.Name)
	for i := 0; i < f.fallbackYield[row.Name] && len(items) < 4; i++ {
		items = append(items, f.item(seen))
	}
	return items, nil
}

func testPlan() workflow.Plan {
	return workflow.Plan{
		Criteria: "criteria",
		Rows: []rowfill.RowSpec{
			{Name: "Recently Uploaded", Order: youtube.OrderDate, Queries: []string{"q"}},
			{Name: "Popular", Order: youtube.OrderViewCount, Queries: []string{"q"}},
			{Name: "War", Order: youtube.OrderRelevance, Queries: []string{"q"}},
		},
		FallbackQueries: []string{"full movie"},
	}
}

func TestRunWritesPayloadWhenAllRowsFill(t *testing.T) {
	filler := &scriptedFiller{
		fillYield:     map[string]int{"Recently Uploaded": 4, "Popular": 2, "War": 4},
		fallbackYield: map[string]int{"Popular": 5},
	}
	writer := &memoryWriter{}
	runner := workflow.NewRunner(filler, writer, testPlan(), workflow.WithClock(fixedNow))

	payload, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(writer.payloads) != 1 {
		t.Fatalf("expected exactly one write, got %d", len(writer.payloads))
	}
	if payload.Date != "2026-03-10" {
		t.Fatalf("expected UTC date, got %q", payload.Date)
	}
	if !slices.Equal(payload.RowTitles, []string{"Recently Uploaded", "Popular", "War"}) {
		t.Fatalf("unexpected row titles %v", payload.RowTitles)
	}
	if len(payload.Items) != 12 {
		t.Fatalf("expected 12 items, got %d", len(payload.Items))
	}
	if !slices.Equal(filler.fallbackRows, []string{"Popular"}) {
		t.Fatalf("fallback should run only for short rows, got %v", filler.fallbackRows)
	}
	seen := map[string]bool{}
	for _, item := range payload.Items {
		if seen[item.YouTubeID] {
			t.Fatalf("duplicate id %q", item.YouTubeID)
		}
		seen[item.YouTubeID] = true
	}
}

func TestRunShortfallAbortsWithoutWrite(t *testing.T) {
	filler := &scriptedFiller{
		fillYield:     map[string]int{"Recently Uploaded": 4, "Popular": 1, "War": 4},
		fallbackYield: map[string]int{"Popular": 2},
	}
	writer := &memoryWriter{}
	_, err := workflow.NewRunner(filler, writer, testPlan()).Run(context.Background())

	var shortfall *workflow.ShortfallError
	if !errors.As(err, &shortfall) {
		t.Fatalf("expected shortfall error, got %v", err)
	}
	if shortfall.Row != "Popular" || shortfall.Found != 3 || shortfall.Want != 4 {
		t.Fatalf("unexpected shortfall %+v", shortfall)
	}
	if !errors.Is(err, services.ErrShortfall) {
		t.Fatal("shortfall should match ErrShortfall")
	}
	if services.ExitCode(err) != services.ExitShortfall {
		t.Fatalf("unexpected exit code %d", services.ExitCode(err))
	}
	if len(writer.payloads) != 0 {
		t.Fatal("no artifact may be written on shortfall")
	}
}

func TestRunInfrastructureErrorAbortsWithoutWrite(t *testing.T) {
	boom := services.Wrap(services.ErrExternalService, "rowfill", "search", "q", errors.New("503"))
	writer := &memoryWriter{}
	_, err := workflow.NewRunner(&scriptedFiller{fillErr: boom}, writer, testPlan()).Run(context.Background())
	if !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected external service error, got %v", err)
	}
	if len(writer.payloads) != 0 {
		t.Fatal("no artifact may be written on infrastructure failure")
	}
}

func TestRunPropagatesWriterError(t *testing.T) {
	filler := &scriptedFiller{fillYield: map[string]int{"Recently Uploaded": 4, "Popular": 4, "War": 4}}
	writeErr := services.Wrap(services.ErrOutput, "output", "write", "disk full", nil)
	_, err := workflow.NewRunner(filler, &memoryWriter{err: writeErr}, testPlan()).Run(context.Background())
	if !errors.Is(err, services.ErrOutput) {
		t.Fatalf("expected output error, got %v", err)
	}
}

func TestPlanFromConfigUsesRowOrders(t *testing.T) {
	cfg := config.Default()
	plan := workflow.PlanFromConfig(&cfg)
	if len(plan.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(plan.Rows))
	}
	want := []youtube.Order{youtube.OrderDate, youtube.OrderViewCount, youtube.OrderRelevance, youtube.OrderRelevance, youtube.OrderRelevance}
	for i, row := range plan.Rows {
		if row.Order != want[i] {
			t.Fatalf("row %q order %q, want %q", row.Name, row.Order, want[i])
		}
	}
	if len(plan.FallbackQueries) != 4 || plan.Criteria == "" {
		t.Fatalf("unexpected plan %+v", plan)
	}
}

// sharedPoolSource returns the same ids for every query so rows compete for
// the same candidates.
type sharedPoolSource struct {
	ids []string
}

func (s *sharedPoolSource) Search(_ context.Context, _ youtube.SearchRequest) (*youtube.SearchPage, error) {
	page := &youtube.SearchPage{}
	for _, id := range s.ids {
		var r youtube.SearchResult
		r.ID.VideoID = id
		page.Items = append(page.Items, r)
	}
	return page, nil
}

func (s *sharedPoolSource) Videos(_ context.Context, ids []string) ([]youtube.Video, error) {
	out := make([]youtube.Video, 0, len(ids))
	for _, id := range ids {
		var v youtube.Video
		v.ID = id
		v.Snippet.Title = "Feature " + id
		v.ContentDetails.Duration = "PT1H50M"
		out = append(out, v)
	}
	return out, nil
}

type passthroughEnricher struct{}

func (passthroughEnricher) Enrich(_ context.Context, c catalog.Candidate) (catalog.Item, error) {
	return catalog.Item{Title: c.Title, YouTubeID: c.ID, Leads: []string{}, Awards: []string{}}, nil
}

func TestRunWithRowFillerKeepsIDsUniqueAcrossRows(t *testing.T) {
	pool := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		pool = append(pool, fmt.Sprintf("pool%07d", i))
	}
	validator, err := catalog.NewValidator(75, "")
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	filler := rowfill.New(&sharedPoolSource{ids: pool}, validator, passthroughEnricher{},
		rowfill.WithPageInterval(0))
	writer := &memoryWriter{}

	payload, err := workflow.NewRunner(filler, writer, testPlan(), workflow.WithClock(fixedNow)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(payload.Items) != 12 {
		t.Fatalf("expected 12 items, got %d", len(payload.Items))
	}
	got := make([]string, 0, len(payload.Items))
	for _, item := range payload.Items {
		got = append(got, item.YouTubeID)
	}
	if !slices.Equal(got, pool) {
		t.Fatalf("expected each row to take the next unseen ids, got %v", got)
	}

	pool = pool[:10]
	_, err = workflow.NewRunner(rowfill.New(&sharedPoolSource{ids: pool}, validator, passthroughEnricher{},
		rowfill.WithPageInterval(0)), writer, testPlan()).Run(context.Background())
	if !errors.Is(err, services.ErrShortfall) {
		t.Fatalf("expected shortfall once the pool is exhausted, got %v", err)
	}
}
