package output_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"movienight/internal/catalog"
	"movienight/internal/output"
	"movienight/internal/services"
)

func samplePayload() catalog.Payload {
	return catalog.Payload{
		Date:      "2026-03-10",
		Criteria:  "Public daily mix",
		RowTitles: []string{"War"},
		Items: []catalog.Item{
			{
				Title:     "Le Samouraï & Friends <Restored>",
				Year:      "1967",
				Director:  "Jean-Pierre Melville",
				Leads:     []string{"Alain Delon"},
				PosterURL: "https://image.tmdb.org/t/p/w500/x.jpg",
				YouTubeID: "abcdefghijk",
			},
		},
	}
}

func TestWriteProducesStableDocument(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.Join("/srv", "data", "today.json")
	writer := output.NewWriter(fs, path, nil)

	if err := writer.Write(samplePayload()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "{\n  \"date\": \"2026-03-10\",\n  \"criteria\"") {
		t.Fatalf("unexpected key order or indentation:\n%s", text)
	}
	if !strings.Contains(text, "Le Samouraï & Friends <Restored>") {
		t.Fatalf("expected unescaped UTF-8 and HTML characters:\n%s", text)
	}
	if !strings.Contains(text, `"awards": []`) {
		t.Fatalf("expected nil awards encoded as empty array:\n%s", text)
	}
	keys := []string{`"title"`, `"year"`, `"director"`, `"leads"`, `"posterUrl"`, `"youtubeId"`, `"awards"`}
	last := -1
	for _, key := range keys {
		idx := strings.Index(text, key)
		if idx <= last {
			t.Fatalf("item key %s out of order", key)
		}
		last = idx
	}
	if exists, _ := afero.Exists(fs, path+".tmp"); exists {
		t.Fatal("temp file left behind")
	}

	payload, err := output.Read(fs, path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if payload.Items[0].YouTubeID != "abcdefghijk" || payload.RowTitles[0] != "War" {
		t.Fatalf("unexpected round trip %+v", payload)
	}
}

func TestWriteRejectsSchemaViolation(t *testing.T) {
	fs := afero.NewMemMapFs()
	writer := output.NewWriter(fs, "/data/today.json", nil)
	payload := samplePayload()
	payload.Items[0].YouTubeID = "short"

	err := writer.Write(payload)
	if !errors.Is(err, services.ErrOutput) {
		t.Fatalf("expected output error, got %v", err)
	}
	if !strings.Contains(err.Error(), "youtubeId") {
		t.Fatalf("expected field name in error, got %v", err)
	}
	if exists, _ := afero.Exists(fs, "/data/today.json"); exists {
		t.Fatal("invalid payload must not be written")
	}
}

func TestWriteFailsOnReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := output.NewWriter(fs, "/data/today.json", nil).Write(samplePayload())
	if services.ExitCode(err) != services.ExitOutput {
		t.Fatalf("expected output exit code, got %v", err)
	}
}

func TestValidateDocumentRejectsExtraKeys(t *testing.T) {
	doc := `{"date":"2026-03-10","criteria":"c","row_titles":["War"],"items":[],"extra":1}`
	if err := output.ValidateDocument([]byte(doc)); err == nil {
		t.Fatal("expected additional property to be rejected")
	}
}

func TestAcquireLockIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "today.json")
	first, err := output.AcquireLock(path)
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	if first.Path() != path+".lock" {
		t.Fatalf("unexpected lock path %q", first.Path())
	}

	if _, err := output.AcquireLock(path); !errors.Is(err, services.ErrOutput) {
		t.Fatalf("expected second lock to fail with output error, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	again, err := output.AcquireLock(path)
	if err != nil {
		t.Fatalf("expected lock after release, got %v", err)
	}
	_ = again.Release()
}
