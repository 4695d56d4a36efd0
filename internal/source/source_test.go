package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amishk599/jobboard/internal/model"
)

func TestParse_JSONArray(t *testing.T) {
	records, err := Parse(strings.NewReader(`[{"id":"1","title":"Data Engineer"},{"id":2}]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if records[0]["title"] != "Data Engineer" {
		t.Errorf("title = %v", records[0]["title"])
	}
	if records[1]["id"] != float64(2) {
		t.Errorf("id = %v (%T), want float64 2", records[1]["id"], records[1]["id"])
	}
}

func TestParse_ScriptForm(t *testing.T) {
	in := "window.JOBS_DATA = [\n  {\"id\": \"1\"}\n];\n"
	records, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 1 || records[0]["id"] != "1" {
		t.Errorf("records = %v", records)
	}
}

func TestParse_Empty(t *testing.T) {
	for _, in := range []string{"", "[]", "window.JOBS_DATA = [];"} {
		records, err := Parse(strings.NewReader(in))
		if err != nil {
			t.Errorf("Parse(%q): %v", in, err)
		}
		if len(records) != 0 {
			t.Errorf("Parse(%q) = %d records, want 0", in, len(records))
		}
	}
}

func TestParse_SkipsNonObjects(t *testing.T) {
	records, err := Parse(strings.NewReader(`[1, "x", null, {"id":"ok"}]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 1 || records[0]["id"] != "ok" {
		t.Errorf("records = %v", records)
	}
}

func TestParse_NotArray(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"jobs": []}`))
	if !errors.Is(err, ErrNotArray) {
		t.Errorf("Parse(object) = %v, want ErrNotArray", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "jobs.js"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteThenLoad(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "jobs.json")
	jsPath := filepath.Join(dir, "jobs.js")
	records := []model.RawRecord{{"id": "1", "title": "Data Engineer"}}

	if err := Write(records, jsonPath, jsPath); err != nil {
		t.Fatalf("Write: %v", err)
	}

	js, err := os.ReadFile(jsPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(js), "window.JOBS_DATA = [") || !strings.HasSuffix(string(js), "];") {
		t.Errorf("unexpected script form: %s", js)
	}

	for _, p := range []string{jsonPath, jsPath} {
		got, err := LoadFile(p)
		if err != nil {
			t.Fatalf("LoadFile(%s): %v", p, err)
		}
		if len(got) != 1 || got[0]["title"] != "Data Engineer" {
			t.Errorf("LoadFile(%s) = %v", p, got)
		}
	}
}

func TestLoadFiles_KeepsArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "amazon.json")
	second := filepath.Join(dir, "jobs.js")
	if err := os.WriteFile(first, []byte(`[{"id":"a1"},{"id":"a2"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte(`window.JOBS_DATA = [{"id":"m1"}];`), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := LoadFiles(context.Background(), []string{first, second})
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	var ids []string
	for _, r := range records {
		ids = append(ids, r["id"].(string))
	}
	if strings.Join(ids, ",") != "a1,a2,m1" {
		t.Errorf("ids = %v", ids)
	}

	if _, err := LoadFiles(context.Background(), []string{first, filepath.Join(dir, "missing.json")}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFiles with missing file = %v, want ErrNotExist", err)
	}
}
