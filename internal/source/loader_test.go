package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFixture(t, `[
		{"doc_id": "doc-1", "patient_id": "pat-1", "administered_date": "2024-01-10", "vaccine_name": "DTaP"},
		{"doc_id": "doc-2", "patient_id": "pat-2", "administered_date": "2024-02-20", "vaccine_name": "MMR"}
	]`)

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].DocID != "doc-1" || records[1].VaccineName != "MMR" {
		t.Error("records not decoded in order")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeFixture(t, `{"not": "an array"`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed input")
	}
}

func TestLoadDuplicateDocID(t *testing.T) {
	path := writeFixture(t, `[
		{"doc_id": "doc-1"},
		{"doc_id": "doc-1"}
	]`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for duplicate doc_id")
	}
	if !strings.Contains(err.Error(), "doc-1") {
		t.Errorf("error should name the duplicate id: %v", err)
	}
}

func TestLoadEmptyDocID(t *testing.T) {
	path := writeFixture(t, `[{"patient_id": "pat-1"}]`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for record without doc_id")
	}
}

func TestDateSpan(t *testing.T) {
	path := writeFixture(t, `[
		{"doc_id": "a", "administered_date": "2024-03-01"},
		{"doc_id": "b", "administered_date": "2024-01-15"},
		{"doc_id": "c"},
		{"doc_id": "d", "administered_date": "2024-06-30"}
	]`)

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	earliest, latest := DateSpan(records)
	if earliest != "2024-01-15" {
		t.Errorf("earliest %q, want 2024-01-15", earliest)
	}
	if latest != "2024-06-30" {
		t.Errorf("latest %q, want 2024-06-30", latest)
	}
}

func TestDateSpanNoDates(t *testing.T) {
	earliest, latest := DateSpan(nil)
	if earliest != "" || latest != "" {
		t.Errorf("expected empty span, got %q %q", earliest, latest)
	}
}
