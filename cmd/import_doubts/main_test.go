package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"doubtsolver/internal/config"
	"doubtsolver/internal/doubts"
	"doubtsolver/internal/store"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const sampleCSV = `subject,question,answers,resolved
Math,What is a prime number?,A number with exactly two divisors|2 is the only even prime,yes
CSS,  What   does z-index do?  ,,false
,Missing subject,,
`

func TestBuildRecordsFromCSV(t *testing.T) {
	rows, err := readCSV(writeFile(t, "doubts.csv", sampleCSV))
	if err != nil {
		t.Fatalf("readCSV: %v", err)
	}
	records := buildRecords(rows)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	first := records[0]
	if first.Subject != "Math" || !first.Resolved || len(first.Answers) != 2 {
		t.Fatalf("unexpected first record %+v", first)
	}
	if records[1].Question != "What does z-index do?" || records[1].Resolved || len(records[1].Answers) != 0 {
		t.Fatalf("unexpected second record %+v", records[1])
	}
}

func TestReadCSVRejectsEmptyFile(t *testing.T) {
	if _, err := readCSV(writeFile(t, "empty.csv", "")); err == nil {
		t.Fatal("expected an error for an empty csv")
	}
}

func TestParseQuestionSheet(t *testing.T) {
	text := "Physics: Why is the sky\nblue?\nAnswer: Rayleigh scattering\n\nChemistry: What is a mole?\nA: 6.022e23 particles\n"
	records := parseQuestionSheet(text)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(records), records)
	}
	if records[0].Subject != "Physics" || records[0].Question != "Why is the sky blue?" {
		t.Fatalf("unexpected first record %+v", records[0])
	}
	if len(records[0].Answers) != 1 || records[0].Answers[0] != "Rayleigh scattering" {
		t.Fatalf("unexpected answers %+v", records[0].Answers)
	}
	if len(records[1].Answers) != 1 || records[1].Answers[0] != "6.022e23 particles" {
		t.Fatalf("unexpected answers %+v", records[1].Answers)
	}
}

func TestExtractTextFromPDFRejectsGarbage(t *testing.T) {
	if _, err := extractTextFromPDF([]byte("not a pdf")); err == nil {
		t.Fatal("expected an error for invalid pdf data")
	}
}

func TestReadRecordsUnsupportedFormat(t *testing.T) {
	if _, err := readRecords(writeFile(t, "doubts.txt", "x"), ""); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestRunImportsIntoProfile(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	mem := store.NewMemory()
	original := openStoreFunc
	openStoreFunc = func(config.DatabaseConfig) (store.Store, error) { return mem, nil }
	t.Cleanup(func() { openStoreFunc = original })

	var out bytes.Buffer
	path := writeFile(t, "doubts.csv", sampleCSV)
	if err := run(context.Background(), []string{"--profile", "p1", path}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Imported 2 doubts") || !strings.Contains(out.String(), "(1 skipped)") {
		t.Fatalf("unexpected summary %q", out.String())
	}

	repo := doubts.Open(context.Background(), store.Scope(mem, "p1"))
	list := repo.All()
	if len(list) != 4 {
		t.Fatalf("expected samples plus 2 imported doubts, got %d", len(list))
	}
	if list[0].Subject != "Math" || list[1].Subject != "CSS" {
		t.Fatalf("expected file order preserved newest-first, got %q then %q", list[0].Subject, list[1].Subject)
	}
	if !list[0].IsResolved || len(list[0].Answers) != 2 {
		t.Fatalf("unexpected imported doubt %+v", list[0])
	}
}

func TestRunDryRunDoesNotOpenStore(t *testing.T) {
	original := openStoreFunc
	openStoreFunc = func(config.DatabaseConfig) (store.Store, error) {
		t.Fatal("dry run must not open the store")
		return nil, nil
	}
	t.Cleanup(func() { openStoreFunc = original })

	var out bytes.Buffer
	if err := run(context.Background(), []string{"--dry-run", writeFile(t, "doubts.csv", sampleCSV)}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Count(out.String(), "\n") != 3 {
		t.Fatalf("expected one line per record, got %q", out.String())
	}
}

func TestRunRequiresProfileAndFile(t *testing.T) {
	if err := run(context.Background(), nil, &bytes.Buffer{}); err == nil {
		t.Fatal("expected an error without an input file")
	}
	path := writeFile(t, "doubts.csv", sampleCSV)
	if err := run(context.Background(), []string{path}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected an error without a profile")
	}
}
