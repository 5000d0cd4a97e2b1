package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ledongthuc/pdf"
	"github.com/spf13/pflag"

	"doubtsolver/internal/config"
	"doubtsolver/internal/db"
	"doubtsolver/internal/doubts"
	applog "doubtsolver/internal/log"
	"doubtsolver/internal/store"
)

var (
	cleanWhitespace = regexp.MustCompile(`\s+`)
	answerPrefix    = regexp.MustCompile(`(?i)^(a|answer)\s*:\s*`)
)

// openStoreFunc opens the profile store the doubts are written to.
var openStoreFunc = func(cfg config.DatabaseConfig) (store.Store, error) {
	database, err := db.Configure(cfg)
	if err != nil {
		return nil, err
	}
	return store.NewDB(database), nil
}

type importRecord struct {
	Subject  string
	Question string
	Answers  []string
	Resolved bool
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var (
		profile string
		format  string
		dryRun  bool
	)
	flagSet := pflag.NewFlagSet("import_doubts", pflag.ContinueOnError)
	flagSet.StringVarP(&profile, "profile", "p", "", "browser profile id receiving the doubts")
	flagSet.StringVarP(&format, "format", "f", "", "input format: csv or pdf (default: from file extension)")
	flagSet.BoolVar(&dryRun, "dry-run", false, "parse the file and print the doubts without writing them")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if flagSet.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file, got %d", flagSet.NArg())
	}
	path := flagSet.Arg(0)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("locate input: %w", err)
	}

	records, err := readRecords(path, format)
	if err != nil {
		return err
	}

	if dryRun {
		for _, record := range records {
			fmt.Fprintf(stdout, "%s: %s (%d answers, resolved=%t)\n", record.Subject, record.Question, len(record.Answers), record.Resolved)
		}
		return nil
	}

	if strings.TrimSpace(profile) == "" {
		return fmt.Errorf("--profile must not be empty")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("set log level: %w", err)
	}

	s, err := openStoreFunc(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	imported, skipped := importRecords(ctx, store.Scope(s, profile), records)
	fmt.Fprintf(stdout, "Imported %d doubts from %s into profile %s (%d skipped)\n", imported, filepath.Base(path), profile, skipped)
	return nil
}

// importRecords appends records so that the first one in the file ends up newest.
func importRecords(ctx context.Context, s store.Store, records []importRecord) (imported, skipped int) {
	repo := doubts.Open(ctx, s)
	for i := len(records) - 1; i >= 0; i-- {
		record := records[i]
		doubt, err := repo.Add(ctx, record.Subject, record.Question)
		if err != nil {
			applog.Warn(ctx, "skipping record", "index", i+1, "error", err)
			skipped++
			continue
		}
		for _, answer := range record.Answers {
			if err := repo.AddAnswer(ctx, doubt.ID, answer); err != nil {
				applog.Warn(ctx, "failed to attach answer", "id", doubt.ID, "error", err)
			}
		}
		if record.Resolved {
			if err := repo.Resolve(ctx, doubt.ID); err != nil {
				applog.Warn(ctx, "failed to resolve doubt", "id", doubt.ID, "error", err)
			}
		}
		imported++
	}
	return imported, skipped
}

func readRecords(path, format string) ([]importRecord, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch strings.ToLower(format) {
	case "csv":
		rows, err := readCSV(path)
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		return buildRecords(rows), nil
	case "pdf":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read pdf: %w", err)
		}
		text, err := extractTextFromPDF(data)
		if err != nil {
			return nil, fmt.Errorf("extract pdf text: %w", err)
		}
		return parseQuestionSheet(text), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func readCSV(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) {
				continue
			}
			record[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}

	return records, nil
}

// buildRecords maps CSV rows with subject, question, answers and resolved
// columns. Answers are separated by a pipe.
func buildRecords(rows []map[string]string) []importRecord {
	records := make([]importRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, importRecord{
			Subject:  row["subject"],
			Question: normalizeText(row["question"]),
			Answers:  splitAnswers(row["answers"]),
			Resolved: parseResolved(row["resolved"]),
		})
	}
	return records
}

func splitAnswers(value string) []string {
	parts := strings.Split(value, "|")
	answers := make([]string, 0, len(parts))
	for _, part := range parts {
		if clean := normalizeText(part); clean != "" {
			answers = append(answers, clean)
		}
	}
	return answers
}

func parseResolved(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "yes" || value == "y" {
		return true
	}
	parsed, err := strconv.ParseBool(value)
	return err == nil && parsed
}

func normalizeText(value string) string {
	return strings.TrimSpace(cleanWhitespace.ReplaceAllString(value, " "))
}

func extractTextFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// parseQuestionSheet reads "Subject: question" lines. "Answer:" lines attach
// to the preceding question and other lines continue it.
func parseQuestionSheet(text string) []importRecord {
	var records []importRecord
	for _, raw := range strings.Split(text, "\n") {
		line := normalizeText(raw)
		if line == "" {
			continue
		}
		if loc := answerPrefix.FindStringIndex(line); loc != nil {
			if len(records) > 0 {
				last := &records[len(records)-1]
				if answer := strings.TrimSpace(line[loc[1]:]); answer != "" {
					last.Answers = append(last.Answers, answer)
				}
			}
			continue
		}
		if subject, question, ok := strings.Cut(line, ":"); ok && strings.TrimSpace(subject) != "" {
			records = append(records, importRecord{
				Subject:  strings.TrimSpace(subject),
				Question: strings.TrimSpace(question),
			})
			continue
		}
		if len(records) > 0 {
			last := &records[len(records)-1]
			last.Question = strings.TrimSpace(last.Question + " " + line)
		}
	}
	return records
}
