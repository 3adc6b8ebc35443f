package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"docquiz-service/internal/domain"
)

func TestMarshalJSON(t *testing.T) {
	snap := sampleSnapshot()
	data, err := Marshal(snap, FormatJSON)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Questions []map[string]any  `json:"questions"`
		Answers   map[string]string `json:"answers"`
		Timestamp string            `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(decoded.Questions))
	}
	if decoded.Answers["0"] != "1" || decoded.Answers["1"] != "true" {
		t.Fatalf("unexpected answers: %v", decoded.Answers)
	}
	if decoded.Timestamp != "2025-03-01T12:00:00Z" {
		t.Fatalf("expected ISO-8601 timestamp, got %q", decoded.Timestamp)
	}
}

func TestMarshalCSV(t *testing.T) {
	data, err := Marshal(sampleSnapshot(), FormatCSV)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "1,multiple_choice,") {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	if !strings.Contains(lines[2], "true") {
		t.Fatalf("expected recorded answer in second row: %q", lines[2])
	}
}

func TestFilenameCarriesGenerationSuffix(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if got := Filename("quiz", FormatJSON, at); got != "quiz-20250301-120000.json" {
		t.Fatalf("unexpected filename: %q", got)
	}
	if got := Filename("", FormatCSV, at); got != "quiz-20250301-120000.csv" {
		t.Fatalf("unexpected filename: %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatJSON {
		t.Fatalf("expected default json, got %v %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func sampleSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Questions: domain.QuestionSet{
			{Kind: domain.KindMultipleChoice, Prompt: "Pick one", Options: []string{"a", "b"}, Explanation: "because"},
			{Kind: domain.KindTrueFalse, Prompt: "True or False: water is wet"},
		},
		Answers:     domain.AnswerMap{0: "1", 1: "true"},
		GeneratedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}
