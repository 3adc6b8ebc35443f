package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"docquiz-service/internal/domain"
)

// Format selects the serialization of an exported snapshot.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat normalizes a format string, defaulting to JSON when empty.
func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format: %q", raw)
	}
}

// record is the wire shape of a JSON export. Answer keys are rendered as
// strings because JSON object keys cannot be integers.
type record struct {
	Questions domain.QuestionSet `json:"questions"`
	Answers   map[string]string  `json:"answers"`
	Timestamp string             `json:"timestamp"`
}

// Marshal serializes a snapshot to UTF-8 bytes in the requested format.
func Marshal(snap domain.Snapshot, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return marshalJSON(snap)
	case FormatCSV:
		return marshalCSV(snap)
	default:
		return nil, fmt.Errorf("unsupported export format: %q", format)
	}
}

// Filename derives an artifact name from the generation time so repeated
// exports of the same session never collide.
func Filename(prefix string, format Format, generatedAt time.Time) string {
	if prefix == "" {
		prefix = "quiz"
	}
	ext := "json"
	if format == FormatCSV {
		ext = "csv"
	}
	return fmt.Sprintf("%s-%s.%s", prefix, generatedAt.UTC().Format("20060102-150405"), ext)
}

func marshalJSON(snap domain.Snapshot) ([]byte, error) {
	answers := make(map[string]string, len(snap.Answers))
	for index, value := range snap.Answers {
		answers[strconv.Itoa(index)] = value
	}
	return json.MarshalIndent(record{
		Questions: snap.Questions,
		Answers:   answers,
		Timestamp: snap.GeneratedAt.UTC().Format(time.RFC3339),
	}, "", "  ")
}

func marshalCSV(snap domain.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"number", "type", "question", "options", "answer", "explanation"}); err != nil {
		return nil, err
	}
	for i, q := range snap.Questions {
		row := []string{
			strconv.Itoa(i + 1),
			string(q.Kind),
			q.Prompt,
			joinOptions(q.Options),
			snap.Answers[i],
			q.Explanation,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func joinOptions(options []string) string {
	var buf bytes.Buffer
	for i, opt := range options {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(opt)
	}
	return buf.String()
}
