package output

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestNewJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewJSONFormatter() returned nil")
	}
	if f.Name() != "json" {
		t.Errorf("Name() = %q, want %q", f.Name(), "json")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	summary, ok := decoded["summary"].(map[string]interface{})
	if !ok {
		t.Fatal("Missing summary object")
	}
	if summary["total_messages"].(float64) != 3 {
		t.Errorf("total_messages = %v, want 3", summary["total_messages"])
	}
	if summary["busiest_date"] != "2024.03.01" {
		t.Errorf("busiest_date = %v, want 2024.03.01", summary["busiest_date"])
	}

	dates, ok := decoded["dates"].([]interface{})
	if !ok || len(dates) != 2 {
		t.Errorf("dates = %v, want 2 entries", decoded["dates"])
	}

	if _, ok := decoded["messages"]; ok {
		t.Error("messages included without Messages option")
	}

	meta, ok := decoded["metadata"].(map[string]interface{})
	if !ok {
		t.Fatal("Missing metadata object")
	}
	sources := meta["sources"].([]interface{})
	if len(sources) != 1 {
		t.Fatalf("sources = %v, want 1 entry", sources)
	}
	if sources[0].(map[string]interface{})["format"] != "txt" {
		t.Errorf("source format = %v, want txt", sources[0])
	}
}

func TestJSONFormatter_Format_Messages(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Messages: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded struct {
		Messages []struct {
			Sender  string `json:"sender"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(decoded.Messages) != 3 {
		t.Fatalf("len(messages) = %d, want 3", len(decoded.Messages))
	}
	if decoded.Messages[1].Content != "hi\nthere" {
		t.Errorf("messages[1].content = %q, want %q", decoded.Messages[1].Content, "hi\nthere")
	}
}

func TestJSONFormatter_Format_Quiet(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if _, ok := decoded["total_messages"]; !ok {
		t.Error("Quiet output should be the bare summary")
	}
	if _, ok := decoded["metadata"]; ok {
		t.Error("Quiet output should not include metadata")
	}
}

func TestJSONFormatter_Format_DoesNotMutateReport(t *testing.T) {
	report := createTestReport()
	f := NewJSONFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if len(report.Messages) != 3 {
		t.Errorf("report.Messages changed to %d entries", len(report.Messages))
	}
}
