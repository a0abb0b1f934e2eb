package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mlihgenel/videoedit-cli/internal/timeline"
)

func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })
	return &buf
}

func TestPrintDebugRespectsVerbose(t *testing.T) {
	buf := captureOut(t)
	t.Cleanup(func() { SetVerbose(false) })

	SetVerbose(false)
	PrintDebug("gizli %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("debug output must be hidden: %q", buf.String())
	}

	SetVerbose(true)
	PrintDebug("gorunur %d", 2)
	if !strings.Contains(buf.String(), "gorunur 2") {
		t.Fatalf("expected debug output, got %q", buf.String())
	}
}

func TestSegmentRows(t *testing.T) {
	list, err := timeline.NewSegmentList(60 * time.Second).Delete(10*time.Second, 20*time.Second)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	rows := SegmentRows(list)
	if len(rows) != 2 {
		t.Fatalf("unexpected rows: %v", rows)
	}
	want := []string{"2", "00:00:10", "00:00:20", "00:01:00", "00:00:40"}
	for i := range want {
		if rows[1][i] != want[i] {
			t.Fatalf("unexpected second row: %v", rows[1])
		}
	}
}

func TestPrintTableAlignsUnicode(t *testing.T) {
	buf := captureOut(t)
	PrintTable([]string{"Süre", "x"}, [][]string{{"1", "uzun-hucre"}})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("unexpected table:\n%s", buf.String())
	}
	top := len([]rune(lines[0]))
	bottom := len([]rune(lines[4]))
	row := len([]rune(lines[3]))
	if top != bottom || top != row {
		t.Fatalf("misaligned table:\n%s", buf.String())
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.50s"},
		{90 * time.Second, "1m 30s"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.in); got != c.want {
			t.Fatalf("FormatDuration(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestProgressBarCompletes(t *testing.T) {
	buf := captureOut(t)
	pb := NewProgressBar(4, "Parca")
	pb.Update(2)
	pb.Update(4)
	if !strings.Contains(buf.String(), "(4/4)") || !strings.HasSuffix(buf.String(), "\n") {
		t.Fatalf("unexpected progress output: %q", buf.String())
	}
}
