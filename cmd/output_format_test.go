package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseOutputMode(t *testing.T) {
	cases := []struct {
		in      string
		want    outputMode
		wantErr bool
	}{
		{"", outputText, false},
		{"TEXT", outputText, false},
		{" json ", outputJSON, false},
		{"yaml", "", true},
	}
	for _, c := range cases {
		got, err := parseOutputMode(c.in)
		if (err != nil) != c.wantErr || got != c.want {
			t.Fatalf("parseOutputMode(%q) = %q, %v", c.in, got, err)
		}
	}
}

func TestIsJSONOutput(t *testing.T) {
	prev := outputFormat
	t.Cleanup(func() { outputFormat = prev })

	outputFormat = "json"
	if !isJSONOutput() {
		t.Fatalf("expected json output")
	}
	outputFormat = "yaml"
	if isJSONOutput() {
		t.Fatalf("invalid format must not enable json")
	}
}

func TestWriteJSONKeepsArrows(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, map[string]string{"edit": "delete virtual 0:10 -> 0:20"}); err != nil {
		t.Fatalf("writeJSON failed: %v", err)
	}
	if !strings.Contains(buf.String(), "0:10 -> 0:20") {
		t.Fatalf("html escaping must be off: %s", buf.String())
	}
}
