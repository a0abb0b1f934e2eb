package batch

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	ReportOff  = "off"
	ReportTXT  = "txt"
	ReportJSON = "json"
)

type reportItem struct {
	Script     string `json:"script"`
	Output     string `json:"output,omitempty"`
	Status     string `json:"status"`
	Attempts   int    `json:"attempts,omitempty"`
	Segments   int    `json:"segments,omitempty"`
	Edited     string `json:"edited_duration,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	OutputSize int64  `json:"output_size,omitempty"`
	Error      string `json:"error,omitempty"`
	Permanent  bool   `json:"permanent,omitempty"`
	SkipReason string `json:"skip_reason,omitempty"`
}

type reportPayload struct {
	StartedAt string       `json:"started_at"`
	EndedAt   string       `json:"ended_at"`
	Duration  string       `json:"duration"`
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Skipped   int          `json:"skipped"`
	Failed    int          `json:"failed"`
	Edited    string       `json:"edited_total"`
	Items     []reportItem `json:"items"`
}

// NormalizeReportFormat rapor formatını normalize eder.
func NormalizeReportFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", ReportOff:
		return ReportOff
	case ReportTXT, "text":
		return ReportTXT
	case ReportJSON:
		return ReportJSON
	default:
		return ""
	}
}

// RenderReport batch sonucu için rapor metni üretir.
func RenderReport(format string, summary Summary, results []JobResult, startedAt, endedAt time.Time) (string, error) {
	switch NormalizeReportFormat(format) {
	case ReportOff:
		return "", nil
	case ReportTXT:
		return renderTXTReport(summary, results, startedAt, endedAt), nil
	case ReportJSON:
		return renderJSONReport(summary, results, startedAt, endedAt)
	default:
		return "", fmt.Errorf("gecersiz report formati: %s", format)
	}
}

func statusOf(r JobResult) string {
	switch {
	case r.Success:
		return "success"
	case r.Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

func outputOf(r JobResult) string {
	if r.Outcome.OutputPath != "" {
		return r.Outcome.OutputPath
	}
	return r.Job.OutputPath
}

func renderTXTReport(summary Summary, results []JobResult, startedAt, endedAt time.Time) string {
	var b strings.Builder
	b.WriteString("Batch Report\n")
	b.WriteString(strings.Repeat("=", 40))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Started:   %s\n", startedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Ended:     %s\n", endedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Duration:  %s\n", summary.Duration)
	fmt.Fprintf(&b, "Total:     %d\n", summary.Total)
	fmt.Fprintf(&b, "Succeeded: %d\n", summary.Succeeded)
	fmt.Fprintf(&b, "Skipped:   %d\n", summary.Skipped)
	fmt.Fprintf(&b, "Failed:    %d\n", summary.Failed)
	fmt.Fprintf(&b, "Edited:    %s\n", summary.EditedTotal)
	b.WriteString("\nItems:\n")

	for _, r := range results {
		fmt.Fprintf(&b, "- [%s] %s", statusOf(r), r.Job.ScriptPath)
		if out := outputOf(r); out != "" {
			fmt.Fprintf(&b, " -> %s", out)
		}
		if r.Attempts > 0 {
			fmt.Fprintf(&b, " (attempts=%d)", r.Attempts)
		}
		if r.Success {
			fmt.Fprintf(&b, " (segments=%d, edited=%s)", r.Outcome.Kept, r.Outcome.Duration)
		}
		if r.Skipped && r.SkipReason != "" {
			fmt.Fprintf(&b, " (reason=%s)", r.SkipReason)
		}
		if r.Error != nil {
			fmt.Fprintf(&b, " (error=%s)", r.Error.Error())
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderJSONReport(summary Summary, results []JobResult, startedAt, endedAt time.Time) (string, error) {
	items := make([]reportItem, 0, len(results))
	for _, r := range results {
		item := reportItem{
			Script:     r.Job.ScriptPath,
			Output:     outputOf(r),
			Status:     statusOf(r),
			Attempts:   r.Attempts,
			DurationMS: r.Duration.Milliseconds(),
			OutputSize: r.OutputSize,
		}
		switch {
		case r.Success:
			item.Segments = r.Outcome.Kept
			item.Edited = r.Outcome.Duration.String()
		case r.Skipped:
			item.SkipReason = r.SkipReason
		case r.Error != nil:
			item.Error = r.Error.Error()
			item.Permanent = IsPermanent(r.Error)
		}
		items = append(items, item)
	}

	payload := reportPayload{
		StartedAt: startedAt.Format(time.RFC3339),
		EndedAt:   endedAt.Format(time.RFC3339),
		Duration:  summary.Duration.String(),
		Total:     summary.Total,
		Succeeded: summary.Succeeded,
		Skipped:   summary.Skipped,
		Failed:    summary.Failed,
		Edited:    summary.EditedTotal.String(),
		Items:     items,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
