package download

import (
	"errors"
	"strings"
	"testing"

	"notofetch/internal/catalog"
)

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n")
}

func TestReporterThrottlesDownloads(t *testing.T) {
	var buf strings.Builder
	reporter := NewReporter(&buf)

	summary := Summary{Total: 200}
	item := catalog.Item{Codepoint: "1f600", Name: "grinning face", Tags: []string{":grin:"}}
	for i := 0; i < 120; i++ {
		summary.Downloaded++
		reporter.Observe(Outcome{Item: item, Status: StatusDownloaded, Size: 2048}, summary)
	}

	// First 5, then downloads 25, 50, 75, 100.
	if got := countLines(buf.String()); got != 9 {
		t.Fatalf("expected 9 download lines for 120 downloads, got %d:\n%s", got, buf.String())
	}
	if !strings.Contains(buf.String(), "[1/200]") || !strings.Contains(buf.String(), "[100/200]") {
		t.Fatalf("missing expected progress lines:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), ":grin:") {
		t.Fatalf("expected tag label in output:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "KiB") {
		t.Fatalf("expected humanized size in output:\n%s", buf.String())
	}
}

func TestReporterCapsFailureLines(t *testing.T) {
	var buf strings.Builder
	reporter := NewReporter(&buf)

	summary := Summary{Total: 50}
	for i := 0; i < 25; i++ {
		summary.Failed++
		outcome := Outcome{
			Item:       catalog.Item{Codepoint: "x", Name: "broken item"},
			Status:     StatusFailed,
			HTTPStatus: 404,
		}
		if i%2 == 1 {
			outcome = Outcome{
				Item:   catalog.Item{Codepoint: "x", Name: "broken item"},
				Status: StatusError,
				Err:    errors.New("timeout"),
			}
		}
		reporter.Observe(outcome, summary)
	}

	if got := countLines(buf.String()); got != 10 {
		t.Fatalf("expected failure lines capped at 10, got %d", got)
	}
	if !strings.Contains(buf.String(), "HTTP 404") {
		t.Fatalf("expected status in failure line:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "timeout") {
		t.Fatalf("expected transport fault in failure line:\n%s", buf.String())
	}
}

func TestReporterSilentOnSkips(t *testing.T) {
	var buf strings.Builder
	reporter := NewReporter(&buf)

	summary := Summary{Total: 10}
	for i := 0; i < 10; i++ {
		summary.Skipped++
		reporter.Observe(Outcome{Item: catalog.Item{Codepoint: "x"}, Status: StatusSkipped}, summary)
	}

	if buf.Len() != 0 {
		t.Fatalf("expected no output for skips, got:\n%s", buf.String())
	}
}

func TestOutcomeLabelFallsBackToName(t *testing.T) {
	with := Outcome{Item: catalog.Item{Name: "artist", Tags: []string{":artist:"}}}
	without := Outcome{Item: catalog.Item{Name: "artist"}}
	if with.Label() != ":artist:" {
		t.Fatalf("expected tag label, got %q", with.Label())
	}
	if without.Label() != "artist" {
		t.Fatalf("expected name label, got %q", without.Label())
	}
}
