package capabilities

import (
	"testing"

	"stash/internal/testsupport"
)

func TestBuildWithoutSummarizer(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Groq.APIKey = ""

	container, err := Build(cfg, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer container.Close()

	if container.SummarizerAvailable() {
		t.Fatal("summarizer reported available without credential")
	}
	if container.SummarizerAbsence == "" {
		t.Fatal("missing absence reason")
	}
	if container.Store == nil || container.Fetcher == nil || container.Auth == nil || container.Pipeline == nil || container.Metrics == nil {
		t.Fatal("required capability missing")
	}
}

func TestBuildWithSummarizer(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithGroqKey("gsk_test"))

	container, err := Build(cfg, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer container.Close()

	if !container.SummarizerAvailable() {
		t.Fatal("summarizer not resolved despite credential")
	}
	if container.SummarizerAbsence != "" {
		t.Fatalf("unexpected absence reason %q", container.SummarizerAbsence)
	}
}
