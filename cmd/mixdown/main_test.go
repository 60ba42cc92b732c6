package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mixdown/mixin"
)

func TestRunCLIHelp(t *testing.T) {
	if err := runCLI([]string{"mixdown", "help"}); err != nil {
		t.Fatalf("runCLI help failed: %v", err)
	}
}

func TestRunCLIInvalidCommand(t *testing.T) {
	err := runCLI([]string{"mixdown", "unknown"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCLIWithoutCommand(t *testing.T) {
	err := runCLI([]string{"mixdown"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandCheckOnly(t *testing.T) {
	planPath := writePlanFile(t, `
[mixin.defaults]
[mixin.defaults.props]
label = "base"
`)

	if err := runCommand([]string{"-check", planPath}); err != nil {
		t.Fatalf("runCommand check failed: %v", err)
	}
}

func TestRunCommandCheckRejectsBrokenPlan(t *testing.T) {
	planPath := writePlanFile(t, "[mixin.broken")
	err := runCommand([]string{"-check", planPath})
	if err == nil || !strings.Contains(err.Error(), "plan load failed") {
		t.Fatalf("expected plan error, got %v", err)
	}
}

func TestRunCommandComposesAndPrintsTable(t *testing.T) {
	planPath := writePlanFile(t, `
[mixin.defaults]
order = 1
[mixin.defaults.props]
label = "base"
retries = 3

[mixin.labels]
order = 2
[mixin.labels.props]
label = "audited"
`)

	out, err := captureStdout(t, func() error {
		return runCommand([]string{planPath})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}

	want := "label = audited\nretries = 3\n"
	if out != want {
		t.Fatalf("unexpected stdout: %q", out)
	}
}

func TestRunCommandSeedsTargetFromArgs(t *testing.T) {
	planPath := writePlanFile(t, `
[mixin.defaults]
[mixin.defaults.props]
label = "base"
`)

	out, err := captureStdout(t, func() error {
		return runCommand([]string{planPath, "owner=sam", "retries=3"})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}

	if !strings.Contains(out, "owner = sam") || !strings.Contains(out, "retries = 3") {
		t.Fatalf("seed properties missing from output: %q", out)
	}
	if !strings.Contains(out, "label = base") {
		t.Fatalf("plan properties missing from output: %q", out)
	}
}

func TestRunCommandQuotaFlagStopsComposition(t *testing.T) {
	planPath := writePlanFile(t, `
[mixin.first]
order = 1
[mixin.first.props]
a = 1

[mixin.second]
order = 2
[mixin.second.props]
b = 2
`)

	out, err := captureStdout(t, func() error {
		return runCommand([]string{"-quota", "1", planPath})
	})
	if err == nil {
		t.Fatalf("expected quota error")
	}
	if !mixin.IsQuotaExceeded(err) {
		t.Fatalf("expected quota failure, got %v", err)
	}
	if out != "" {
		t.Fatalf("partial table printed despite quota failure: %q", out)
	}
}

func TestRunCommandRejectsBadSeedArg(t *testing.T) {
	planPath := writePlanFile(t, "[mixin.empty]")
	err := runCommand([]string{planPath, "no-equals-sign"})
	if err == nil || !strings.Contains(err.Error(), "expected key=value") {
		t.Fatalf("expected seed argument error, got %v", err)
	}
}

func TestRunCommandRequiresPlanPath(t *testing.T) {
	err := runCommand(nil)
	if err == nil {
		t.Fatalf("expected plan path error")
	}
	if !strings.Contains(err.Error(), "plan path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseLiteral(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"42", "42"},
		{"1.5", "1.5"},
		{"true", "true"},
		{`"quoted"`, "quoted"},
		{"bare-word", "bare-word"},
		{`[1, 2]`, "[1, 2]"},
		{`{"a": 1}`, "{a: 1}"},
	}

	for _, tc := range cases {
		if got := parseLiteral(tc.raw).String(); got != tc.want {
			t.Fatalf("parseLiteral(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestParseLiteralKeepsJSONPrefixedWordsAsStrings(t *testing.T) {
	// Inputs that start like a JSON literal but carry trailing characters
	// must stay whole strings, not truncate to 1.5, true, or 42.
	for _, raw := range []string{"1.5.2", "truex", "42abc"} {
		got := parseLiteral(raw)
		if got.Kind() != mixin.KindString || got.String() != raw {
			t.Fatalf("parseLiteral(%q) = %s %q, want the whole string", raw, got.Kind(), got.String())
		}
	}
}

func writePlanFile(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.toml")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write plan: %v", err)
	}
	return path
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()
	_ = w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	if _, copyErr := io.Copy(&buf, r); copyErr != nil {
		t.Fatalf("read stdout: %v", copyErr)
	}
	_ = r.Close()
	return buf.String(), runErr
}
