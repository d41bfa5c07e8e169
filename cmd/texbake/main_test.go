package main

import (
	"bytes"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"texbake/internal/testsupport"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`state_dir = "` + filepath.Join(base, "state") + `"`,
		`log_dir = "` + filepath.Join(base, "logs") + `"`,
		"",
		"[processing]",
		"workers = 1",
		"",
		"[logging]",
		`format = "json"`,
		`level = "error"`,
	}, "\n") + "\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func runCLI(t *testing.T, args []string, configPath string, stdin io.Reader) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected output to contain %q, got:\n%s", substr, output)
	}
}

func writeWorkDir(t *testing.T, stem string) string {
	t.Helper()
	workDir := t.TempDir()
	names := []string{
		stem + "_1K_Color.png",
		stem + "_1K_AmbientOcclusion.png",
		stem + ".png",
	}
	entries := map[string][]byte{
		names[0]: testsupport.RGBPNGBytes(t, 4, 4, color.NRGBA{R: 0x90, G: 0x60, B: 0x30}),
		names[1]: testsupport.GrayPNGBytes(t, 4, 4, 0xee),
		names[2]: testsupport.RGBPNGBytes(t, 2, 2, color.NRGBA{R: 0x90, G: 0x60, B: 0x30}),
	}
	testsupport.WriteZip(t, filepath.Join(workDir, stem+"_1K-PNG.zip"), names, entries)
	return workDir
}

func TestProcessCommand(t *testing.T) {
	configPath := writeTestConfig(t)
	workDir := writeWorkDir(t, "Bricks090")

	out, _, err := runCLI(t, []string{"process", workDir, "--yes", "--no-history"}, configPath, nil)
	if err != nil {
		t.Fatalf("process: %v\n%s", err, out)
	}
	requireContains(t, out, "bricks090")
	requireContains(t, out, "completed")

	manifest := filepath.Join(workDir, "bricks090", "material.toml")
	if _, err := os.Stat(manifest); err != nil {
		t.Fatalf("expected manifest: %v", err)
	}
}

func TestProcessCommandConfirmation(t *testing.T) {
	configPath := writeTestConfig(t)
	workDir := writeWorkDir(t, "Wood051")

	// Declining leaves everything untouched.
	out, _, err := runCLI(t, []string{"process", workDir, "--no-history"}, configPath, strings.NewReader("n\n"))
	if err != nil {
		t.Fatalf("process: %v\n%s", err, out)
	}
	requireContains(t, out, "Aborted")
	if _, err := os.Stat(filepath.Join(workDir, "Wood051_1K-PNG.zip")); err != nil {
		t.Fatalf("expected archive to remain: %v", err)
	}

	// Accepting at the prompt processes the archive.
	out, _, err = runCLI(t, []string{"process", workDir, "--no-history"}, configPath, strings.NewReader("y\n"))
	if err != nil {
		t.Fatalf("process: %v\n%s", err, out)
	}
	requireContains(t, out, "wood051")
}

func TestProcessCommandEmptyDir(t *testing.T) {
	configPath := writeTestConfig(t)
	workDir := t.TempDir()

	out, _, err := runCLI(t, []string{"process", workDir, "--yes"}, configPath, nil)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	requireContains(t, out, "No archives found")
}

func TestProcessCommandReportsFailure(t *testing.T) {
	configPath := writeTestConfig(t)
	workDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(workDir, "Broken.zip"), []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, []string{"process", workDir, "--yes", "--no-history"}, configPath, nil)
	if err == nil {
		t.Fatalf("expected failure, got:\n%s", out)
	}
	requireContains(t, out, "failed")
}

func TestHistoryCommand(t *testing.T) {
	configPath := writeTestConfig(t)
	workDir := writeWorkDir(t, "Metal013")

	out, _, err := runCLI(t, []string{"history"}, configPath, nil)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No archives processed yet")

	if _, _, err := runCLI(t, []string{"process", workDir, "--yes"}, configPath, nil); err != nil {
		t.Fatalf("process: %v", err)
	}

	out, _, err = runCLI(t, []string{"history"}, configPath, nil)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "Metal013_1K-PNG.zip")
	requireContains(t, out, "completed")
	requireContains(t, out, "metal013")
}

func TestConfigCommands(t *testing.T) {
	configPath := writeTestConfig(t)

	out, _, err := runCLI(t, []string{"config", "validate", "--config", configPath}, "", nil)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", nil)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", nil); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"version"}, "", nil)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, "texbake ")
}

func TestDisplayTitle(t *testing.T) {
	cases := map[string]string{
		"/work/Bricks090_2K-PNG.zip": "Bricks090 2K PNG",
		"Ground037.zip":              "Ground037",
		"metal plates.zip":           "Metal Plates",
	}
	for input, want := range cases {
		if got := displayTitle(input); got != want {
			t.Errorf("displayTitle(%q) = %q, want %q", input, got, want)
		}
	}
}
