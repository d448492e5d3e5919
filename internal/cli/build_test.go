package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilterJobsEmptyOnlyReturnsAll(t *testing.T) {
	t.Parallel()

	jobs := []job{{Name: "a"}, {Name: "b"}}
	got := filterJobs(jobs, nil)
	if len(got) != 2 {
		t.Fatalf("filterJobs(nil) = %d jobs, want 2", len(got))
	}
}

func TestFilterJobsSelectsNamed(t *testing.T) {
	t.Parallel()

	jobs := []job{{Name: "albedo"}, {Name: "normal"}, {Name: "mask"}}
	got := filterJobs(jobs, []string{"normal", " mask "})
	if len(got) != 2 {
		t.Fatalf("filterJobs = %d jobs, want 2", len(got))
	}
	if got[0].Name != "normal" || got[1].Name != "mask" {
		t.Errorf("filterJobs selected %+v, want normal,mask", got)
	}
}

func TestResolveRelativePath(t *testing.T) {
	t.Parallel()

	if got := resolveRelativePath("/base", "sub/file.png"); got != filepath.Join("/base", "sub/file.png") {
		t.Errorf("resolveRelativePath = %q", got)
	}
	abs := filepath.Join(string(filepath.Separator), "already", "absolute.png")
	if got := resolveRelativePath("/base", abs); got != abs {
		t.Errorf("resolveRelativePath should leave absolute paths untouched, got %q", got)
	}
	if got := resolveRelativePath("/base", ""); got != "" {
		t.Errorf("resolveRelativePath(empty) = %q, want empty", got)
	}
}

func TestResolveConfigPathExplicitFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := filepath.Join(dir, "jobs.yaml")
	if err := os.WriteFile(cfg, []byte("jobs: []\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := resolveConfigPath(cfg)
	if err != nil {
		t.Fatalf("resolveConfigPath: %v", err)
	}
	if got != cfg {
		t.Errorf("resolveConfigPath = %q, want %q", got, cfg)
	}
}

func TestResolveConfigPathDirectoryUsesDefaultName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := filepath.Join(dir, defaultConfigName)
	if err := os.WriteFile(cfg, []byte("jobs: []\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := resolveConfigPath(dir)
	if err != nil {
		t.Fatalf("resolveConfigPath: %v", err)
	}
	if got != cfg {
		t.Errorf("resolveConfigPath = %q, want %q", got, cfg)
	}
}

func TestResolveConfigPathMissingReturnsError(t *testing.T) {
	t.Parallel()

	if _, err := resolveConfigPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for a missing config path")
	}
}

func TestCmdBuildExecuteRunsSelectedJob(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeSolidPNG(t, in, 4, 4)

	cfg := filepath.Join(dir, ".ktxbake.yaml")
	yamlDoc := `
jobs:
  - name: albedo
    command: rgba-u8
    rgba_u8:
      args:
        input: in.png
        output: albedo.ktx2
      bake:
        color_space: linear
        alpha_mode: straight
        filter_u: triangle
        filter_v: triangle
        address_u: clamp
        address_v: clamp
        zlib: smallest
`
	if err := os.WriteFile(cfg, []byte(yamlDoc), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := &CmdBuild{}
	cmd.Args.Path = cfg
	if err := cmd.Execute(nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "albedo.ktx2")); err != nil {
		t.Fatalf("expected output written by build job: %v", err)
	}
}

func TestCmdBuildExecuteNoJobsSelected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := filepath.Join(dir, ".ktxbake.yaml")
	yamlDoc := "jobs:\n  - name: albedo\n    command: rgba-u8\n"
	if err := os.WriteFile(cfg, []byte(yamlDoc), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cmd := &CmdBuild{Only: []string{"does-not-exist"}}
	cmd.Args.Path = cfg
	if err := cmd.Execute(nil); err == nil {
		t.Fatal("expected error when --project selects nothing")
	}
}
