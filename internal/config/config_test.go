package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathFunctions(t *testing.T) {
	root := "/test/repo"

	tests := []struct {
		name string
		fn   func(string) string
		want string
	}{
		{"HspacePath", HspacePath, "/test/repo/.hspace"},
		{"ConfigPath", ConfigPath, "/test/repo/.hspace/config.json"},
		{"HeuristicsPath", HeuristicsPath, "/test/repo/.hspace/heuristics.jsonl"},
		{"CachePath", CachePath, "/test/repo/.hspace/cache"},
		{"DBPath", DBPath, "/test/repo/.hspace/cache/heuristics.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(root)
			if got != tt.want {
				t.Errorf("%s(%q) = %q, want %q", tt.name, root, got, tt.want)
			}
		})
	}
}

func TestIsRepository(t *testing.T) {
	tmpDir := t.TempDir()

	if IsRepository(tmpDir) {
		t.Error("IsRepository() = true for non-repo directory")
	}

	if err := os.Mkdir(filepath.Join(tmpDir, HspaceDir), 0755); err != nil {
		t.Fatalf("Failed to create .hspace: %v", err)
	}

	if !IsRepository(tmpDir) {
		t.Error("IsRepository() = false for repo directory")
	}
}

func TestIsRepository_FileNotDir(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, HspaceDir), []byte("not a dir"), 0644); err != nil {
		t.Fatalf("Failed to create .hspace file: %v", err)
	}

	if IsRepository(tmpDir) {
		t.Error("IsRepository() = true when .hspace is a file")
	}
}

func TestFindRepository(t *testing.T) {
	tmpDir := t.TempDir()
	repoDir := filepath.Join(tmpDir, "repo")
	nestedDir := filepath.Join(repoDir, "results", "2011")

	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatalf("Failed to create nested dirs: %v", err)
	}
	if err := os.Mkdir(filepath.Join(repoDir, HspaceDir), 0755); err != nil {
		t.Fatalf("Failed to create .hspace: %v", err)
	}

	found, err := FindRepository(nestedDir)
	if err != nil {
		t.Fatalf("FindRepository() error = %v", err)
	}
	if found != repoDir {
		t.Errorf("FindRepository() = %q, want %q", found, repoDir)
	}
}

func TestFindRepository_NotFound(t *testing.T) {
	if _, err := FindRepository(t.TempDir()); err == nil {
		t.Error("FindRepository() should return error when no repo found")
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, HspaceDir), 0755); err != nil {
		t.Fatalf("Failed to create .hspace: %v", err)
	}

	cfg := NewConfig()
	cfg.ScriptURL = "/static/cytoscape.min.js"
	if err := cfg.Save(tmpDir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Load() = %+v, want %+v", loaded, cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, HspaceDir), 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Error("Load() should return error when config not found")
	}

	if err := os.WriteFile(ConfigPath(tmpDir), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmpDir); err == nil {
		t.Error("Load() should return error for invalid JSON")
	}
}

func TestConfig_GetSet(t *testing.T) {
	cfg := NewConfig()

	if err := cfg.Set("mixmod_file", "tables/mixmod.dat"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := cfg.Get("mixmod_file")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "tables/mixmod.dat" {
		t.Errorf("Get(mixmod_file) = %q", got)
	}

	if err := cfg.Set("clustering_file", ""); err == nil {
		t.Error("Set(clustering_file, \"\") should fail")
	}
	if err := cfg.Set("pdf_root", "x"); err == nil {
		t.Error("Set() of unknown key should fail")
	}
	if _, err := cfg.Get("pdf_root"); err == nil {
		t.Error("Get() of unknown key should fail")
	}
}

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		path string
		want string
	}{
		{"", ""},
		{"rvcluster.gexf", "/repo/rvcluster.gexf"},
		{"/data/rvcluster.gexf", "/data/rvcluster.gexf"},
		{"~/rvcluster.gexf", filepath.Join(home, "rvcluster.gexf")},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ResolvePath("/repo", tt.path); got != tt.want {
				t.Errorf("ResolvePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}

	cfg := NewConfig()
	if got := cfg.ClusteringPath("/repo"); got != "/repo/rvcluster.gexf" {
		t.Errorf("ClusteringPath() = %q", got)
	}
	cfg.MixmodFile = ""
	if got := cfg.MixmodPath("/repo"); got != "" {
		t.Errorf("MixmodPath() = %q, want empty", got)
	}
}
