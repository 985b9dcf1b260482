package conf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	c, err := Read(strings.NewReader(""))
	if err != nil {
		t.Fatal("Failed to read empty configuration:", err)
	}
	if *c != *Default() {
		t.Error("Expected defaults, got", c)
	}
	if c.System != "hat" || c.ViewMin != -2 || c.ViewMax != 2 || c.MaxSteps != 0 || c.Workers != 1 {
		t.Error("Wrong defaults", c)
	}
}

func TestOverrides(t *testing.T) {
	c, err := Read(strings.NewReader(`
system: wholehat
view_max: 3
left_first: true
workers: 4
`))
	if err != nil {
		t.Fatal(err)
	}
	if c.System != "wholehat" || c.ViewMax != 3 || !c.LeftFirst || c.Workers != 4 {
		t.Error("Overrides not applied", c)
	}
	if c.ViewMin != DEFAULT_VIEW_MIN || c.MaxSteps != DEFAULT_MAX_STEPS {
		t.Error("Absent keys lost their defaults", c)
	}
}

func TestReadErrors(t *testing.T) {
	for _, bad := range []string{
		"system: arcstandard",
		"view_min: 1",
		"view_max: -1",
		"workers: 0",
		"max_steps: -5",
		"beam: 4",
		"system: [hat",
	} {
		if _, err := Read(strings.NewReader(bad)); err == nil {
			t.Error("Expected error reading", bad)
		}
	}
}

func TestReadFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "conf.yaml")
	if err := os.WriteFile(filename, []byte(Default().String()), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := ReadFile(filename)
	if err != nil {
		t.Fatal("Failed to read written configuration:", err)
	}
	if *c != *Default() {
		t.Error("Round trip through YAML changed the configuration", c)
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for a missing file")
	}
}
