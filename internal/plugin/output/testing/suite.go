// Package testing provides shared test utilities for output plugins.
package testing

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/oltre/internal/config"
	"github.com/jmylchreest/oltre/internal/plugin/output"
	"github.com/jmylchreest/oltre/internal/tokens"
)

// CreateTestSet builds the default token set, optionally adjusted by mutate.
func CreateTestSet(t *testing.T, mutate func(*config.Config)) *tokens.Set {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	set, err := tokens.Build(cfg)
	if err != nil {
		t.Fatalf("tokens.Build() error = %v", err)
	}
	return set
}

// TestBasicInterface tests the basic plugin interface methods that all plugins must implement.
func TestBasicInterface(t *testing.T, p output.Plugin, expectedName string) {
	t.Run("Name", func(t *testing.T) {
		if p.Name() != expectedName {
			t.Errorf("Name() = %s, want %s", p.Name(), expectedName)
		}
	})

	t.Run("Description", func(t *testing.T) {
		if p.Description() == "" {
			t.Error("Description() should not be empty")
		}
	})

	t.Run("DefaultOutputDir", func(t *testing.T) {
		if p.DefaultOutputDir() == "" {
			t.Error("DefaultOutputDir() should not be empty")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})
}

// TestGeneration tests the Generate method with light-only and dark-mode sets.
func TestGeneration(t *testing.T, p output.Plugin, expectedFiles []string) {
	check := func(t *testing.T, set *tokens.Set) map[string][]byte {
		t.Helper()
		files, err := p.Generate(set)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(files) != len(expectedFiles) {
			t.Fatalf("Generate() returned %d files, want %d", len(files), len(expectedFiles))
		}
		for _, expectedFile := range expectedFiles {
			content, ok := files[expectedFile]
			if !ok {
				t.Errorf("Generate() did not return %s", expectedFile)
				continue
			}
			if len(content) == 0 {
				t.Errorf("Generate() returned empty %s", expectedFile)
			}
		}
		return files
	}

	t.Run("Generate", func(t *testing.T) {
		check(t, CreateTestSet(t, nil))
	})

	t.Run("GenerateNilSet", func(t *testing.T) {
		if _, err := p.Generate(nil); err == nil {
			t.Error("Generate() with nil token set should return error")
		}
	})

	t.Run("GenerateWithoutDarkMode", func(t *testing.T) {
		check(t, CreateTestSet(t, func(c *config.Config) { c.DarkMode = false }))
	})

	t.Run("GenerateFromBaseColour", func(t *testing.T) {
		check(t, CreateTestSet(t, func(c *config.Config) {
			c.BaseColour = "#0d9488"
			c.Harmony = "split-complementary"
			c.Typography = "minimalist"
		}))
	})
}

// TestFlags tests plugin-specific flag registration.
func TestFlags(t *testing.T, p output.Plugin, expectedFlagPrefix string) {
	t.Run("RegisterFlags", func(t *testing.T) {
		cmd := &cobra.Command{Use: "test"}
		p.RegisterFlags(cmd)

		expectedFlag := expectedFlagPrefix + ".output-dir"
		if cmd.Flags().Lookup(expectedFlag) == nil {
			t.Errorf("RegisterFlags() did not register %s flag", expectedFlag)
		}
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if !strings.HasPrefix(f.Name, expectedFlagPrefix+".") {
				t.Errorf("flag %s is not namespaced under %s.", f.Name, expectedFlagPrefix)
			}
		})
	})
}
