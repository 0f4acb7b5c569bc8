package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTOCROP_CONFIG", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	def := Default()
	if *cfg != *def {
		t.Errorf("Load(\"\"): got %+v, want %+v", *cfg, *def)
	}
	if cfg.Output.Suffix != "_cropped" {
		t.Errorf("Suffix: got %s, want _cropped", cfg.Output.Suffix)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "autocrop.yaml", `
crop:
  padding: 4
  tolerance: 30
  background: "#FFFFFF"
output:
  suffix: _trim
  write_uncropped: true
log:
  mode: debug
  level: info
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Config{
		Crop:   CropConfig{Padding: 4, Tolerance: 30, Background: "#FFFFFF"},
		Output: OutputConfig{Suffix: "_trim", WriteUncropped: true},
		Log:    LogConfig{Mode: "debug", Level: "info"},
	}
	if *cfg != want {
		t.Errorf("got %+v, want %+v", *cfg, want)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "autocrop.yaml", "crop:\n  padding: 4\n  tolerance: 30\n")
	t.Setenv("AUTOCROP_CROP_PADDING", "9")
	t.Setenv("AUTOCROP_OUTPUT_WRITE_UNCROPPED", "true")
	t.Setenv("AUTOCROP_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Crop.Padding != 9 {
		t.Errorf("Padding: got %d, want 9 from env", cfg.Crop.Padding)
	}
	if cfg.Crop.Tolerance != 30 {
		t.Errorf("Tolerance: got %d, want 30 from file", cfg.Crop.Tolerance)
	}
	if !cfg.Output.WriteUncropped {
		t.Error("WriteUncropped should be true from env")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level: got %s, want debug", cfg.Log.Level)
	}
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	path := writeFile(t, t.TempDir(), "c.yaml", "output:\n  suffix: _env\n")
	t.Setenv("AUTOCROP_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.Suffix != "_env" {
		t.Errorf("Suffix: got %s, want _env", cfg.Output.Suffix)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		env  map[string]string
	}{
		{"missing file", filepath.Join(dir, "missing.yaml"), nil},
		{"malformed yaml", writeFile(t, dir, "bad.yaml", "crop: [padding\n"), nil},
		{"negative padding", "", map[string]string{"AUTOCROP_CROP_PADDING": "-1"}},
		{"negative tolerance", "", map[string]string{"AUTOCROP_CROP_TOLERANCE": "-5"}},
		{"bad background", "", map[string]string{"AUTOCROP_CROP_BACKGROUND": "#XYZ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUTOCROP_CONFIG", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(tt.path); err == nil {
				t.Error("Load should fail")
			}
		})
	}
}

func TestCropConfig_Options(t *testing.T) {
	opts, err := CropConfig{Padding: 2, Tolerance: 10}.Options()
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}
	if opts.Padding != 2 || opts.Tolerance != 10 || opts.Background != nil {
		t.Errorf("got %+v, want padding 2, tolerance 10, no background", opts)
	}

	opts, err = CropConfig{Background: "#102030"}.Options()
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}
	if opts.Background != (color.NRGBA{0x10, 0x20, 0x30, 0xFF}) {
		t.Errorf("Background: got %v, want #102030", opts.Background)
	}

	if _, err := (CropConfig{Background: "nope"}).Options(); err == nil {
		t.Error("Options should fail for an invalid background")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "AUTOCROP_TEST_DOTENV=from-file\nAUTOCROP_TEST_PRESET=from-file\n")

	t.Setenv("AUTOCROP_TEST_PRESET", "from-env")
	// Registers cleanup for a variable the file is about to set.
	t.Setenv("AUTOCROP_TEST_DOTENV", "")
	os.Unsetenv("AUTOCROP_TEST_DOTENV")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile failed: %v", err)
	}
	if got := os.Getenv("AUTOCROP_TEST_DOTENV"); got != "from-file" {
		t.Errorf("AUTOCROP_TEST_DOTENV: got %q, want from-file", got)
	}
	if got := os.Getenv("AUTOCROP_TEST_PRESET"); got != "from-env" {
		t.Errorf("existing variable overridden: got %q", got)
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}
