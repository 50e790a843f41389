package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpuguy83/nativeplan"
)

func TestLoadProperties(t *testing.T) {
	file := filepath.Join(t.TempDir(), "props.env")
	if err := os.WriteFile(file, []byte("imageName=from-file\nother=kept\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	props, err := loadProperties(file, []string{"imageName=from-flag"})
	if err != nil {
		t.Fatal(err)
	}

	// --set overrides the properties file for the same key.
	if props["imageName"] != "from-flag" {
		t.Errorf("expected flag to win, got %q", props["imageName"])
	}
	if props["other"] != "kept" {
		t.Errorf("expected file value kept, got %q", props["other"])
	}
}

func TestLoadPropertiesInvalidSet(t *testing.T) {
	if _, err := loadProperties("", []string{"novalue"}); err == nil {
		t.Error("expected error for malformed property")
	}
	if _, err := loadProperties("", []string{"=v"}); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestPlanRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")

	plan := nativeplan.BuildPlan{
		Layers:     []nativeplan.Layer{{Name: "extra files"}},
		Entrypoint: []string{"/app/app"},
	}
	if err := writePlan(plan, path); err != nil {
		t.Fatal(err)
	}

	got, err := readPlan(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Layers) != 1 || got.Layers[0].Name != "extra files" {
		t.Errorf("unexpected layers: %v", got.Layers)
	}
	if got.Entrypoint[0] != "/app/app" {
		t.Errorf("unexpected entrypoint: %v", got.Entrypoint)
	}
}
