package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/cpuguy83/nativeplan"
)

// readPlan loads a build plan from a JSON file.
func readPlan(path string) (nativeplan.BuildPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nativeplan.BuildPlan{}, fmt.Errorf("reading plan: %w", err)
	}

	var plan nativeplan.BuildPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nativeplan.BuildPlan{}, fmt.Errorf("parsing plan %s: %w", path, err)
	}
	return plan, nil
}

// writePlan writes a build plan as indented JSON to path, or to stdout
// when path is "-".
func writePlan(plan nativeplan.BuildPlan, path string) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling plan: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	return nil
}

// loadProperties merges properties from an optional dotenv-format file
// and repeated key=value flags. Flag values override file values.
func loadProperties(file string, sets []string) (map[string]string, error) {
	props := make(map[string]string)

	if file != "" {
		fromFile, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("reading properties file: %w", err)
		}
		for k, v := range fromFile {
			props[k] = v
		}
	}

	for _, kv := range sets {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid property %q, expected key=value", kv)
		}
		props[k] = v
	}

	return props, nil
}
