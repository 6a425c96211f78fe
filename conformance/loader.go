package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadedTest pairs a test case with the file it came from
type LoadedTest struct {
	File  string
	Suite string
	Test  TestCase
}

// LoadAllTests reads every scenario file under the testdata directory
func LoadAllTests() ([]LoadedTest, error) {
	return LoadDir("testdata")
}

// LoadDir reads every .yaml scenario file under a directory tree
func LoadDir(dir string) ([]LoadedTest, error) {
	var loaded []LoadedTest

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}

		file, err := loadTestFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		relPath, _ := filepath.Rel(dir, path)
		for _, test := range file.Tests {
			loaded = append(loaded, LoadedTest{
				File:  relPath,
				Suite: file.Suite,
				Test:  test,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return loaded, nil
}

// loadTestFile parses one YAML scenario file
func loadTestFile(path string) (*TestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file TestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if file.Suite == "" {
		return nil, fmt.Errorf("missing suite name")
	}
	for i, test := range file.Tests {
		if test.Name == "" {
			return nil, fmt.Errorf("test %d: missing name", i)
		}
		set := 0
		for _, src := range []string{test.Expression, test.Template, test.Program} {
			if src != "" {
				set++
			}
		}
		if set != 1 {
			return nil, fmt.Errorf("test %q: exactly one of expression, template, program required", test.Name)
		}
	}

	return &file, nil
}
