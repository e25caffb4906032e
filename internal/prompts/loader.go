// Package prompts holds the externalized LLM prompt templates for the
// screening pipeline. Templates live in embedded JSON files, keyed by
// name, so prompt wording can be reviewed without reading Go code.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var templateFiles embed.FS

var (
	mu     sync.RWMutex
	loaded = make(map[string]map[string]string)
)

// Get returns the template stored under key in the given file
// (e.g. Get("extraction.json", "extract-profile")).
func Get(filename, key string) (string, error) {
	templates, err := load(filename)
	if err != nil {
		return "", err
	}
	template, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt %q not found in %s", key, filename)
	}
	return template, nil
}

// MustGet is Get for templates that are required at startup; a missing
// template is a packaging bug, so it panics.
func MustGet(filename, key string) string {
	template, err := Get(filename, key)
	if err != nil {
		panic(err)
	}
	return template
}

// Format substitutes {{.Key}} placeholders with the given values.
func Format(template string, data map[string]string) string {
	for key, value := range data {
		template = strings.ReplaceAll(template, fmt.Sprintf("{{.%s}}", key), value)
	}
	return template
}

func load(filename string) (map[string]string, error) {
	mu.RLock()
	templates, ok := loaded[filename]
	mu.RUnlock()
	if ok {
		return templates, nil
	}

	data, err := templateFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("parse prompt file %s: %w", filename, err)
	}

	mu.Lock()
	loaded[filename] = templates
	mu.Unlock()
	return templates, nil
}
