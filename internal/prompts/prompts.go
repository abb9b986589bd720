// Package prompts holds the fixed LLM prompt templates, embedded at
// compile time.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed prompts.json
var promptFile []byte

var (
	loadOnce sync.Once
	loaded   map[string]string
)

// Get retrieves a prompt template by key.
func Get(key string) (string, error) {
	loadOnce.Do(func() {
		if err := json.Unmarshal(promptFile, &loaded); err != nil {
			panic(fmt.Sprintf("failed to parse embedded prompts: %v", err))
		}
	})

	prompt, exists := loaded[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return prompt, nil
}

// MustGet retrieves a prompt template, panicking if the key is unknown.
// Use for prompts that are required at initialization time.
func MustGet(key string) string {
	prompt, err := Get(key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces placeholders in the form {{.Key}} with values from data.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{.%s}}", key), value)
	}
	return result
}
