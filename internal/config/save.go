package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SaveTools updates the tools section of the config file, preserving
// comments and formatting in every other section by editing the yaml.Node
// tree instead of re-marshaling the whole config.
func SaveTools(configPath string, tools ToolsConfig) error {
	data, err := os.ReadFile(configPath) //nolint:gosec // G304: path comes from the user
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	toolsNode := buildToolsNode(tools)

	if doc.Kind == 0 {
		// Empty or missing file, start a fresh document.
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: "tools"},
						toolsNode,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			found := false
			for i := 0; i < len(root.Content)-1; i += 2 {
				if root.Content[i].Value == "tools" {
					root.Content[i+1] = toolsNode
					found = true
					break
				}
			}
			if !found {
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: "tools"},
					toolsNode,
				)
			}
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	// Write atomically: temp file in the same directory, then rename.
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".pinceau.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// buildToolsNode creates a yaml.Node for the tools mapping. The brush
// character is always double-quoted: bare '#' would read back as a
// comment and a bare space would vanish.
func buildToolsNode(tools ToolsConfig) *yaml.Node {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "char"},
			{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: tools.Char},
			{Kind: yaml.ScalarNode, Value: "color"},
			{Kind: yaml.ScalarNode, Value: tools.Color},
			{Kind: yaml.ScalarNode, Value: "size"},
			{Kind: yaml.ScalarNode, Value: strconv.Itoa(tools.Size)},
			{Kind: yaml.ScalarNode, Value: "filled"},
			{Kind: yaml.ScalarNode, Value: strconv.FormatBool(tools.Filled)},
		},
	}
}
