// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package draft

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-writer/pkg/types"
)

// DefaultOutline returns the standard research paper structure. Each
// section carries a descriptive instruction documenting its intent.
func DefaultOutline() types.Outline {
	return types.Outline{Sections: []types.Section{
		{Name: "Introduction", Description: "Provide an overview and background information on the topic."},
		{Name: "Literature Review", Description: "Summarize existing research, key studies, and findings."},
		{Name: "Methodology", Description: "Detail the methods, techniques, and tools used in the research."},
		{Name: "Results", Description: "Describe the data, findings, and analysis."},
		{Name: "Discussion", Description: "Interpret the results, discuss implications, and compare with existing literature."},
		{Name: "Conclusion", Description: "Summarize the research, discuss limitations, and suggest future directions."},
	}}
}

// LoadOutline reads a YAML outline file. Section order in the file is
// the document's output order.
func LoadOutline(path string) (types.Outline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Outline{}, fmt.Errorf("reading outline: %w", err)
	}

	var outline types.Outline
	if err := yaml.Unmarshal(data, &outline); err != nil {
		return types.Outline{}, fmt.Errorf("parsing outline: %w", err)
	}
	if len(outline.Sections) == 0 {
		return types.Outline{}, fmt.Errorf("outline %s contains no sections", path)
	}
	for i, sec := range outline.Sections {
		if sec.Name == "" {
			return types.Outline{}, fmt.Errorf("outline section %d has no name", i+1)
		}
	}
	return outline, nil
}
