package flow

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// DescriptionHTML renders a step's markdown description for embedding hosts.
func DescriptionHTML(s StepDescriptor) (string, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(s.Description), &buf); err != nil {
		return "", fmt.Errorf("render step %s description: %w", s.ID, err)
	}
	return buf.String(), nil
}
