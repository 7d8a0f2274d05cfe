package template

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
)

//go:embed assets/default_markdown.tmpl.gz
var defaultMarkdownGz []byte

//go:embed assets/default_xml.tmpl.gz
var defaultXMLGz []byte

const (
	// NameDefaultMarkdown names the default Markdown template (§4.G
	// "Two built-in templates ... are embedded as resources").
	NameDefaultMarkdown = "default-markdown"
	// NameDefaultXML names the default XML template.
	NameDefaultXML = "default-xml"
)

var (
	defaultSourcesOnce sync.Once
	defaultSources     map[string]string
	defaultSourcesErr  error
)

func loadDefaultSources() (map[string]string, error) {
	defaultSourcesOnce.Do(func() {
		markdown, err := gunzip(defaultMarkdownGz)
		if err != nil {
			defaultSourcesErr = fmt.Errorf("decompressing default markdown template: %w", err)
			return
		}
		xml, err := gunzip(defaultXMLGz)
		if err != nil {
			defaultSourcesErr = fmt.Errorf("decompressing default xml template: %w", err)
			return
		}
		defaultSources = map[string]string{
			NameDefaultMarkdown: markdown,
			NameDefaultXML:      xml,
		}
	})
	return defaultSources, defaultSourcesErr
}

func gunzip(compressed []byte) (string, error) {
	reader, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return "", err
	}
	defer reader.Close()
	out, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// RegisterDefaults registers the two embedded default templates (Markdown
// and XML) under NameDefaultMarkdown and NameDefaultXML.
func (r *Registry) RegisterDefaults() error {
	sources, err := loadDefaultSources()
	if err != nil {
		return err
	}
	for name, source := range sources {
		if err := r.Setup(source, name); err != nil {
			return err
		}
	}
	return nil
}
