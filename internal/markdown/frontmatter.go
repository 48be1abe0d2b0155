package markdown

import (
	"bytes"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-welcome/pkg/interfaces"
)

// ParseFrontMatter splits an optional front matter block from the Markdown
// body. The block is only removed when it decodes to a non-empty mapping;
// otherwise the source comes back untouched with an empty FrontMatter, so a
// page opening with a "---" thematic break keeps all of its content.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte) {
	var raw map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(source), &raw)
	if err != nil || len(raw) == 0 {
		return interfaces.FrontMatter{}, source
	}

	var meta frontMatterEnvelope
	if _, err := frontmatter.Parse(bytes.NewReader(source), &meta); err != nil {
		return interfaces.FrontMatter{}, source
	}

	return envelopeToFrontMatter(meta), body
}

type frontMatterEnvelope struct {
	Title   string         `yaml:"title" toml:"title" json:"title"`
	Summary string         `yaml:"summary" toml:"summary" json:"summary"`
	Tags    []string       `yaml:"tags" toml:"tags" json:"tags"`
	Author  string         `yaml:"author" toml:"author" json:"author"`
	Custom  map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	return interfaces.FrontMatter{
		Title:   env.Title,
		Summary: env.Summary,
		Tags:    append([]string(nil), env.Tags...),
		Author:  env.Author,
		Custom:  cloneMap(env.Custom),
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
