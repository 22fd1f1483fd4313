// Package locale holds the fixed display tables used when rendering a résumé:
// section titles, connecting phrases, month abbreviations and the footer date
// layout. Tables are embedded YAML parsed once at package init and never
// mutated afterwards, so a *Locale can be shared across goroutines.
package locale

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultTag = "pt-BR"

//go:embed locales/*.yaml
var files embed.FS

type Sections struct {
	Objective  string `yaml:"objective"`
	Education  string `yaml:"education"`
	Skills     string `yaml:"skills"`
	Courses    string `yaml:"courses"`
	Experience string `yaml:"experience"`
	Languages  string `yaml:"languages"`
}

type Phrases struct {
	UntilNow         string `yaml:"until_now"`
	RangeJoiner      string `yaml:"range_joiner"`
	Start            string `yaml:"start"`
	End              string `yaml:"end"`
	Responsibilities string `yaml:"responsibilities"`
	GeneratedOn      string `yaml:"generated_on"`
	License          string `yaml:"license"`
	HasLicense       string `yaml:"has_license"`
}

type Locale struct {
	Tag            string     `yaml:"tag"`
	Months         [12]string `yaml:"months"`
	DateLayout     string     `yaml:"date_layout"`
	FilenamePrefix string     `yaml:"filename_prefix"`
	Sections       Sections   `yaml:"sections"`
	Phrases        Phrases    `yaml:"phrases"`
	InProgress     []string   `yaml:"in_progress"`
	Current        []string   `yaml:"current"`
}

var registry map[string]*Locale

func init() {
	r, err := load()
	if err != nil {
		panic(err)
	}
	registry = r
}

func load() (map[string]*Locale, error) {
	entries, err := files.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	out := make(map[string]*Locale, len(entries))
	for _, e := range entries {
		b, err := files.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, err
		}
		var l Locale
		if err := yaml.Unmarshal(b, &l); err != nil {
			return nil, fmt.Errorf("locale %s: %w", e.Name(), err)
		}
		if l.Tag == "" {
			return nil, fmt.Errorf("locale %s: missing tag", e.Name())
		}
		out[strings.ToLower(l.Tag)] = &l
	}
	return out, nil
}

// Lookup returns the locale for tag. Matching is case-insensitive and falls
// back from a region tag to its base language ("en-US" -> "en").
func Lookup(tag string) (*Locale, error) {
	t := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(tag, "_", "-")))
	if t == "" {
		return Default(), nil
	}
	if l, ok := registry[t]; ok {
		return l, nil
	}
	if i := strings.IndexByte(t, '-'); i > 0 {
		if l, ok := registry[t[:i]]; ok {
			return l, nil
		}
	}
	// base language only: the first regional tag in sorted order wins
	for _, tag := range Tags() {
		k := strings.ToLower(tag)
		if strings.HasPrefix(k, t+"-") {
			return registry[k], nil
		}
	}
	return nil, fmt.Errorf("unknown locale %q", tag)
}

func Default() *Locale {
	return registry[strings.ToLower(DefaultTag)]
}

// Tags lists the available locale tags, sorted.
func Tags() []string {
	out := make([]string, 0, len(registry))
	for _, l := range registry {
		out = append(out, l.Tag)
	}
	sort.Strings(out)
	return out
}

// IsInProgress reports whether an education status means the course has not
// finished yet.
func (l *Locale) IsInProgress(status string) bool {
	return matchAny(status, l.InProgress)
}

// IsCurrent reports whether a work status marks an ongoing job.
func (l *Locale) IsCurrent(status string) bool {
	return matchAny(status, l.Current)
}

func matchAny(s string, words []string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, w := range words {
		if strings.EqualFold(s, w) {
			return true
		}
	}
	return false
}
