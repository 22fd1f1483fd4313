package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// NewResumeFromMap converts a decoded JSON document into a Resume. It accepts
// the shapes the frontend has sent over time (records or bare strings, lists
// or single values) and never fails: values of an unexpected type are coerced
// to their textual form.
func NewResumeFromMap(m map[string]interface{}) Resume {
	r := Resume{}
	if m == nil {
		return r
	}

	r.Name = text(m["nome"])
	r.Phone = text(m["telefone"])
	r.Email = text(m["email"])
	r.City = text(m["cidade"])
	r.Objective = textBlock(m["objetivo"])

	switch v := m["cnh"].(type) {
	case bool:
		r.HasLicense = v
	default:
		r.License = text(v)
	}

	for _, it := range listOf(m["formacoes"]) {
		if e := educationFrom(it); !e.empty() {
			r.Education = append(r.Education, e)
		}
	}
	for _, it := range listOf(m["experiencias"]) {
		if w := workFrom(it); !w.empty() {
			r.Experience = append(r.Experience, w)
		}
	}
	for _, it := range listOf(m["idiomas"]) {
		if l := languageFrom(it); l.Name != "" || l.Level != "" {
			r.Languages = append(r.Languages, l)
		}
	}
	for _, it := range listOf(m["conhecimentos"]) {
		if i, ok := itemFrom(it, false); ok {
			r.Skills = append(r.Skills, i)
		}
	}
	for _, key := range []string{"cursos", "cursosQualificacoes"} {
		for _, it := range listOf(m[key]) {
			if i, ok := itemFrom(it, true); ok {
				r.Courses = append(r.Courses, i)
			}
		}
	}

	return r
}

func educationFrom(v interface{}) Education {
	rec, ok := v.(map[string]interface{})
	if !ok {
		return Education{Course: text(v)}
	}
	return Education{
		Course: first(rec, "curso", "nome"),
		School: first(rec, "escola", "instituicao"),
		Status: first(rec, "status"),
		Start:  first(rec, "inicio"),
		End:    first(rec, "fim"),
	}
}

func workFrom(v interface{}) Work {
	rec, ok := v.(map[string]interface{})
	if !ok {
		return Work{Company: text(v)}
	}
	w := Work{
		Company: first(rec, "empresa"),
		Role:    first(rec, "cargo"),
		Status:  first(rec, "status"),
		Start:   first(rec, "inicio"),
		End:     first(rec, "fim"),
		Current: truthy(rec["trabalhoAtual"]),
	}
	switch t := rec["atribuicoes"].(type) {
	case nil:
	case string:
		for _, line := range strings.Split(t, "\n") {
			if s := strings.TrimSpace(line); s != "" {
				w.Responsibilities = append(w.Responsibilities, s)
			}
		}
	default:
		for _, it := range listOf(t) {
			if s := text(it); s != "" {
				w.Responsibilities = append(w.Responsibilities, s)
			}
		}
	}
	return w
}

func languageFrom(v interface{}) Language {
	rec, ok := v.(map[string]interface{})
	if !ok {
		return Language{Name: text(v)}
	}
	return Language{Name: first(rec, "idioma", "nome"), Level: first(rec, "nivel")}
}

func itemFrom(v interface{}, courses bool) (Item, bool) {
	rec, ok := v.(map[string]interface{})
	if !ok {
		s := text(v)
		return Item{Text: s}, s != ""
	}
	if s := first(rec, "descricao", "categoria"); s != "" {
		return Item{Text: s}, true
	}
	if courses {
		if _, has := rec["curso"]; has {
			c := Education{
				Course: first(rec, "curso"),
				School: first(rec, "instituicao", "escola"),
				Status: first(rec, "status"),
				Start:  first(rec, "inicio"),
				End:    first(rec, "fim"),
			}
			if c.empty() {
				return Item{}, false
			}
			return Item{Course: &c}, true
		}
	}
	s := text(rec)
	return Item{Text: s}, s != ""
}

// listOf treats nil as no entries and a single non-list value as a
// one-element list.
func listOf(v interface{}) []interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case []interface{}:
		return t
	case []string:
		out := make([]interface{}, 0, len(t))
		for _, s := range t {
			out = append(out, s)
		}
		return out
	default:
		return []interface{}{t}
	}
}

func first(rec map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s := text(rec[k]); s != "" {
			return s
		}
	}
	return ""
}

// text renders any decoded JSON value as a single trimmed line of text.
func text(v interface{}) string {
	return strings.TrimSpace(textBlock(v))
}

// textBlock is text without trimming inner content, so multi-paragraph
// fields keep their line breaks.
func textBlock(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if s := text(t[k]); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " | ")
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, it := range t {
			if s := text(it); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "sim", "yes", "1":
			return true
		}
	case float64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	}
	return false
}
