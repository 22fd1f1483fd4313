package preview

import (
	"strings"
	"testing"
	"time"

	"resume-pdf/internal/locale"
	"resume-pdf/internal/model"
	"resume-pdf/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

func TestBuildSectionOrderAndSkipping(t *testing.T) {
	r := model.Resume{
		Name:       "Ana Souza",
		Phone:      "11999999999",
		Email:      "ana@x.com",
		Objective:  "Busco vaga",
		Education:  []model.Education{{Course: "ADS", School: "X", Status: "Cursando", Start: "2022-01"}},
		Experience: []model.Work{{Company: "Acme", Role: "Dev", Start: "2020-02", Current: true, Responsibilities: []string{"Codar"}}},
	}
	v := Build(render.NewFormatter(nil), r, now)

	var titles []string
	for _, s := range v.Sections {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"Objetivo", "Formação Acadêmica", "Experiência Profissional"}, titles)
	assert.Equal(t, []string{"ADS | X | Cursando | jan/2022 até o momento"}, v.Sections[1].Entries)
	require.Len(t, v.Sections[2].Jobs, 1)
	assert.Equal(t, "Dev | fev/2020 até o momento", v.Sections[2].Jobs[0].Role)
	assert.Equal(t, "Atribuições:", v.Sections[2].Jobs[0].Label)
	assert.Equal(t, "Gerado em 17/10/2026", v.Footer)
}

func TestHTMLEscapesInput(t *testing.T) {
	r := model.Resume{Name: "<script>alert(1)</script>", Phone: "1", Email: "a@b", Objective: "x"}
	out, err := HTML(render.NewFormatter(nil), r, now)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>alert")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
}

func TestHTMLEnglish(t *testing.T) {
	en, err := locale.Lookup("en")
	require.NoError(t, err)
	r := model.Resume{
		Name: "Ana", Phone: "1", Email: "a@b", Objective: "x",
		Languages: []model.Language{{Name: "Inglês", Level: "Avançado"}},
		Skills:    []model.Item{{Text: "Go"}},
	}
	out, err := HTML(render.NewFormatter(en), r, now)
	require.NoError(t, err)
	assert.Contains(t, out, `lang="en"`)
	assert.Contains(t, out, "<h2>Skills</h2>")
	assert.Contains(t, out, "Inglês | Avançado")
	assert.Contains(t, out, "Generated on 10/17/2026")
	assert.NotContains(t, out, "Work Experience")
}
