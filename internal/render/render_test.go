package render

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"resume-pdf/internal/layout"
	"resume-pdf/internal/layout/layouttest"
	"resume-pdf/internal/locale"
	"resume-pdf/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var genDate = time.Date(2026, 10, 17, 15, 4, 0, 0, time.UTC)

func ana() model.Resume {
	return model.Resume{
		Name:      "Ana Souza",
		Phone:     "11999999999",
		Email:     "ana@x.com",
		Objective: "Busco vaga",
		Education: []model.Education{{Course: "ADS", School: "X", Status: "Cursando", Start: "2022-01"}},
	}
}

func TestRenderExampleDocument(t *testing.T) {
	rec := layouttest.NewRecorder()
	res := New(locale.Default()).Render(rec, ana(), genDate)

	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, 1, rec.Pages)

	name := rec.Find("Ana Souza")
	require.Len(t, name, 1)
	assert.Equal(t, layout.Font{Style: layout.Bold, Size: 18}, name[0].Font)
	assert.InDelta(t, (210-rec.MeasureString(name[0].Font, "Ana Souza"))/2, name[0].X, 1e-9)

	assert.Len(t, rec.Find("11999999999 | ana@x.com"), 1)
	assert.Empty(t, rec.Find("ana@x.com |"), "no dangling separator")
	require.Len(t, rec.Lines, 1)

	assert.Len(t, rec.Find("ADS | X | Cursando | jan/2022 até o momento"), 1)
	assert.Len(t, rec.Find(ArrowGlyph), 1)

	assert.Empty(t, rec.Find("Experiência Profissional"))
	assert.Empty(t, rec.Find("Idiomas"))
	assert.Empty(t, rec.Find("Conhecimentos"))

	footer := rec.Find("Gerado em 17/10/2026")
	require.Len(t, footer, 1)
	assert.Equal(t, 297-10.0, footer[0].Y)
	assert.Equal(t, 8.0, footer[0].Font.Size)
}

func TestRenderWrapsLongName(t *testing.T) {
	r := ana()
	r.Name = "Maria Aparecida dos Santos Albuquerque de Oliveira Cavalcanti Ferreira Lima"
	rec := layouttest.NewRecorder()
	New(nil).Render(rec, r, genDate)

	nameFont := layout.Font{Style: layout.Bold, Size: DefaultTheme.NameSize}
	var parts []string
	for _, op := range rec.Texts {
		if op.Font != nameFont {
			continue
		}
		parts = append(parts, op.Text)
		w := rec.MeasureString(op.Font, op.Text)
		assert.GreaterOrEqual(t, op.X, DefaultTheme.Margin, op.Text)
		assert.LessOrEqual(t, op.X+w, 210-DefaultTheme.Margin, op.Text)
		assert.InDelta(t, (210-w)/2, op.X, 1e-9)
	}
	require.Greater(t, len(parts), 1)
	assert.Equal(t, r.Name, strings.Join(parts, " "))
}

func TestRenderSectionOrder(t *testing.T) {
	r := ana()
	r.City = "Campinas"
	r.License = "B"
	r.Skills = []model.Item{{Text: "Go"}}
	r.Courses = []model.Item{{Text: "Scrum"}, {Course: &model.Education{Course: "K8s", School: "LF", Start: "2023-01", End: "2023-03"}}}
	r.Experience = []model.Work{{Company: "Acme", Role: "Dev", Start: "2020-02", Current: true, Responsibilities: []string{"Codar"}}}
	r.Languages = []model.Language{{Name: "Inglês", Level: "Avançado"}, {Name: "Espanhol"}}

	rec := layouttest.NewRecorder()
	New(nil).Render(rec, r, genDate)

	s := locale.Default().Sections
	want := []string{s.Objective, s.Education, s.Skills, s.Courses, s.Experience, s.Languages}
	var got []string
	for _, op := range rec.Texts {
		if op.Font.Style == layout.Bold && op.Font.Size == 12 {
			got = append(got, op.Text)
		}
	}
	assert.Equal(t, want, got)

	assert.Len(t, rec.Find("11999999999 | ana@x.com | Campinas | CNH: B"), 1)
	assert.Len(t, rec.Find("K8s | LF | jan/2023 a mar/2023"), 1)
	assert.Len(t, rec.Find("Dev | fev/2020 até o momento"), 1)
	assert.Len(t, rec.Find("Inglês | Avançado"), 1)

	esp := rec.Find("Espanhol")
	require.Len(t, esp, 1)
	assert.Equal(t, "Espanhol", esp[0].Text)

	company := rec.Find("Acme")
	require.Len(t, company, 1)
	assert.Equal(t, layout.BoldItalic, company[0].Font.Style)

	label := rec.Find("Atribuições:")
	require.Len(t, label, 1)
	assert.Equal(t, layout.Bold, label[0].Font.Style)

	codar := rec.Find("Codar")
	require.Len(t, codar, 1)
	assert.Equal(t, 20+2*DefaultTheme.Indent, codar[0].X)
}

func TestRenderPaginatesAndFooterOnce(t *testing.T) {
	r := ana()
	var resp []string
	for i := 0; i < 80; i++ {
		resp = append(resp, fmt.Sprintf("Responsabilidade número %d com algum texto descritivo", i))
	}
	r.Experience = []model.Work{
		{Company: "Acme", Role: "Dev", Start: "2019-01", End: "2020-01", Responsibilities: resp[:40]},
		{Company: "Beta", Role: "Lead", Start: "2020-02", Status: "Atual", Responsibilities: resp[40:]},
	}

	rec := layouttest.NewRecorder()
	res := New(locale.Default()).Render(rec, r, genDate)

	require.Greater(t, res.Pages, 1)
	assert.Equal(t, rec.Pages, res.Pages)

	footer := rec.Find("Gerado em")
	require.Len(t, footer, 1)
	assert.Equal(t, res.Pages, footer[0].Page)

	limit := 297 - DefaultTheme.Margin - DefaultTheme.Reserve
	for _, op := range rec.Texts {
		if op.Text == footer[0].Text {
			continue
		}
		assert.LessOrEqual(t, op.Y, limit, op.Text)
		assert.GreaterOrEqual(t, op.Y, DefaultTheme.Margin, op.Text)
	}

	// every responsibility drawn exactly once, in order, across pages
	prevPage, prevY := 0, 0.0
	for _, s := range resp {
		ops := rec.Find(s)
		require.Len(t, ops, 1, s)
		op := ops[0]
		if op.Page == prevPage {
			assert.Greater(t, op.Y, prevY)
		} else {
			assert.Greater(t, op.Page, prevPage)
		}
		prevPage, prevY = op.Page, op.Y
	}

	// the page break restores the body font before the next line is set
	assert.Len(t, rec.Find("Lead | fev/2020 até o momento"), 1)
}

func TestRenderObjectiveParagraphs(t *testing.T) {
	r := ana()
	r.Objective = "Primeiro parágrafo\n\nSegundo"
	rec := layouttest.NewRecorder()
	New(nil).Render(rec, r, genDate)

	var idx int
	for i, s := range rec.Strings() {
		if s == "Primeiro parágrafo" {
			idx = i
		}
	}
	require.NotZero(t, idx)
	strs := rec.Strings()
	assert.Equal(t, "", strs[idx+1])
	assert.Equal(t, "Segundo", strs[idx+2])
}

func TestRenderEnglish(t *testing.T) {
	en, err := locale.Lookup("en")
	require.NoError(t, err)
	r := ana()
	r.Education[0].Status = "In Progress"
	r.HasLicense = true

	rec := layouttest.NewRecorder()
	New(en).Render(rec, r, genDate)

	assert.Len(t, rec.Find("Objective"), 1)
	assert.Len(t, rec.Find("ADS | X | In Progress | jan/2022 until now"), 1)
	assert.Len(t, rec.Find("ana@x.com | Driver's license"), 1)
	assert.Len(t, rec.Find("Generated on 10/17/2026"), 1)
}

func TestPeriod(t *testing.T) {
	f := NewFormatter(locale.Default())
	cases := []struct {
		start, end string
		ongoing    bool
		want       string
	}{
		{"2022-01", "", true, "jan/2022 até o momento"},
		{"2022-01", "2023-06-30", true, "jan/2022 até o momento"},
		{"2022-01", "2023-06-30", false, "jan/2022 a jun/2023"},
		{"15/03/2021", "", false, "Início: mar/2021"},
		{"", "2024-12", false, "Término: dez/2024"},
		{"", "2024-12", true, "Término: dez/2024"},
		{"", "", true, ""},
		{"verão 2020", "", false, "Início: verão 2020"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, f.Period(tc.start, tc.end, tc.ongoing), "%+v", tc)
	}
}

func TestFormatterLines(t *testing.T) {
	f := NewFormatter(nil)
	assert.Equal(t, "a | b", Join("a", " ", "", "b"))
	assert.Equal(t, "", Join())

	assert.Equal(t, "11 | a@b.c", f.Contact(model.Resume{Phone: "11", Email: "a@b.c"}))
	assert.Equal(t, "11 | a@b.c | Possui CNH", f.Contact(model.Resume{Phone: "11", Email: "a@b.c", HasLicense: true}))

	assert.Equal(t, "Inglês", f.Language(model.Language{Name: "Inglês"}))
	assert.Equal(t, "Scrum", f.Course(model.Item{Text: "Scrum"}))

	w := model.Work{Role: "Dev", Start: "2020-02", End: "2021-01", Status: "atual"}
	assert.True(t, f.IsCurrent(w))
	assert.Equal(t, "Dev | fev/2020 até o momento", f.Role(w))
	w.Status = ""
	assert.Equal(t, "Dev | fev/2020 a jan/2021", f.Role(w))
}
