package model

// Go models for the normalized résumé. Decoded request bodies are turned into
// these by NewResumeFromMap so the renderers only ever see one shape per
// section.

type Education struct {
	Course string `json:"curso,omitempty"`
	School string `json:"escola,omitempty"`
	Status string `json:"status,omitempty"`
	Start  string `json:"inicio,omitempty"`
	End    string `json:"fim,omitempty"`
}

func (e Education) empty() bool {
	return e.Course == "" && e.School == "" && e.Status == "" && e.Start == "" && e.End == ""
}

type Work struct {
	Company          string   `json:"empresa,omitempty"`
	Role             string   `json:"cargo,omitempty"`
	Status           string   `json:"status,omitempty"`
	Start            string   `json:"inicio,omitempty"`
	End              string   `json:"fim,omitempty"`
	Current          bool     `json:"trabalhoAtual,omitempty"`
	Responsibilities []string `json:"atribuicoes,omitempty"`
}

func (w Work) empty() bool {
	return w.Company == "" && w.Role == "" && w.Status == "" && w.Start == "" && w.End == "" &&
		!w.Current && len(w.Responsibilities) == 0
}

type Language struct {
	Name  string `json:"idioma,omitempty"`
	Level string `json:"nivel,omitempty"`
}

// Item is one entry of the skills or courses lists. Text is set for bare
// strings and for records carrying a description or category; Course is set
// for structured course records instead.
type Item struct {
	Text   string     `json:"descricao,omitempty"`
	Course *Education `json:"curso,omitempty"`
}

type Resume struct {
	Name       string      `json:"nome"`
	Phone      string      `json:"telefone"`
	Email      string      `json:"email"`
	City       string      `json:"cidade,omitempty"`
	License    string      `json:"cnh,omitempty"`
	HasLicense bool        `json:"possuiCnh,omitempty"`
	Objective  string      `json:"objetivo"`
	Education  []Education `json:"formacoes,omitempty"`
	Experience []Work      `json:"experiencias,omitempty"`
	Languages  []Language  `json:"idiomas,omitempty"`
	Skills     []Item      `json:"conhecimentos,omitempty"`
	Courses    []Item      `json:"cursos,omitempty"`
}
