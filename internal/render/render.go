// Package render turns decoded payloads into the formats shown to people:
// an interactive HTML quiz and a Markdown lesson plan.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/content"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("render").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/*.html"))

// QuizHTML renders a quiz as a self-contained HTML fragment. Questions are
// numbered from 1; each option is a radio button in group q{n}, and the
// answer and explanation stay hidden until "Show Answer" is pressed.
// Model-supplied text is escaped.
func QuizHTML(q *content.Quiz) (template.HTML, error) {
	if q == nil {
		return "", fmt.Errorf("render quiz: nil quiz")
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "quiz", q); err != nil {
		return "", fmt.Errorf("render quiz: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// LessonHTML renders a lesson plan as an HTML fragment with the same
// headings as LessonMarkdown.
func LessonHTML(p *content.LessonPlan) (template.HTML, error) {
	if p == nil {
		return "", fmt.Errorf("render lesson plan: nil plan")
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "lesson", p); err != nil {
		return "", fmt.Errorf("render lesson plan: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// LessonMarkdown renders a lesson plan as Markdown. The activities heading
// appears only for sections that list activities.
func LessonMarkdown(p *content.LessonPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# 📚 Lesson Plan: %s\n", p.Topic)
	fmt.Fprintf(&b, "**Duration:** %s\n\n", p.Duration)
	if p.Level != "" {
		fmt.Fprintf(&b, "**Level:** %s\n\n", p.Level)
	}

	b.WriteString("## 🎯 Learning Objectives:\n")
	writeList(&b, p.Objectives)

	b.WriteString("\n## 📖 Lesson Structure:\n")
	for _, s := range p.Sections {
		fmt.Fprintf(&b, "\n### %s (%s)\n", s.Title, s.Duration)
		fmt.Fprintf(&b, "%s\n", s.Content)
		if len(s.Activities) > 0 {
			b.WriteString("\n#### 🔹 Activities:\n")
			writeList(&b, s.Activities)
		}
		if len(s.Materials) > 0 {
			b.WriteString("\n#### 🧰 Materials:\n")
			writeList(&b, s.Materials)
		}
	}

	fmt.Fprintf(&b, "\n## 📝 Assessment:\n%s\n", p.Assessment.String())

	if len(p.Resources) > 0 {
		b.WriteString("\n## 🔗 Resources:\n")
		writeList(&b, p.Resources)
	}
	return b.String()
}

func writeList(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
