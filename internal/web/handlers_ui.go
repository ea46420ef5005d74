package web

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/content"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/generator"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/render"
)

type quizForm struct {
	Topic        string
	NumQuestions int
}

type lessonForm struct {
	Topic    string
	Duration string
	Level    string
}

type pageData struct {
	Tab             string
	QuestionChoices []int
	Durations       []string
	Levels          []content.Level
	Quiz            quizForm
	Lesson          lessonForm

	Output template.HTML
	Raw    string
	Error  string
}

func newPageData(tab string) pageData {
	if tab != "lesson" {
		tab = "quiz"
	}
	return pageData{
		Tab:             tab,
		QuestionChoices: lo.RangeFrom(content.MinQuestions, content.MaxQuestionsUI),
		Durations:       Durations,
		Levels:          content.Levels,
		Quiz:            quizForm{NumQuestions: content.DefaultNumQuestions},
		Lesson:          lessonForm{Duration: defaultDuration, Level: string(content.DefaultLevel)},
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, newPageData(r.URL.Query().Get("tab")))
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	data := newPageData("quiz")
	if err := r.ParseForm(); err != nil {
		data.Error = "Could not read the form."
		s.renderPage(w, http.StatusBadRequest, data)
		return
	}

	data.Quiz.Topic = strings.TrimSpace(r.PostFormValue("topic"))
	n, err := strconv.Atoi(r.PostFormValue("num_questions"))
	if err != nil {
		data.Error = "Number of questions must be a whole number."
		s.renderPage(w, http.StatusBadRequest, data)
		return
	}
	data.Quiz.NumQuestions = n

	req := content.NewQuizRequest(data.Quiz.Topic, n)
	if err := req.Validate(content.MaxQuestionsUI); err != nil {
		data.Error = err.Error()
		s.renderPage(w, http.StatusBadRequest, data)
		return
	}

	status := s.fillOutput(&data, s.generate(r, req), func(payload []byte) (template.HTML, error) {
		quiz, err := content.DecodeQuiz(payload)
		if err != nil {
			return "", err
		}
		return render.QuizHTML(quiz)
	})
	s.renderPage(w, status, data)
}

func (s *Server) handleLesson(w http.ResponseWriter, r *http.Request) {
	data := newPageData("lesson")
	if err := r.ParseForm(); err != nil {
		data.Error = "Could not read the form."
		s.renderPage(w, http.StatusBadRequest, data)
		return
	}

	data.Lesson.Topic = strings.TrimSpace(r.PostFormValue("topic"))
	if d := r.PostFormValue("duration"); d != "" {
		data.Lesson.Duration = d
	}
	if l := r.PostFormValue("level"); l != "" {
		data.Lesson.Level = l
	}
	if !lo.Contains(Durations, data.Lesson.Duration) {
		data.Error = "Unknown duration " + strconv.Quote(data.Lesson.Duration) + "."
		s.renderPage(w, http.StatusBadRequest, data)
		return
	}

	req := content.NewLessonPlanRequest(data.Lesson.Topic, data.Lesson.Duration, content.Level(data.Lesson.Level))
	if err := req.Validate(content.MaxQuestionsUI); err != nil {
		data.Error = err.Error()
		s.renderPage(w, http.StatusBadRequest, data)
		return
	}

	status := s.fillOutput(&data, s.generate(r, req), func(payload []byte) (template.HTML, error) {
		plan, err := content.DecodeLessonPlan(payload)
		if err != nil {
			return "", err
		}
		return render.LessonHTML(plan)
	})
	s.renderPage(w, status, data)
}

// fillOutput places a result on the page and returns the response status.
// A payload the renderer cannot decode is shown raw, like a malformed reply.
func (s *Server) fillOutput(data *pageData, res generator.Result, renderFn func([]byte) (template.HTML, error)) int {
	switch res := res.(type) {
	case generator.Success:
		html, err := renderFn(res.Payload)
		if err != nil {
			s.logger.Warn("could not render generated content", "kind", string(res.Kind), "error", err)
			data.Raw = string(res.Payload)
			return http.StatusOK
		}
		data.Output = html
		return http.StatusOK
	case generator.MalformedFallback:
		data.Raw = res.RawText
		return http.StatusOK
	case generator.Failure:
		data.Error = "Generation failed: " + res.Message
		return http.StatusBadGateway
	default:
		data.Error = "Generation failed."
		return http.StatusInternalServerError
	}
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.logger.Error("template execution error", "error", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
