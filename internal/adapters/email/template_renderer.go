package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"roombooking/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// Each email named N is made of N_subject.txt, N.txt and N.html.
const (
	subjectSuffix = "_subject.txt"
	textSuffix    = ".txt"
	htmlSuffix    = ".html"
)

// templateRenderer implements domain.EmailTemplateRenderer over the embedded
// templates, parsed once at construction.
type templateRenderer struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

// NewTemplateRenderer returns an EmailTemplateRenderer for the embedded templates folder.
// A missing field in the data is an error rather than an empty string.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		text: texttemplate.Must(texttemplate.New("").Option("missingkey=error").ParseFS(templateFS, "templates/*.txt")),
		html: htmltemplate.Must(htmltemplate.New("").Option("missingkey=error").ParseFS(templateFS, "templates/*.html")),
	}
}

// Render executes the named email (e.g. "booking_confirmation") with data and returns subject, html, and text bodies.
func (r *templateRenderer) Render(name string, data any) (subject, htmlBody, textBody string, err error) {
	subject, err = renderText(r.text, name+subjectSuffix, data)
	if err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	htmlBody, err = renderHTML(r.html, name+htmlSuffix, data)
	if err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	textBody, err = renderText(r.text, name+textSuffix, data)
	if err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	// Subjects are a single header line.
	return strings.Join(strings.Fields(subject), " "), htmlBody, textBody, nil
}

func renderText(set *texttemplate.Template, file string, data any) (string, error) {
	t := set.Lookup(file)
	if t == nil {
		return "", fmt.Errorf("template %s not found", file)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderHTML(set *htmltemplate.Template, file string, data any) (string, error) {
	t := set.Lookup(file)
	if t == nil {
		return "", fmt.Errorf("template %s not found", file)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
