package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// Render takes a templ.Component and renders it to a string.
func Render(ctx context.Context, tpl templ.Component) (string, error) {
	var sb strings.Builder
	if err := tpl.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Content is a fully rendered email.
type Content struct {
	Subject string
	HTML    string
	Text    string
}

// RenderOrder renders the subject, HTML and plain-text bodies for an order email.
func RenderOrder(ctx context.Context, o Order) (Content, error) {
	html, err := Render(ctx, OrderHTML(o))
	if err != nil {
		return Content{}, err
	}
	return Content{
		Subject: Subject(o),
		HTML:    html,
		Text:    OrderText(o),
	}, nil
}
