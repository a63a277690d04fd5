package mailer

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	texttpl "text/template"
)

var welcomeHTML = htmpl.Must(htmpl.New("welcome").Parse(`<html>
<body style="font-family:sans-serif">
  <h2>Welcome{{if .FirstName}}, {{.FirstName}}{{end}}!</h2>
  <p>Your account is ready. Post your first ad whenever you like.</p>
</body>
</html>`))

var welcomeText = texttpl.Must(texttpl.New("welcome").Parse(
	`Welcome{{if .FirstName}}, {{.FirstName}}{{end}}! Your account is ready.`))

// Render produces subject, text and HTML bodies for a named template.
func Render(template string, data map[string]any) (subject, text, html string, err error) {
	switch template {
	case TemplateWelcome:
		var tb, hb bytes.Buffer
		if err = welcomeText.Execute(&tb, data); err != nil {
			return "", "", "", err
		}
		if err = welcomeHTML.Execute(&hb, data); err != nil {
			return "", "", "", err
		}
		return "Welcome to the marketplace", tb.String(), hb.String(), nil
	default:
		return "", "", "", fmt.Errorf("mailer: unknown template %q", template)
	}
}
