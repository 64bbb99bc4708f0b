package mailing

import (
	"bytes"
	"html/template"
)

const ConfirmRegistrationSubject = "Confirm your Recipe Book account"

var confirmRegistrationTmpl = template.Must(template.New("confirm").Parse(`<p>Hello, {{.Username}}!</p>
<p>To finish the registration open the link below:</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>`))

func ConfirmRegistrationBody(username, link string) (string, error) {
	var buf bytes.Buffer
	err := confirmRegistrationTmpl.Execute(&buf, struct {
		Username string
		Link     string
	}{username, link})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
