package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

// Email is a rendered message ready to enqueue for delivery.
type Email struct {
	Subject string
	HTML    string
}

// ResetPasswordData fills the password recovery template.
type ResetPasswordData struct {
	ProjectName string
	Username    string
	ValidHours  int
	Link        string
}

// NewAccountData fills the account welcome template.
type NewAccountData struct {
	ProjectName string
	Username    string
	Link        string
}

// TestEmailData fills the test template.
type TestEmailData struct {
	ProjectName string
	Email       string
}

var templates = template.Must(template.New("mail").Parse(`
{{define "reset_password" -}}
<html>
<body>
<p>Password recovery for {{.Username}} on {{.ProjectName}}.</p>
<p>Use the link below to set a new password. It is valid for {{.ValidHours}} hours.</p>
<p><a href="{{.Link}}">Reset your password</a></p>
<p>If you did not request a password recovery, you can ignore this message.</p>
</body>
</html>
{{- end}}

{{define "new_account" -}}
<html>
<body>
<p>Welcome to {{.ProjectName}}!</p>
<p>An account has been created for {{.Username}}. Sign in here:</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>
</body>
</html>
{{- end}}

{{define "test_email" -}}
<html>
<body>
<p>Test message from {{.ProjectName}} for {{.Email}}.</p>
</body>
</html>
{{- end}}
`))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("mail: render %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderResetPassword builds the password recovery email.
func RenderResetPassword(data ResetPasswordData) (Email, error) {
	html, err := render("reset_password", data)
	if err != nil {
		return Email{}, err
	}
	subject := fmt.Sprintf("%s - Password recovery for user %s", data.ProjectName, data.Username)
	return Email{Subject: subject, HTML: html}, nil
}

// RenderNewAccount builds the welcome email for a freshly created account.
func RenderNewAccount(data NewAccountData) (Email, error) {
	html, err := render("new_account", data)
	if err != nil {
		return Email{}, err
	}
	subject := fmt.Sprintf("%s - New account for user %s", data.ProjectName, data.Username)
	return Email{Subject: subject, HTML: html}, nil
}

// RenderTestEmail builds the test message.
func RenderTestEmail(data TestEmailData) (Email, error) {
	html, err := render("test_email", data)
	if err != nil {
		return Email{}, err
	}
	return Email{Subject: data.ProjectName + " - Test email", HTML: html}, nil
}
