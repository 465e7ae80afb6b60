package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
)

// Confirmation is the data rendered into a submission confirmation.
// Location and Projects are the derived values from the normalized
// row, not the raw form input.
type Confirmation struct {
	RefID     string
	Email     string
	Activity  string
	Location  string
	Projects  string
	DateLabel string
}

var bodyTmpl = template.Must(template.New("confirmation").Parse(`<!doctype html>
<html>
  <body style="font-family: sans-serif; color: #1f2933;">
    <h2>Daily status recorded</h2>
    <p>Your status for <strong>{{.DateLabel}}</strong> was recorded.</p>
    <table cellpadding="4">
      <tr><td>Activity</td><td><strong>{{.Activity}}</strong></td></tr>
      <tr><td>Location</td><td>{{if .Location}}{{.Location}}{{else}}&ndash;{{end}}</td></tr>
      <tr><td>Projects</td><td>{{if .Projects}}{{.Projects}}{{else}}&ndash;{{end}}</td></tr>
    </table>
    <p style="color: #7b8794; font-size: 12px;">Reference {{.RefID}}. If this was not you, contact your office admin.</p>
  </body>
</html>
`))

// Mailer sends submission confirmations through Resend. A nil *Mailer
// is a valid "confirmations disabled" collaborator.
type Mailer struct {
	client        *resend.Client
	from          string
	subjectPrefix string
}

// New returns a Mailer sending from the given address.
func New(apiKey, from, subjectPrefix string) *Mailer {
	return &Mailer{
		client:        resend.NewClient(apiKey),
		from:          from,
		subjectPrefix: subjectPrefix,
	}
}

// Send renders and sends one confirmation, returning the provider
// message ID for logging. Delivery is best effort: callers must not
// fail a submission on error.
func (m *Mailer) Send(ctx context.Context, conf Confirmation) (string, error) {
	body, err := renderBody(conf)
	if err != nil {
		return "", err
	}
	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{conf.Email},
		Subject: subjectFor(m.subjectPrefix, conf),
		Html:    body,
	})
	if err != nil {
		return "", fmt.Errorf("sending confirmation to %s: %w", conf.Email, err)
	}
	return sent.Id, nil
}

func renderBody(conf Confirmation) (string, error) {
	var buf bytes.Buffer
	if err := bodyTmpl.Execute(&buf, conf); err != nil {
		return "", fmt.Errorf("rendering confirmation body: %w", err)
	}
	return buf.String(), nil
}

func subjectFor(prefix string, conf Confirmation) string {
	return fmt.Sprintf("%s: %s, %s", prefix, conf.Activity, conf.DateLabel)
}
