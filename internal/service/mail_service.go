package service

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/logger"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/resilience"

	"gopkg.in/gomail.v2"
)

var ErrMailUnavailable = errors.New("mail service unavailable")

// memberMessageTemplate renders the mail-a-member email body.
var memberMessageTemplate = template.Must(template.New("member-message").Parse(`
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Message from {{.SenderName}}</h2>
	<p>{{.Body}}</p>
	<hr>
	<p style="color: #888; font-size: 12px;">
		Sent via EduNet Alumni Connect Portal. Reply to {{.SenderEmail}} to continue the conversation.
	</p>
</body>
</html>`))

// welcomeTemplate renders the signup welcome email.
var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Welcome to EduNet, {{.Name}}!</h2>
	<p>Your account is ready. Build your profile, find classmates and alumni, and start a conversation.</p>
</body>
</html>`))

// MailService sends notification emails over SMTP. A circuit breaker
// wraps the dialer so a flaky SMTP relay cannot hold request handlers
// hostage.
type MailService struct {
	dialer  *gomail.Dialer
	from    string
	breaker *resilience.CircuitBreaker
	log     *logger.Logger
}

func NewMailService(host string, port int, username, password, from string, log *logger.Logger) *MailService {
	return &MailService{
		dialer:  gomail.NewDialer(host, port, username, password),
		from:    from,
		breaker: resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("smtp"), log),
		log:     log,
	}
}

func (s *MailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	err := s.breaker.Execute(func() error {
		return s.dialer.DialAndSend(m)
	})
	if err != nil {
		s.log.LogError(err, "Failed to send email", "to", to, "subject", subject)
		return ErrMailUnavailable
	}
	return nil
}

// SendMemberMessage delivers the mail-a-member email from one
// connection to another.
func (s *MailService) SendMemberMessage(to, senderName, senderEmail, subject, body string) error {
	var buf bytes.Buffer
	err := memberMessageTemplate.Execute(&buf, map[string]string{
		"SenderName":  senderName,
		"SenderEmail": senderEmail,
		"Body":        body,
	})
	if err != nil {
		return fmt.Errorf("render member message email: %w", err)
	}
	return s.send(to, fmt.Sprintf("Message from %s: %s", senderName, subject), buf.String())
}

// SendWelcome greets a freshly registered member. Failures are logged
// and swallowed by callers; signup must not depend on SMTP health.
func (s *MailService) SendWelcome(to, name string) error {
	var buf bytes.Buffer
	if err := welcomeTemplate.Execute(&buf, map[string]string{"Name": name}); err != nil {
		return fmt.Errorf("render welcome email: %w", err)
	}
	return s.send(to, "Welcome to EduNet", buf.String())
}
