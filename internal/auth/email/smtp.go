package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPSender sends mail through a plain SMTP relay.
type SMTPSender struct {
	Addr     string // host:port
	From     string
	Username string
	Password string
	Host     string // for AUTH; derived from Addr when empty
}

func NewSMTPSender(addr, from, username, password string) *SMTPSender {
	host := addr
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		host = addr[:i]
	}
	return &SMTPSender{
		Addr:     addr,
		From:     from,
		Username: username,
		Password: password,
		Host:     host,
	}
}

func (s *SMTPSender) SendVerification(ctx context.Context, to, link string) error {
	msg := buildVerificationMessage(s.From, to, link)

	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}

	if err := smtp.SendMail(s.Addr, auth, s.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}

func buildVerificationMessage(from, to, link string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: Verify your email address\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString("<html><body>")
	b.WriteString("<p>Welcome! Confirm your email address to activate your account.</p>")
	b.WriteString(`<p><a href="` + link + `">Verify email</a></p>`)
	b.WriteString("<p>The link expires in a few hours. If you did not sign up, ignore this mail.</p>")
	b.WriteString("</body></html>\r\n")
	return []byte(b.String())
}
