package utils

import (
	"fmt"

	"promocrm/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional email over SMTP
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewMailer builds a Mailer from the loaded application config
func NewMailer() *Mailer {
	return &Mailer{
		host:     config.AppConfig.SMTPHost,
		port:     config.AppConfig.SMTPPort,
		username: config.AppConfig.SMTPUsername,
		password: config.AppConfig.SMTPPassword,
		from:     config.AppConfig.FromEmail,
	}
}

// SendReminderEmail notifies an admin about a due reminder
func (m *Mailer) SendReminderEmail(to, title, message string) error {
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Recordatorio: %s</h2>
			<p>%s</p>
			<p>Abre el panel de administración para ver el detalle.</p>
		</body>
		</html>
	`, title, message)

	return m.send(to, "Recordatorio: "+title, body)
}

// SendFollowUpDueEmail notifies an admin that a lead follow-up is due
func (m *Mailer) SendFollowUpDueEmail(to, leadName, leadEmail string) error {
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Seguimiento pendiente</h2>
			<p>El lead <b>%s</b> (%s) tiene un seguimiento programado que ya venció.</p>
			<p>Abre el panel de administración para registrar el contacto.</p>
		</body>
		</html>
	`, leadName, leadEmail)

	return m.send(to, "Seguimiento pendiente: "+leadName, body)
}

func (m *Mailer) send(to, subject, body string) error {
	if m.host == "" {
		return fmt.Errorf("SMTP configuration not initialized")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return d.DialAndSend(msg)
}
