package mail

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/sony/gobreaker"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/logging"
)

// Mailer sends transactional mail over SMTP. The breaker keeps a flapping
// mail relay from stalling request handlers.
type Mailer struct {
	host     string
	port     string
	from     string
	password string
	breaker  *gobreaker.CircuitBreaker
}

func NewMailer(host, port, from, password string) *Mailer {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "smtp-cb",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	return &Mailer{host: host, port: port, from: from, password: password, breaker: breaker}
}

func (m *Mailer) Send(to, subject, body string) error {
	if m.from == "" || m.password == "" {
		return fmt.Errorf("SMTP credentials are not configured")
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n" +
		body + "\r\n")

	_, err := m.breaker.Execute(func() (interface{}, error) {
		auth := smtp.PlainAuth("", m.from, m.password, m.host)
		return nil, smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, message)
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
