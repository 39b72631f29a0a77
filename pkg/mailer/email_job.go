package mailer

import "fmt"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is optional; Text is the fallback body.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// WelcomeEmail builds the job enqueued when a new account is registered.
func WelcomeEmail(to, name, appName string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: fmt.Sprintf("Welcome to %s", appName),
		Text: fmt.Sprintf(
			"Hi %s,\n\nYour %s account is ready. Set up your developer profile and start connecting.\n",
			name, appName,
		),
	}
}
