package mailing

import (
	"fmt"
	"strconv"

	"github.com/pantry-guardian/backend/internal/utils"
	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func SendMail(toEmail string, subject string, body string) error {
	emailConfig := LoadMailConfig()

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", emailConfig.SMTPEmail)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	port, err := strconv.Atoi(emailConfig.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		emailConfig.SMTPHost,
		port,
		emailConfig.SMTPEmail,
		emailConfig.SMTPPassword,
	)

	if err := dialer.DialAndSend(mailer); err != nil {
		return err
	}

	return nil
}

// SendInvitationMail notifies an invitee that they were invited to join a
// household.
func SendInvitationMail(toEmail, householdName, inviterName string) error {
	appURL := utils.GetConfig("APP_URL")
	subject := fmt.Sprintf("You have been invited to join %s", householdName)
	body := fmt.Sprintf(
		"<p>%s invited you to join the household <b>%s</b> on Pantry Guardian.</p>"+
			"<p>Open the app or visit <a href=\"%s\">%s</a> to accept or reject the invitation.</p>",
		inviterName, householdName, appURL, appURL,
	)
	return SendMail(toEmail, subject, body)
}

// SendResetPasswordMail sends a password reset link containing the one-time
// token.
func SendResetPasswordMail(toEmail, token string) error {
	appURL := utils.GetConfig("APP_URL")
	subject := "Reset your Pantry Guardian password"
	body := fmt.Sprintf(
		"<p>Click the link below to reset your password. The link expires in 1 hour.</p>"+
			"<p><a href=\"%s/reset?token=%s\">Reset password</a></p>",
		appURL, token,
	)
	return SendMail(toEmail, subject, body)
}
