package smtp

import (
	"fmt"
	smtpPkg "net/smtp"
	"os"
)

type ItfSmtp interface {
	SendOTPMail(userEmail string, otp string) error
	SendSubscriptionResultMail(userEmail string, planType string, approved bool) error
}

type smtp struct {
	auth smtpPkg.Auth
	mail string
	host string
	addr string
}

func New() ItfSmtp {
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}

	auth := smtpPkg.PlainAuth("", mail, password, host)

	return &smtp{
		auth: auth,
		mail: mail,
		host: host,
		addr: host + ":587",
	}
}

func (s *smtp) SendOTPMail(userEmail string, otp string) error {
	to := []string{userEmail}

	message := []byte(fmt.Sprintf("To: %s\r\nSubject: Your password reset code\r\n\r\nHello, your SpendScan password reset code is: %s\r\nThe code expires in 5 minutes.",
		userEmail, otp))

	return smtpPkg.SendMail(s.addr, s.auth, s.mail, to, message)
}

func (s *smtp) SendSubscriptionResultMail(userEmail string, planType string, approved bool) error {
	to := []string{userEmail}

	var body string
	if approved {
		body = fmt.Sprintf("Your %s premium subscription has been approved. Enjoy unlimited receipt scans and premium reports!", planType)
	} else {
		body = fmt.Sprintf("Your %s premium subscription request was rejected. Please check your payment screenshot and submit again.", planType)
	}

	message := []byte(fmt.Sprintf("To: %s\r\nSubject: SpendScan subscription update\r\n\r\n%s",
		userEmail, body))

	return smtpPkg.SendMail(s.addr, s.auth, s.mail, to, message)
}
