package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewEmailService creates a new EmailService.
func NewEmailService(host, port, user, pass, from string) *EmailService {
	return &EmailService{host: host, port: port, user: user, pass: pass, from: from}
}

// Send delivers a single HTML email. When SMTP is not configured the send is
// logged and skipped so local environments work without a mail server.
func (s *EmailService) Send(to, subject, htmlBody string) error {
	if s.host == "" {
		log.Printf("[Email] SMTP not configured, skipping %q to %s", subject, to)
		return nil
	}

	var msg strings.Builder
	msg.WriteString("From: " + s.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := s.host + ":" + s.port

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg.String())); err != nil {
		log.Printf("[Email] failed to send %q to %s: %v", subject, to, err)
		return err
	}

	return nil
}

// SendOTP delivers an email-verification code.
func (s *EmailService) SendOTP(to, code, companyName string) error {
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your verification code is:</p><h1>%s</h1><p>The code expires shortly. If you did not request it, ignore this email.</p>",
		companyName, code,
	)
	return s.Send(to, "Email Verification Code", body)
}

// SendDealerApproval notifies a dealer that the account was approved.
func (s *EmailService) SendDealerApproval(to, companyName string) error {
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your dealer account has been approved. You can now log in and place enquiries.</p>",
		companyName,
	)
	return s.Send(to, "Dealer Account Approved", body)
}

// SendDealerRejection notifies a dealer that the account was rejected.
func (s *EmailService) SendDealerRejection(to, companyName, reason string) error {
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your dealer registration was not approved.</p><p>Reason: %s</p>",
		companyName, reason,
	)
	return s.Send(to, "Dealer Registration Update", body)
}

// SendEnquiryConfirmation confirms a new enquiry to the dealer.
func (s *EmailService) SendEnquiryConfirmation(to, companyName, productName string, quantity int, totalAmount float64) error {
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your enquiry for <b>%s</b> (quantity %d, total %.2f) was submitted and is awaiting review.</p>",
		companyName, productName, quantity, totalAmount,
	)
	return s.Send(to, "Enquiry Received", body)
}

// SendPasswordReset delivers a password-reset link token.
func (s *EmailService) SendPasswordReset(to, companyName, token string) error {
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Use the token below to reset your password. It is valid for one hour and can be used once.</p><h3>%s</h3>",
		companyName, token,
	)
	return s.Send(to, "Password Reset", body)
}
