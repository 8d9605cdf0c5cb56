package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// SMSService sends text messages through an HTTP SMS gateway.
type SMSService struct {
	gatewayURL string
	token      string
}

// NewSMSService creates a new SMSService.
func NewSMSService(gatewayURL, token string) *SMSService {
	return &SMSService{gatewayURL: gatewayURL, token: token}
}

type smsMessage struct {
	To    string `json:"to"`
	Text  string `json:"text"`
	Token string `json:"token,omitempty"`
}

// Send delivers one SMS. When no gateway is configured the send is logged
// and skipped so local environments work without an SMS provider.
func (s *SMSService) Send(mobile, text string) error {
	if s.gatewayURL == "" {
		log.Printf("[SMS] gateway not configured, skipping message to %s", mobile)
		return nil
	}

	msg := smsMessage{
		To:    mobile,
		Text:  text,
		Token: s.token,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := http.Post(s.gatewayURL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[SMS] failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[SMS] unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	return nil
}

// SendOTP delivers a mobile-verification code.
func (s *SMSService) SendOTP(mobile, code string) error {
	return s.Send(mobile, fmt.Sprintf("Your verification code is %s. It expires shortly.", code))
}
