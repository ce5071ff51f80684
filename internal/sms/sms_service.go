package sms

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SMSProvider is an interface for sending SMS messages
type SMSProvider interface {
	SendOTP(phone, otp string) error
}

// Fast2SMSService implements SMSProvider for Fast2SMS (India)
type Fast2SMSService struct {
	APIKey string
}

// NewFast2SMSService creates a new Fast2SMS service
func NewFast2SMSService(apiKey string) *Fast2SMSService {
	return &Fast2SMSService{APIKey: apiKey}
}

// SendOTP sends an OTP code via Fast2SMS
func (s *Fast2SMSService) SendOTP(phone, otp string) error {
	message := fmt.Sprintf("Your battery service verification code is %s. Do not share this code with anyone.", otp)

	apiURL := fmt.Sprintf(
		"https://www.fast2sms.com/dev/bulkV2?authorization=%s&route=q&message=%s&language=english&flash=0&numbers=%s",
		url.QueryEscape(s.APIKey),
		url.QueryEscape(message),
		url.QueryEscape(phone),
	)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(apiURL)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("SMS API error (status %d): %s", resp.StatusCode, string(body))
	}
	if strings.Contains(string(body), "\"return\":false") {
		return fmt.Errorf("SMS API error: %s", string(body))
	}
	return nil
}

// MockSMSService is a mock implementation for testing (prints OTP to console)
type MockSMSService struct {
	// Delay simulates carrier latency so the counter flow feels realistic
	// during demos. Zero disables it.
	Delay time.Duration
}

// NewMockSMSService creates a new mock SMS service
func NewMockSMSService() *MockSMSService {
	return &MockSMSService{Delay: time.Second}
}

// SendOTP prints the OTP to console instead of sending SMS (for testing)
func (s *MockSMSService) SendOTP(phone, otp string) error {
	if s.Delay > 0 {
		time.Sleep(s.Delay)
	}
	fmt.Printf("\n========== MOCK SMS ==========\n")
	fmt.Printf("To: %s\n", phone)
	fmt.Printf("OTP: %s\n", otp)
	fmt.Printf("==============================\n\n")
	return nil
}
