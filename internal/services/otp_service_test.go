package services

import (
	"testing"
	"time"

	"github.com/example/furnistore/internal/apperr"
)

func TestEvaluateOTP(t *testing.T) {
	now := time.Now()
	future := now.Add(10 * time.Minute)
	past := now.Add(-time.Minute)

	cases := []struct {
		name      string
		stored    string
		expiresAt time.Time
		candidate string
		want      error
	}{
		{"valid code", "123456", future, "123456", nil},
		{"wrong code", "123456", future, "654321", apperr.ErrInvalidCode},
		{"empty candidate", "123456", future, "", apperr.ErrInvalidCode},
		{"expired correct code", "123456", past, "123456", apperr.ErrExpiredCode},
		{"expired wrong code", "123456", past, "654321", apperr.ErrExpiredCode},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EvaluateOTP(tc.stored, tc.expiresAt, tc.candidate, now)
			if got != tc.want {
				t.Errorf("EvaluateOTP = %v, want %v", got, tc.want)
			}
		})
	}
}

// A code that is both expired and wrong must report expired, so a late
// caller cannot use the error to probe whether their code was right.
func TestEvaluateOTPExpiryWinsOverMismatch(t *testing.T) {
	now := time.Now()
	err := EvaluateOTP("123456", now.Add(-time.Second), "000000", now)
	if err != apperr.ErrExpiredCode {
		t.Errorf("got %v, want %v", err, apperr.ErrExpiredCode)
	}
}
