package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var turnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

var turnstileClient = &http.Client{Timeout: 10 * time.Second}

type TurnstileResponse struct {
	Success     bool      `json:"success"`
	ChallengeTS time.Time `json:"challenge_ts"`
	Hostname    string    `json:"hostname"`
	ErrorCodes  []string  `json:"error-codes"`
}

// VerifyTurnstileToken verifies the token with Cloudflare
func VerifyTurnstileToken(token, secretKey, ip string) (bool, error) {
	return VerifyTurnstileTokenContext(context.Background(), token, secretKey, ip)
}

// VerifyTurnstileTokenContext verifies the token, giving up when ctx ends
func VerifyTurnstileTokenContext(ctx context.Context, token, secretKey, ip string) (bool, error) {
	if token == "" || secretKey == "" {
		return false, errors.New("missing token or secret key")
	}

	form := url.Values{
		"secret":   {secretKey},
		"response": {token},
		"remoteip": {ip},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, turnstileVerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, errors.Wrap(err, "build turnstile request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := turnstileClient.Do(req)
	if err != nil {
		return false, errors.Wrap(err, "failed to verify token")
	}
	defer resp.Body.Close()

	var result TurnstileResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, errors.Wrap(err, "failed to decode turnstile response")
	}

	// If success is false, return an error with the error codes
	if !result.Success {
		return false, errors.Errorf("turnstile verification failed, error codes: %v", result.ErrorCodes)
	}

	return true, nil
}
