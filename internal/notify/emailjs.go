package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

const defaultEmailEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailConfig identifies the EmailJS template the order notification is
// rendered through.
type EmailConfig struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	ToEmail    string
}

// EmailNotifier posts the order payload to the EmailJS send API. Calls run
// through a circuit breaker so a dead email provider stops costing checkout
// requests a full HTTP timeout each.
type EmailNotifier struct {
	cfg     EmailConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[struct{}]
}

func NewEmailNotifier(cfg EmailConfig) *EmailNotifier {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEmailEndpoint
	}

	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "emailjs",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &EmailNotifier{
		cfg:     cfg,
		client:  &http.Client{Timeout: 10 * time.Second},
		breaker: breaker,
	}
}

type emailSendRequest struct {
	ServiceID      string              `json:"service_id"`
	TemplateID     string              `json:"template_id"`
	UserID         string              `json:"user_id"`
	TemplateParams emailTemplateParams `json:"template_params"`
}

// emailTemplateParams adds the template's recipient on top of the shared
// payload.
type emailTemplateParams struct {
	Payload
	ToEmail string `json:"to_email,omitempty"`
}

func (n *EmailNotifier) Dispatch(ctx context.Context, p Payload) error {
	_, err := n.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, n.send(ctx, p)
	})
	if err != nil {
		return fmt.Errorf("emailjs dispatch failed: %w", err)
	}
	return nil
}

func (n *EmailNotifier) send(ctx context.Context, p Payload) error {
	body, err := json.Marshal(emailSendRequest{
		ServiceID:      n.cfg.ServiceID,
		TemplateID:     n.cfg.TemplateID,
		UserID:         n.cfg.PublicKey,
		TemplateParams: emailTemplateParams{Payload: p, ToEmail: n.cfg.ToEmail},
	})
	if err != nil {
		return fmt.Errorf("marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emailjs responded %d: %s", resp.StatusCode, detail)
	}
	return nil
}
