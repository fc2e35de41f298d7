// Package mail delivers verification e-mail through a background queue so
// delivery latency and failures never reach the registration response.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/miniblog/internal/logging"
	"github.com/sethvargo/go-retry"
)

// Message is one outbound e-mail.
type Message struct {
	ToEmail  string
	ToName   string
	Subject  string
	TextPart string
	HTMLPart string
}

// VerificationMessage builds the account-verification mail for a new user.
func VerificationMessage(email, fullName, verificationLink string) Message {
	return Message{
		ToEmail:  email,
		ToName:   fullName,
		Subject:  "Verify your email address",
		TextPart: fmt.Sprintf("Please follow this link to verify your email address: %s", verificationLink),
		HTMLPart: fmt.Sprintf(`<p>Please follow this link to verify your email address:</p><p><a href=%q>Verify email</a></p>`, verificationLink),
	}
}

// Sender delivers a single message synchronously.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// MailjetSender implements Sender against the Mailjet v3.1 send API.
type MailjetSender struct {
	apiKey      string
	apiSecret   string
	senderEmail string
	senderName  string
	endpoint    string
	client      *http.Client
}

// DefaultMailjetEndpoint is the production send API URL.
const DefaultMailjetEndpoint = "https://api.mailjet.com/v3.1/send"

// NewMailjetSender constructs a sender. endpoint is overridable for tests;
// pass "" for the production API.
func NewMailjetSender(apiKey, apiSecret, senderEmail, senderName, endpoint string) *MailjetSender {
	if endpoint == "" {
		endpoint = DefaultMailjetEndpoint
	}
	return &MailjetSender{
		apiKey:      apiKey,
		apiSecret:   apiSecret,
		senderEmail: senderEmail,
		senderName:  senderName,
		endpoint:    endpoint,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type mailjetParty struct {
	Email string `json:"Email"`
	Name  string `json:"Name"`
}

type mailjetMessage struct {
	From     mailjetParty   `json:"From"`
	To       []mailjetParty `json:"To"`
	Subject  string         `json:"Subject"`
	TextPart string         `json:"TextPart"`
	HTMLPart string         `json:"HTMLPart"`
}

type mailjetPayload struct {
	Messages []mailjetMessage `json:"Messages"`
}

// Send posts the message to the send API with basic auth.
func (s *MailjetSender) Send(ctx context.Context, msg Message) error {
	payload := mailjetPayload{
		Messages: []mailjetMessage{{
			From:     mailjetParty{Email: s.senderEmail, Name: s.senderName},
			To:       []mailjetParty{{Email: msg.ToEmail, Name: msg.ToName}},
			Subject:  msg.Subject,
			TextPart: msg.TextPart,
			HTMLPart: msg.HTMLPart,
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(s.apiKey, s.apiSecret)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail provider returned status %d", resp.StatusCode)
	}
	return nil
}

// Queue is a bounded fire-and-forget delivery queue with one worker. A full
// queue drops the message (logged); the caller is never blocked or failed by
// mail delivery.
type Queue struct {
	jobs   chan Message
	sender Sender
	logger logging.Logger

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// retry policy per message: a few fibonacci-spaced attempts, then give up
// and log. Verification mail is best-effort by contract.
const (
	sendMaxRetries   = 3
	sendRetryBase    = 500 * time.Millisecond
	sendAttemptLimit = 30 * time.Second
)

// NewQueue builds a queue with the given capacity.
func NewQueue(sender Sender, logger logging.Logger, size int) *Queue {
	return &Queue{
		jobs:   make(chan Message, size),
		sender: sender,
		logger: logger.With("module", "mailer"),
	}
}

// Start launches the delivery worker. It runs until Stop is called and the
// queue drains, or ctx is canceled.
func (q *Queue) Start(ctx context.Context) {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-q.jobs:
				if !ok {
					return
				}
				q.deliver(ctx, msg)
			}
		}
	}()
}

// Enqueue hands a message to the worker without blocking. Returns false when
// the queue is full and the message was dropped.
func (q *Queue) Enqueue(ctx context.Context, msg Message) bool {
	select {
	case q.jobs <- msg:
		return true
	default:
		q.logger.Warn(ctx, "mail queue full, dropping message", "to", msg.ToEmail)
		return false
	}
}

// Stop closes the queue and waits for the worker to drain it.
func (q *Queue) Stop() {
	q.closeOnce.Do(func() { close(q.jobs) })
	q.wg.Wait()
}

func (q *Queue) deliver(ctx context.Context, msg Message) {
	attemptCtx, cancel := context.WithTimeout(ctx, sendAttemptLimit)
	defer cancel()

	backoff := retry.WithMaxRetries(sendMaxRetries, retry.NewFibonacci(sendRetryBase))
	err := retry.Do(attemptCtx, backoff, func(ctx context.Context) error {
		if err := q.sender.Send(ctx, msg); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		q.logger.Error(ctx, "verification mail delivery failed", "to", msg.ToEmail, "error", err.Error())
		return
	}
	q.logger.Info(ctx, "verification mail sent", "to", msg.ToEmail)
}
