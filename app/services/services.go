// Package services is the sample application wired by beans.yaml.
package services

import (
	"errors"
	"fmt"
)

// ErrLimitExceeded is returned by Pay for amounts over the configured limit.
var ErrLimitExceeded = errors.New("payment limit exceeded")

// ── MailService ──────────────────────────────────────────────────────────────

// MailService formats outgoing mail. It has no transport; Sent records what
// would have gone out.
type MailService struct {
	host string
	port int
	sent []string
}

func (m *MailService) SetHost(host string) { m.host = host }
func (m *MailService) SetPort(port int)    { m.port = port }

func (m *MailService) Host() string { return m.host }
func (m *MailService) Port() int    { return m.port }

// Send records a message to recipient.
func (m *MailService) Send(recipient, body string) string {
	msg := fmt.Sprintf("to=%s via=%s:%d body=%q", recipient, m.host, m.port, body)
	m.sent = append(m.sent, msg)
	return msg
}

// Sent returns every message recorded by Send.
func (m *MailService) Sent() []string { return m.sent }

// ── PaymentService ───────────────────────────────────────────────────────────

// PaymentService accepts payments up to maxAmount and mails a receipt.
type PaymentService struct {
	mailService *MailService
	maxAmount   int
}

func (p *PaymentService) SetMailService(m *MailService) { p.mailService = m }
func (p *PaymentService) SetMaxAmount(n int)            { p.maxAmount = n }

func (p *PaymentService) MailService() *MailService { return p.mailService }
func (p *PaymentService) MaxAmount() int            { return p.maxAmount }

// Pay checks amount against the limit and sends a receipt to payer.
func (p *PaymentService) Pay(payer string, amount int) error {
	if amount > p.maxAmount {
		return fmt.Errorf("%w: %d > %d", ErrLimitExceeded, amount, p.maxAmount)
	}
	if p.mailService != nil {
		p.mailService.Send(payer, fmt.Sprintf("received %d", amount))
	}
	return nil
}

// ── UserService ──────────────────────────────────────────────────────────────

// UserService holds a single account.
type UserService struct {
	password    string
	active      bool
	mailService *MailService
}

func (u *UserService) SetPassword(pw string)         { u.password = pw }
func (u *UserService) SetActive(active bool)         { u.active = active }
func (u *UserService) SetMailService(m *MailService) { u.mailService = m }

func (u *UserService) Password() string          { return u.password }
func (u *UserService) Active() bool              { return u.active }
func (u *UserService) MailService() *MailService { return u.mailService }
