package container_test

import (
	"errors"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/container"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type MailService struct {
	host string
	port int
}

func (m *MailService) SetHost(host string) { m.host = host }
func (m *MailService) SetPort(port int)    { m.port = port }

type PaymentService struct {
	mailService *MailService
	maxAmount   int
}

func (p *PaymentService) SetMailService(m *MailService) { p.mailService = m }
func (p *PaymentService) SetMaxAmount(n int)            { p.maxAmount = n }

type UserService struct {
	password string
	active   bool
	mail     *MailService
}

func (u *UserService) SetPassword(pw string)        { u.password = pw }
func (u *UserService) SetActive(active bool)        { u.active = active }
func (u *UserService) SetMailService(m *MailService) { u.mail = m }

// passwordProcessor rewrites any "password" property to a fixed value.
type passwordProcessor struct {
	replacement string
}

func (p *passwordProcessor) SetReplacement(s string) { p.replacement = s }

func (p *passwordProcessor) ProcessDefinition(def *beans.Definition) error {
	if def.Properties == nil {
		return nil
	}
	if _, ok := def.Properties["password"]; !ok {
		return nil
	}
	replacement := p.replacement
	if replacement == "" {
		replacement = "qwerty"
	}
	def.Properties["password"] = replacement
	return nil
}

// suffixProcessor appends "-suffixed" to every password it sees.
type suffixProcessor struct{}

func (suffixProcessor) ProcessDefinition(def *beans.Definition) error {
	if pw, ok := def.Properties["password"]; ok {
		def.Properties["password"] = pw + "-suffixed"
	}
	return nil
}

type failingProcessor struct{}

func (failingProcessor) ProcessDefinition(*beans.Definition) error {
	return errors.New("processor exploded")
}

type panickingProcessor struct{}

func (panickingProcessor) ProcessDefinition(*beans.Definition) error {
	panic("processor panicked")
}

// renamingProcessor renames any bean called "second" to "first".
type renamingProcessor struct{}

func (renamingProcessor) ProcessDefinition(def *beans.Definition) error {
	if def.ID == "second" {
		def.ID = "first"
	}
	return nil
}

// retypingProcessor swaps every MailService for a PaymentService.
type retypingProcessor struct{}

func (retypingProcessor) ProcessDefinition(def *beans.Definition) error {
	if def.Type == "MailService" {
		def.Type = "PaymentService"
	}
	return nil
}

// retaggingProcessor marks every definition it sees as a processor.
type retaggingProcessor struct{}

func (retaggingProcessor) ProcessDefinition(def *beans.Definition) error {
	def.PostProcessor = true
	return nil
}

// auditProcessor is configured with a password of its own and changes nothing.
type auditProcessor struct {
	password string
}

func (a *auditProcessor) SetPassword(pw string) { a.password = pw }

func (a *auditProcessor) ProcessDefinition(*beans.Definition) error { return nil }

// notAProcessor has no ProcessDefinition method.
type notAProcessor struct{}

var errFactory = errors.New("factory failed")

// newTypes registers every fixture type.
func newTypes() *container.TypeRegistry {
	types := container.NewTypeRegistry()

	types.Register("MailService", container.Constructor[MailService]()).
		Property("host", container.Scalar((*MailService).SetHost)).
		Property("port", container.Scalar((*MailService).SetPort))

	types.Register("PaymentService", container.Constructor[PaymentService]()).
		Property("maxAmount", container.Scalar((*PaymentService).SetMaxAmount)).
		Property("mailService", container.Ref((*PaymentService).SetMailService))

	types.Register("UserService", container.Constructor[UserService]()).
		Property("password", container.Scalar((*UserService).SetPassword)).
		Property("active", container.Scalar((*UserService).SetActive)).
		Property("mailService", container.Ref((*UserService).SetMailService))

	types.Register("PasswordProcessor", container.Constructor[passwordProcessor]()).
		Property("replacement", container.Scalar((*passwordProcessor).SetReplacement))
	types.Register("SuffixProcessor", func() (any, error) { return suffixProcessor{}, nil })
	types.Register("FailingProcessor", func() (any, error) { return failingProcessor{}, nil })
	types.Register("PanickingProcessor", func() (any, error) { return panickingProcessor{}, nil })
	types.Register("RenamingProcessor", func() (any, error) { return renamingProcessor{}, nil })
	types.Register("RetypingProcessor", func() (any, error) { return retypingProcessor{}, nil })
	types.Register("RetaggingProcessor", func() (any, error) { return retaggingProcessor{}, nil })
	types.Register("AuditProcessor", container.Constructor[auditProcessor]()).
		Property("password", container.Scalar((*auditProcessor).SetPassword))
	types.Register("NotAProcessor", container.Constructor[notAProcessor]())

	types.Register("Failing", func() (any, error) { return nil, errFactory })
	types.Register("Panicking", func() (any, error) { panic("boom") })
	types.Register("Nil", func() (any, error) { return nil, nil })

	return types
}

// start builds and starts a context over defs.
func start(defs ...beans.Definition) (*container.Context, error) {
	ctx := container.NewContext(newTypes(), container.WithSource(beans.Static(defs)))
	return ctx, ctx.Start()
}

func props(kv ...string) map[string]string {
	m := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}
