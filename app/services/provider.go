package services

import (
	"fmt"

	"github.com/km-arc/go-beans/framework/container"
)

// AppServiceProvider registers the sample types under the names beans.yaml
// uses.
type AppServiceProvider struct{}

func (p *AppServiceProvider) Register(types *container.TypeRegistry) {
	types.Register("services.MailService", container.Constructor[MailService]()).
		Property("host", container.Scalar((*MailService).SetHost)).
		Property("port", container.Scalar((*MailService).SetPort))

	types.Register("services.PaymentService", container.Constructor[PaymentService]()).
		Property("maxAmount", container.Scalar((*PaymentService).SetMaxAmount)).
		Property("mailService", container.Ref((*PaymentService).SetMailService))

	types.Register("services.UserService", container.Constructor[UserService]()).
		Property("password", container.Scalar((*UserService).SetPassword)).
		Property("active", container.Scalar((*UserService).SetActive)).
		Property("mailService", container.Ref((*UserService).SetMailService))

	types.Register("services.PasswordPostProcessor", container.Constructor[PasswordPostProcessor]()).
		Property("replacement", container.Scalar((*PasswordPostProcessor).SetReplacement))
}

// Boot checks that a PaymentService, when defined, can send receipts.
func (p *AppServiceProvider) Boot(ctx *container.Context) error {
	for _, b := range ctx.Beans() {
		if svc, ok := b.Instance.(*PaymentService); ok && svc.MailService() == nil {
			return fmt.Errorf("bean %q: payment service has no mail service", b.ID)
		}
	}
	return nil
}
