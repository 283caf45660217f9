// Package container provides a declarative IoC container for Go.
//
// # Overview
//
// A Context turns a list of bean definitions into a live object graph. Each
// definition names a registered type, literal property values and references
// to other beans. Startup creates every instance first and only then wires
// properties, so references may point at any bean regardless of order.
//
// Because Go has no runtime class loading, types and setters are not found
// by reflection. Each creatable type is registered up front with a factory
// and an explicit property-name → setter table.
//
// # Context Lifecycle
//
//  1. Create: types := container.NewTypeRegistry()
//  2. Register types (directly or through ServiceProviders)
//  3. ctx := container.NewContext(types, container.WithSource(src))
//  4. ctx.Start(): Uninitialized → DefinitionsLoaded → PostProcessed →
//     Instantiated → ScalarsInjected → Ready
//  5. Look beans up; the registry is read-only from here on
//
// # Types
//
//	types.Register("services.MailService", container.Constructor[services.MailService]())
//
//	types.Register("services.PaymentService", container.Constructor[services.PaymentService]()).
//	    Property("maxAmount", container.Scalar((*services.PaymentService).SetMaxAmount)).
//	    Property("mailService", container.Ref((*services.PaymentService).SetMailService))
//
// # Definitions
//
//	src := beans.Static{
//	    {ID: "mailService", Type: "services.MailService"},
//	    {ID: "paymentService", Type: "services.PaymentService",
//	        Properties: map[string]string{"maxAmount": "100"},
//	        Refs:       map[string]string{"mailService": "mailService"}},
//	}
//
// # Lookup
//
//	raw, err := ctx.Bean("paymentService")
//	svc, err := container.GetByType[*services.PaymentService](ctx)
//	mail, err := container.GetByNameAndType[*services.MailService](ctx, "mailService")
//
// Type lookups match the exact runtime type. More than one match is
// ErrAmbiguousMatch; none is ErrNotFound.
//
// # Post-processors
//
// Definitions tagged PostProcessor are instantiated first, configured with
// their own literal properties and must implement DefinitionPostProcessor.
// Each one rewrites every ordinary definition, in list order, before any
// bean is created.
//
// # Errors
//
// Startup failures are *BeanError values matching ErrInstantiation or
// ErrPropertyBinding with errors.Is. A failed context moves to Failed and
// cannot be started again.
package container
