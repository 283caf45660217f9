package validation_test

import (
	"testing"

	"github.com/km-arc/go-beans/framework/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

// pass asserts the validator passes for the given data/rules.
func pass(t *testing.T, label string, data map[string]string, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		v := validation.Make(data, rules)
		if v.Fails() {
			t.Errorf("expected PASS, got FAIL, errors: %+v", v.Errors().Bag)
		}
	})
}

// fail asserts the validator fails with an error on the given field.
func fail(t *testing.T, label, field string, data map[string]string, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		v := validation.Make(data, rules)
		if v.Passes() {
			t.Errorf("expected FAIL on field %q, but validator PASSED", field)
		}
		if v.Errors().First(field) == "" {
			t.Errorf("expected error on field %q, but none found. Errors: %+v", field, v.Errors().Bag)
		}
	})
}

// ── required ─────────────────────────────────────────────────────────────────

func TestValidation_Required(t *testing.T) {
	r := validation.Rules{"id": "required"}

	pass(t, "non-empty value", map[string]string{"id": "mailService"}, r)
	fail(t, "empty string", "id", map[string]string{"id": ""}, r)
	fail(t, "whitespace only", "id", map[string]string{"id": "   "}, r)
	fail(t, "missing key", "id", map[string]string{}, r)
}

func TestValidation_Required_MessageFormat(t *testing.T) {
	v := validation.Make(map[string]string{"id": ""}, validation.Rules{"id": "required"})
	_ = v.Fails()
	msg := v.Errors().First("id")
	expected := "The id field is required."
	if msg != expected {
		t.Errorf("message: got %q want %q", msg, expected)
	}
}

// ── identifier / type_name ────────────────────────────────────────────────────

func TestValidation_Identifier(t *testing.T) {
	r := validation.Rules{"id": "identifier"}

	pass(t, "camel case", map[string]string{"id": "paymentService"}, r)
	pass(t, "dotted", map[string]string{"id": "mail.primary"}, r)
	pass(t, "dashes and underscores", map[string]string{"id": "_mail-service_2"}, r)
	fail(t, "leading digit", "id", map[string]string{"id": "2mail"}, r)
	fail(t, "space", "id", map[string]string{"id": "mail service"}, r)
	fail(t, "empty", "id", map[string]string{"id": ""}, r)
}

func TestValidation_TypeName(t *testing.T) {
	r := validation.Rules{"type": "type_name"}

	pass(t, "bare", map[string]string{"type": "MailService"}, r)
	pass(t, "qualified", map[string]string{"type": "com.antonr.ioc.service.PaymentService"}, r)
	fail(t, "trailing dot", "type", map[string]string{"type": "services."}, r)
	fail(t, "double dot", "type", map[string]string{"type": "services..Mail"}, r)
	fail(t, "dash", "type", map[string]string{"type": "mail-service"}, r)
}

// ── min / max ────────────────────────────────────────────────────────────────

func TestValidation_Max(t *testing.T) {
	r := validation.Rules{"id": "max:5"}

	pass(t, "exactly 5", map[string]string{"id": "hello"}, r)
	pass(t, "less than 5", map[string]string{"id": "hi"}, r)
	fail(t, "more than 5", "id", map[string]string{"id": "toolong"}, r)
}

func TestValidation_In(t *testing.T) {
	r := validation.Rules{"format": "in:yaml,toml,xml"}

	pass(t, "yaml", map[string]string{"format": "yaml"}, r)
	pass(t, "xml", map[string]string{"format": "xml"}, r)
	fail(t, "json not in list", "format", map[string]string{"format": "json"}, r)
	fail(t, "empty not in list", "format", map[string]string{"format": ""}, r)
}

func TestValidation_Sometimes(t *testing.T) {
	r := validation.Rules{"format": "sometimes|in:yaml,toml,xml"}

	pass(t, "absent skips", map[string]string{}, r)
	pass(t, "empty skips", map[string]string{"format": ""}, r)
	pass(t, "present and valid", map[string]string{"format": "toml"}, r)
	fail(t, "present and invalid", "format", map[string]string{"format": "ini"}, r)
}

func TestValidation_StopsOnFirstFailure(t *testing.T) {
	v := validation.Make(map[string]string{"id": ""}, validation.Rules{"id": "required|identifier|max:3"})
	_ = v.Fails()
	if got := len(v.Errors().Bag["id"]); got != 1 {
		t.Errorf("errors for id: got %d want 1", got)
	}
}

// ── Err ───────────────────────────────────────────────────────────────────────

func TestValidation_Err(t *testing.T) {
	v := validation.Make(map[string]string{"id": "ok", "type": ""}, validation.Rules{
		"id":   "required",
		"type": "required",
	})
	err := v.Err()
	if err == nil {
		t.Fatal("Err(): got nil, want error")
	}
	if err.Error() != "The type field is required." {
		t.Errorf("Err(): got %q", err.Error())
	}

	ok := validation.Make(map[string]string{"id": "x"}, validation.Rules{"id": "required"})
	if ok.Err() != nil {
		t.Errorf("Err(): got %v, want nil", ok.Err())
	}
}
