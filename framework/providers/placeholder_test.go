package providers_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/container"
	"github.com/km-arc/go-beans/framework/providers"
)

func process(t *testing.T, p *providers.Placeholder, props map[string]string) (map[string]string, error) {
	t.Helper()
	def := beans.Definition{ID: "x", Type: "test.X", Properties: props}
	err := p.ProcessDefinition(&def)
	return def.Properties, err
}

func TestPlaceholder_Expands(t *testing.T) {
	t.Setenv("GO_BEANS_HOST", "smtp.local")
	t.Setenv("GO_BEANS_PORT", "2525")

	got, err := process(t, &providers.Placeholder{}, map[string]string{
		"host":  "${GO_BEANS_HOST}",
		"url":   "smtp://${GO_BEANS_HOST}:${GO_BEANS_PORT}",
		"plain": "no placeholders",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"host":  "smtp.local",
		"url":   "smtp://smtp.local:2525",
		"plain": "no placeholders",
	}, got)
}

func TestPlaceholder_Default(t *testing.T) {
	os.Unsetenv("GO_BEANS_UNSET")

	got, err := process(t, &providers.Placeholder{}, map[string]string{
		"a": "${GO_BEANS_UNSET:fallback}",
		"b": "${GO_BEANS_UNSET:}",
	})
	require.NoError(t, err)
	assert.Equal(t, "fallback", got["a"])
	assert.Equal(t, "", got["b"])
}

func TestPlaceholder_SetButEmptyBeatsDefault(t *testing.T) {
	t.Setenv("GO_BEANS_EMPTY", "")

	got, err := process(t, &providers.Placeholder{}, map[string]string{"a": "${GO_BEANS_EMPTY:fallback}"})
	require.NoError(t, err)
	assert.Equal(t, "", got["a"])
}

func TestPlaceholder_Unresolved(t *testing.T) {
	os.Unsetenv("GO_BEANS_UNSET")

	_, err := process(t, &providers.Placeholder{}, map[string]string{"a": "${GO_BEANS_UNSET}"})
	require.Error(t, err)
	assert.ErrorIs(t, err, providers.ErrUnresolvedPlaceholder)
	assert.Contains(t, err.Error(), "GO_BEANS_UNSET")
}

func TestPlaceholder_IgnoreUnresolvable(t *testing.T) {
	os.Unsetenv("GO_BEANS_UNSET")

	p := &providers.Placeholder{}
	p.SetIgnoreUnresolvable(true)
	got, err := process(t, p, map[string]string{"a": "${GO_BEANS_UNSET}"})
	require.NoError(t, err)
	assert.Equal(t, "${GO_BEANS_UNSET}", got["a"])
}

func TestPlaceholder_NoProperties(t *testing.T) {
	got, err := process(t, &providers.Placeholder{}, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ── through a context ────────────────────────────────────────────────────────

type Mail struct {
	host string
	port int
}

func (m *Mail) SetHost(h string) { m.host = h }
func (m *Mail) SetPort(p int)    { m.port = p }

func newContext(defs ...beans.Definition) (*container.Context, *container.ProviderRegistry) {
	types := container.NewTypeRegistry()
	types.Register("test.Mail", container.Constructor[Mail]()).
		Property("host", container.Scalar((*Mail).SetHost)).
		Property("port", container.Scalar((*Mail).SetPort))

	registry := container.NewProviderRegistry(types)
	registry.Register(&providers.FrameworkServiceProvider{})
	return container.NewContext(types, container.WithSource(beans.Static(defs))), registry
}

func TestFrameworkProvider_PlaceholderInContext(t *testing.T) {
	t.Setenv("GO_BEANS_PORT", "2525")

	ctx, registry := newContext(
		beans.Definition{ID: "placeholders", Type: providers.PlaceholderType, PostProcessor: true},
		beans.Definition{ID: "mail", Type: "test.Mail", Properties: map[string]string{
			"host": "${GO_BEANS_MAIL_HOST:localhost}",
			"port": "${GO_BEANS_PORT}",
		}},
	)
	require.NoError(t, ctx.Start())
	require.NoError(t, registry.Boot(ctx))

	mail, err := container.GetByNameAndType[*Mail](ctx, "mail")
	require.NoError(t, err)
	assert.Equal(t, "localhost", mail.host)
	assert.Equal(t, 2525, mail.port)
}

func TestFrameworkProvider_UnresolvedFailsStartup(t *testing.T) {
	os.Unsetenv("GO_BEANS_UNSET")

	ctx, _ := newContext(
		beans.Definition{ID: "placeholders", Type: providers.PlaceholderType, PostProcessor: true},
		beans.Definition{ID: "mail", Type: "test.Mail", Properties: map[string]string{"host": "${GO_BEANS_UNSET}"}},
	)
	err := ctx.Start()
	require.Error(t, err)
	assert.ErrorIs(t, err, container.ErrInstantiation)
	assert.ErrorIs(t, err, providers.ErrUnresolvedPlaceholder)
	assert.Equal(t, container.Failed, ctx.State())
}

func TestFrameworkProvider_IgnoreUnresolvableProperty(t *testing.T) {
	os.Unsetenv("GO_BEANS_UNSET")

	ctx, _ := newContext(
		beans.Definition{
			ID: "placeholders", Type: providers.PlaceholderType, PostProcessor: true,
			Properties: map[string]string{"ignoreUnresolvable": "true"},
		},
		beans.Definition{ID: "mail", Type: "test.Mail", Properties: map[string]string{"host": "${GO_BEANS_UNSET}"}},
	)
	require.NoError(t, ctx.Start())

	mail, err := container.GetByType[*Mail](ctx)
	require.NoError(t, err)
	assert.Equal(t, "${GO_BEANS_UNSET}", mail.host)
}
