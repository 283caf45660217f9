package app_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-beans/framework/app"
	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/config"
	"github.com/km-arc/go-beans/framework/container"
	"github.com/km-arc/go-beans/framework/definitions"
)

type Greeter struct{ greeting string }

func (g *Greeter) SetGreeting(s string) { g.greeting = s }

type greeterProvider struct {
	booted bool
}

func (p *greeterProvider) Register(types *container.TypeRegistry) {
	types.Register("test.Greeter", container.Constructor[Greeter]()).
		Property("greeting", container.Scalar((*Greeter).SetGreeting))
}

func (p *greeterProvider) Boot(ctx *container.Context) error {
	_, err := container.GetByType[*Greeter](ctx)
	p.booted = err == nil
	return err
}

func testConfig(definitionsPath string) *config.Config {
	return &config.Config{
		App:   config.AppConfig{Name: "test", Env: "testing"},
		Beans: config.BeansConfig{Definitions: definitionsPath},
		Admin: config.AdminConfig{Addr: "127.0.0.1:0"},
	}
}

func writeDefinitions(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestApplication_BootFromConfig(t *testing.T) {
	t.Setenv("GO_BEANS_GREETING", "hello")
	path := writeDefinitions(t, "beans.yaml", `
post_processors:
  - id: placeholders
    type: framework.Placeholder
beans:
  - id: greeter
    type: test.Greeter
    properties:
      greeting: ${GO_BEANS_GREETING}
`)

	provider := &greeterProvider{}
	a := app.New(testConfig(path), nil)
	a.Register(provider)

	require.NoError(t, a.Boot())
	assert.True(t, provider.booted)
	assert.Equal(t, container.Ready, a.Context.State())

	g, err := container.GetByType[*Greeter](a.Context)
	require.NoError(t, err)
	assert.Equal(t, "hello", g.greeting)

	// second Boot is a no-op
	require.NoError(t, a.Boot())
}

func TestApplication_ExplicitFormat(t *testing.T) {
	path := writeDefinitions(t, "beans.conf", "[[beans]]\nid = \"greeter\"\ntype = \"test.Greeter\"\n")
	cfg := testConfig(path)
	cfg.Beans.Format = "toml"

	a := app.New(cfg, nil)
	a.Register(&greeterProvider{})
	require.NoError(t, a.Boot())
}

func TestApplication_UnknownFormat(t *testing.T) {
	cfg := testConfig("beans.conf")
	a := app.New(cfg, nil)
	assert.ErrorIs(t, a.Boot(), definitions.ErrUnknownFormat)
}

func TestApplication_SetSource(t *testing.T) {
	a := app.New(testConfig("does-not-exist.yaml"), nil)
	a.Register(&greeterProvider{})
	a.SetSource(beans.Static{{ID: "greeter", Type: "test.Greeter"}})

	require.NoError(t, a.Boot())
	assert.Len(t, a.Context.Beans(), 1)
}

func TestApplication_BootFailure(t *testing.T) {
	a := app.New(testConfig(""), nil)
	a.SetSource(beans.Static{{ID: "x", Type: "test.Unknown"}})

	err := a.Boot()
	assert.ErrorIs(t, err, container.ErrInstantiation)
	assert.Equal(t, container.Failed, a.Context.State())
	assert.False(t, a.Providers.Booted())
}

func TestApplication_ServeListener(t *testing.T) {
	a := app.New(testConfig(""), nil)
	a.Register(&greeterProvider{})
	a.SetSource(beans.Static{{ID: "greeter", Type: "test.Greeter"}})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.ServeListener(ctx, ln) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + ln.Addr().String() + "/health")
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Data struct {
			State string `json:"state"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ready", body.Data.State)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestApplication_InvalidConfig(t *testing.T) {
	cfg := testConfig("")
	cfg.Beans.Format = "json"

	a := app.New(cfg, nil)
	a.SetSource(beans.Static{})
	err := a.Boot()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "beans_format")
	assert.Equal(t, container.Uninitialized, a.Context.State())
}
