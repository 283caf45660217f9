package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-beans/framework/app"
	"github.com/km-arc/go-beans/framework/container"
	gohttp "github.com/km-arc/go-beans/framework/http"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", "testdata/missing.env", "--definitions", "beans.yaml"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "RUNTIME TYPE")
	assert.Contains(t, out, "paymentService")
	assert.Contains(t, out, "*services.PaymentService")
}

func TestList_TypeFilter(t *testing.T) {
	out, err := run(t, "list", "--type", "services.UserService")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "userService")
}

func TestGet(t *testing.T) {
	out, err := run(t, "get", "userService")
	require.NoError(t, err)

	var view gohttp.BeanView
	require.NoError(t, yaml.Unmarshal([]byte(out), &view))
	assert.Equal(t, "userService", view.ID)
	assert.Equal(t, "*services.UserService", view.RuntimeType)
	assert.Equal(t, "******", view.Properties["password"])
	assert.Equal(t, "mailService", view.Refs["mailService"])
}

func TestVersion(t *testing.T) {
	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, app.Version)
}

func TestGet_Unknown(t *testing.T) {
	_, err := run(t, "get", "nope")
	assert.ErrorIs(t, err, container.ErrNotFound)
}

func TestGet_NeedsOneArg(t *testing.T) {
	_, err := run(t, "get")
	assert.Error(t, err)
}

func TestList_BadDefinitions(t *testing.T) {
	_, err := run(t, "--definitions", "beans.json", "list")
	assert.Error(t, err)
}
