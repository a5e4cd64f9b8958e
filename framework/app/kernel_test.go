package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-nutrition/framework/app"
	"github.com/km-arc/go-nutrition/framework/config"
	"github.com/km-arc/go-nutrition/framework/container"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Nutrition", Env: "testing", Port: "0"},
		Log: config.LogConfig{Level: "info", Format: "json"},
	}
}

func TestNew_CoreServices(t *testing.T) {
	views := fstest.MapFS{
		"layout.html": {Data: []byte(`{{template "content" .}}`)},
		"home.html":   {Data: []byte(`{{define "content"}}home{{end}}`)},
	}
	a := app.New(app.WithConfig(testConfig()), app.WithLogOutput(io.Discard), app.WithViews(views, "layout.html"))
	a.Boot()

	assert.True(t, a.IsTesting())
	assert.False(t, a.IsProduction())
	assert.Same(t, a, container.Resolve[*app.Application](a.Container, "app"))
	assert.NotNil(t, a.Rules())
	assert.NotNil(t, a.Router())
	assert.True(t, a.Views().Has("home"))
}

func TestNew_WithoutViews(t *testing.T) {
	a := app.New(app.WithConfig(testConfig()), app.WithLogOutput(io.Discard))
	assert.False(t, a.Bound("view"))
}

func TestTerminate_ReverseOrderJoinsErrors(t *testing.T) {
	a := app.New(app.WithConfig(testConfig()), app.WithLogOutput(io.Discard))

	var order []int
	boom := errors.New("boom")
	a.Terminating(func() error { order = append(order, 1); return nil })
	a.Terminating(func() error { order = append(order, 2); return boom })

	assert.ErrorIs(t, a.Terminate(), boom)
	assert.Equal(t, []int{2, 1}, order)
	assert.NoError(t, a.Terminate(), "callbacks run once")
}

func TestServeListener_GracefulShutdown(t *testing.T) {
	var logs bytes.Buffer
	a := app.New(app.WithConfig(testConfig()), app.WithLogOutput(&logs))
	a.Router().Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})

	closed := make(chan struct{})
	a.Terminating(func() error { close(closed); return nil })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.ServeListener(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	<-closed
	assert.Contains(t, logs.String(), `"message":"listening"`)
	assert.Contains(t, logs.String(), `"message":"shutting down"`)
}
