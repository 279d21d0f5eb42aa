package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/ciphersafe/internal/client/guard"
	"github.com/dmitrijs2005/ciphersafe/internal/client/session"
	"github.com/dmitrijs2005/ciphersafe/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	email    string
	password string
	// seen is the slice handed to the service, checked for wiping.
	seen []byte
	err  error
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) error {
	f.email, f.password, f.seen = email, string(password), password
	return f.err
}

func (f *fakeAuth) Register(_ context.Context, email string, password []byte) error {
	f.email, f.password, f.seen = email, string(password), password
	return f.err
}

type recordingNotifier struct{ messages []string }

func (n *recordingNotifier) Success(msg string) { n.messages = append(n.messages, "ok: "+msg) }
func (n *recordingNotifier) Error(msg string)   { n.messages = append(n.messages, "err: "+msg) }

type nopIndicator struct{}

func (nopIndicator) Start(string) {}
func (nopIndicator) Stop()        {}

func newAuthApp(f *fakeAuth) *App {
	return &App{
		authService: f,
		reader:      bufio.NewReader(strings.NewReader("")),
		out:         &bytes.Buffer{},
	}
}

func TestRegister_PromptsAndWipesPassword(t *testing.T) {
	stubInputs(t, "alice@example.org", "secret-pass")
	f := &fakeAuth{}
	a := newAuthApp(f)

	require.NoError(t, a.Register(context.Background()))

	assert.Equal(t, "alice@example.org", f.email)
	assert.Equal(t, "secret-pass", f.password)
	assert.Equal(t, make([]byte, len("secret-pass")), f.seen)
}

func TestLogin_UsesGivenEmailWithoutPrompt(t *testing.T) {
	origST := getSimpleText
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) {
		t.Fatal("email prompt must not be shown")
		return "", nil
	}
	t.Cleanup(func() { getSimpleText = origST })
	origGP := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte("password1"), nil }
	t.Cleanup(func() { getPassword = origGP })

	f := &fakeAuth{}
	a := newAuthApp(f)

	require.NoError(t, a.login(context.Background(), "bob@example.org"))
	assert.Equal(t, "bob@example.org", f.email)
}

func TestLogin_PropagatesErrors(t *testing.T) {
	stubInputs(t, "alice@example.org", "password1")
	f := &fakeAuth{err: errors.New("boom")}
	a := newAuthApp(f)

	assert.EqualError(t, a.Login(context.Background()), "boom")
}

func TestLogin_PasswordPromptError(t *testing.T) {
	origGP := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return nil, io.ErrUnexpectedEOF }
	t.Cleanup(func() { getPassword = origGP })

	f := &fakeAuth{}
	a := newAuthApp(f)

	assert.ErrorIs(t, a.login(context.Background(), "x@example.org"), io.ErrUnexpectedEOF)
	assert.Empty(t, f.email)
}

func TestLogout_ClearsSessionAndNavigates(t *testing.T) {
	store := session.NewStore()
	store.Set("token")
	router := NewRouter(common.DashboardPath)
	n := &recordingNotifier{}
	g := guard.New(store, router, n, nopIndicator{})
	g.MarkHydrated()

	a := &App{store: store, router: router, guard: g}
	require.NoError(t, a.Logout(context.Background()))

	assert.False(t, store.Authenticated())
	assert.Equal(t, common.LoginPath, router.Current())
	assert.Equal(t, []string{"ok: Logged out"}, n.messages)
}

func TestRouter_Navigate(t *testing.T) {
	r := NewRouter(common.LoginPath)
	assert.Equal(t, common.LoginPath, r.Current())
	r.Navigate(common.DashboardPath)
	assert.Equal(t, common.DashboardPath, r.Current())
}
