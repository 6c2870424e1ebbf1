package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/sweetshop-server/internal/model"
)

type fakeCreator struct {
	got model.SignUpParams
	err error
}

func (f *fakeCreator) CreateAdmin(_ context.Context, p model.SignUpParams) (model.Account, error) {
	f.got = p
	if f.err != nil {
		return model.Account{}, f.err
	}
	return model.Account{ID: 1, Email: p.Email, Role: model.RoleAdmin, Status: model.StatusApproved}, nil
}

// stubTerminal makes every descriptor look like a terminal and replaces
// readPassword with a function returning answers in order. It returns the
// descriptors readPassword was called with.
func stubTerminal(t *testing.T, answers ...string) *[]int {
	t.Helper()
	origRead, origIsTerminal := readPassword, isTerminal
	t.Cleanup(func() {
		readPassword = origRead
		isTerminal = origIsTerminal
	})

	isTerminal = func(int) bool { return true }

	var fds []int
	i := 0
	readPassword = func(fd int) ([]byte, error) {
		fds = append(fds, fd)
		if i >= len(answers) {
			return nil, errors.New("no more input")
		}
		a := answers[i]
		i++
		return []byte(a), nil
	}
	return &fds
}

func TestRun_Usage(t *testing.T) {
	app := NewApp(&fakeCreator{}, strings.NewReader(""), &bytes.Buffer{})

	assert.ErrorIs(t, app.Run(context.Background(), nil), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"drop-db"}), ErrUsage)
}

func TestCreateAdmin_Flags(t *testing.T) {
	creator := &fakeCreator{}
	out := &bytes.Buffer{}
	app := NewApp(creator, strings.NewReader("s3cret\ns3cret\n"), out)

	err := app.Run(context.Background(), []string{"create-admin", "-name", "Root", "-email", "root@shop.test", "-contact", "100"})
	require.NoError(t, err)

	assert.Equal(t, model.SignUpParams{Name: "Root", Email: "root@shop.test", ContactNumber: "100", Password: "s3cret"}, creator.got)
	assert.Contains(t, out.String(), "Admin root@shop.test created with id 1")
}

func TestCreateAdmin_Prompts(t *testing.T) {
	creator := &fakeCreator{}
	out := &bytes.Buffer{}
	app := NewApp(creator, strings.NewReader("Root\nroot@shop.test\n100\npw\npw"), out)

	require.NoError(t, app.CreateAdmin(context.Background(), nil))
	assert.Equal(t, "Root", creator.got.Name)
	assert.Equal(t, "root@shop.test", creator.got.Email)
	assert.Equal(t, "100", creator.got.ContactNumber)
	assert.Equal(t, "pw", creator.got.Password)
	assert.Contains(t, out.String(), "Repeat password")
}

func TestCreateAdmin_PasswordFromTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})

	fds := stubTerminal(t, "s3cret", "s3cret")

	creator := &fakeCreator{}
	app := NewApp(creator, r, &bytes.Buffer{})

	err = app.CreateAdmin(context.Background(), []string{"-name", "R", "-email", "r@shop.test", "-contact", "1"})
	require.NoError(t, err)

	assert.Equal(t, "s3cret", creator.got.Password)
	assert.Equal(t, []int{int(r.Fd()), int(r.Fd())}, *fds)
}

func TestCreateAdmin_PasswordMismatch(t *testing.T) {
	creator := &fakeCreator{}
	app := NewApp(creator, strings.NewReader("one\ntwo\n"), &bytes.Buffer{})

	err := app.CreateAdmin(context.Background(), []string{"-name", "R", "-email", "r@shop.test", "-contact", "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "passwords do not match")
	assert.Empty(t, creator.got.Email)
}

func TestCreateAdmin_EmptyPassword(t *testing.T) {
	creator := &fakeCreator{}
	app := NewApp(creator, strings.NewReader("\n\n"), &bytes.Buffer{})

	err := app.CreateAdmin(context.Background(), []string{"-name", "R", "-email", "r@shop.test", "-contact", "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password must not be empty")
}

func TestCreateAdmin_MissingPasswordInput(t *testing.T) {
	app := NewApp(&fakeCreator{}, strings.NewReader(""), &bytes.Buffer{})

	err := app.CreateAdmin(context.Background(), []string{"-name", "R", "-email", "r@shop.test", "-contact", "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read password")
}

func TestCreateAdmin_CreatorFails(t *testing.T) {
	app := NewApp(&fakeCreator{err: model.ErrEmailTaken}, strings.NewReader("pw\npw\n"), &bytes.Buffer{})

	err := app.CreateAdmin(context.Background(), []string{"-name", "R", "-email", "r@shop.test", "-contact", "1"})
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}
