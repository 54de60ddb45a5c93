package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordCmd(t *testing.T) {
	cmd := HashPasswordCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("s3nha\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--cost", "4"})
	require.NoError(t, cmd.Execute())

	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3nha")))
}

func TestHashPasswordCmdRejectsEmpty(t *testing.T) {
	cmd := HashPasswordCmd()
	cmd.SetIn(strings.NewReader("\n"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	require.Error(t, cmd.Execute())
}
