package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"chartdeck/internal/config"
	"chartdeck/internal/render"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	config.RegisterFlags(cmd.Flags())
	args = append(args, "--log-dir", filepath.Join(t.TempDir(), "logs"))
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestSubcommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"list", "export", "mcp"})
}

func TestRendererNoneIsNil(t *testing.T) {
	a, err := setup(testCommand(t, "--renderer", "none"), false)
	require.NoError(t, err)
	defer a.close()

	r, err := a.renderer()
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestRendererTerminal(t *testing.T) {
	a, err := setup(testCommand(t, "--renderer", "terminal"), false)
	require.NoError(t, err)
	defer a.close()

	r, err := a.renderer()
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, render.NameTerminal, r.Name())
	assert.True(t, a.surface().Terminal)
}

func TestSetupRejectsBadVariant(t *testing.T) {
	_, err := setup(testCommand(t, "--variant", "huge"), false)
	var cerr *config.ConfigError
	assert.ErrorAs(t, err, &cerr)
}

func TestListCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"list", "--variant", "simple", "--renderer", "terminal",
		"--log-dir", filepath.Join(t.TempDir(), "logs")})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.Contains(out.String(), "CHARTDECK CATALOG: SIMPLE"))
}
