package commands

import (
	"bytes"
	"context"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/toy-numeric/internal/config"
	"github.com/edp1096/toy-numeric/pkg/numerr"
)

func execute(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(config.WithConfig(context.Background(), cfg))
	return buf.String(), err
}

func TestNewVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand("1.2.3"), nil)
	require.NoError(t, err)
	assert.Contains(t, out, "toynum v1.2.3")
}

func TestRootCommands(t *testing.T) {
	tests := []struct {
		name    string
		cmd     func() *cobra.Command
		args    []string
		wantOut []string
	}{
		{
			name:    "bisection",
			cmd:     NewBisectionCommand,
			args:    []string{"x^3 - x - 1"},
			wantOut: []string{"bracket [1, 2]", "root: 1.325"},
		},
		{
			name:    "regula falsi with split args",
			cmd:     NewRegulaFalsiCommand,
			args:    []string{"x^3", "-", "x", "-", "1"},
			wantOut: []string{"f(x) = x^3 - x - 1", "root: 1.325"},
		},
		{
			name:    "secant",
			cmd:     NewSecantCommand,
			args:    []string{"--x0", "1", "--x1", "2", "x^3 - x - 1"},
			wantOut: []string{"seeds x0 = 1, x1 = 2", "root: 1.325"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.cmd(), nil, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRootCommand_Error(t *testing.T) {
	_, err := execute(t, NewBisectionCommand(), nil, "x^2 + 1")
	assert.ErrorIs(t, err, numerr.ErrBracketNotFound)

	_, err = execute(t, NewBisectionCommand(), nil)
	assert.Error(t, err)
}

func TestLinearCommand(t *testing.T) {
	cfg := config.Default()
	cfg.Output = "json"

	out, err := execute(t, NewLinearCommand(), cfg,
		"--row", "10 -1 2 6", "--row", "-1, 11, -1, 25", "--row", "2 -1 10 -11")
	require.NoError(t, err)
	assert.Contains(t, out, `"gauss_seidel"`)
	assert.Contains(t, out, `"converged": true`)

	_, err = execute(t, NewLinearCommand(), nil, "--row", "2 1 3", "--row", "1 2 x")
	require.Error(t, err)
	assert.ErrorIs(t, err, numerr.ErrConfiguration)
	assert.Contains(t, err.Error(), "row 2")
}

func TestLinearCommand_HugeMaxIter(t *testing.T) {
	cfg := config.Default()
	cfg.MaxIter = math.MaxInt / 2

	out, err := execute(t, NewLinearCommand(), cfg,
		"--method", "jacobi", "--row", "10 -1 2 6", "--row", "-1 11 -1 25", "--row", "2 -1 10 -11")
	require.NoError(t, err)
	assert.Contains(t, out, "converged: yes after 8 passes")
}

func TestLinearCommand_NonConvergence(t *testing.T) {
	cfg := config.Default()
	cfg.MaxIter = 3

	out, err := execute(t, NewLinearCommand(), cfg,
		"--method", "jacobi", "--row", "10 -1 2 6", "--row", "-1 11 -1 25", "--row", "2 -1 10 -11")
	assert.ErrorIs(t, err, numerr.ErrDidNotConverge)
	assert.Contains(t, out, "converged: no after 3 passes")
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cubic.deck")
	require.NoError(t, os.WriteFile(path, []byte("Cubic\n.method secant\n.equation x^3 - x - 1\n.seeds 1 2\n"), 0o644))

	cfg := config.Default()
	cfg.Output = "markdown"
	out, err := execute(t, NewRunCommand(), cfg, path)
	require.NoError(t, err)
	assert.Contains(t, out, "## Cubic")

	_, err = execute(t, NewRunCommand(), nil, filepath.Join(dir, "missing.deck"))
	assert.ErrorIs(t, err, numerr.ErrConfiguration)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, config.GetLogger(ctx)) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestCommandMetadata(t *testing.T) {
	for _, cmd := range []*cobra.Command{
		NewBisectionCommand(), NewRegulaFalsiCommand(), NewSecantCommand(),
		NewLinearCommand(), NewRunCommand(), NewServeCommand(), NewVersionCommand("x"),
	} {
		assert.NotEmpty(t, cmd.Short, cmd.Use)
		assert.NotEmpty(t, cmd.Long, cmd.Use)
		assert.False(t, strings.HasPrefix(cmd.Use, " "))
	}
}
