package maincmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/mna/tin/internal/maincmd"
	"github.com/stretchr/testify/require"
)

func writeSrc(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.tin")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRunFilePrintsFinalStack(t *testing.T) {
	path := writeSrc(t, "1 2 +")
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}

	err := maincmd.RunFile(context.Background(), stdio, "", 0, 0, false, path)
	require.NoError(t, err)
	require.Equal(t, "3\n", out.String())
}

func TestRunFileMaxStepsAborts(t *testing.T) {
	path := writeSrc(t, "∇")
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}

	err := maincmd.RunFile(context.Background(), stdio, "", 1000, 0, false, path)
	require.Error(t, err)
}

func TestRunFileMaxRecursionDepthAborts(t *testing.T) {
	// a generous step budget but a tight recursion bound: the
	// RecursionLimitExceeded error must fire before the step counter does.
	path := writeSrc(t, "∇")
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}

	err := maincmd.RunFile(context.Background(), stdio, "", 1000000, 5, false, path)
	require.Error(t, err)
}

func TestRunFileParsesCommaSeparatedInput(t *testing.T) {
	path := writeSrc(t, "+")
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}

	err := maincmd.RunFile(context.Background(), stdio, "1,2", 0, 0, false, path)
	require.NoError(t, err)
	require.Equal(t, "3\n", out.String())
}

func TestTokenizeFilePrintsTokenStream(t *testing.T) {
	path := writeSrc(t, "1 + 2")
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}

	err := maincmd.TokenizeFile(context.Background(), stdio, path)
	require.NoError(t, err)
	require.Contains(t, out.String(), "literal")
	require.Contains(t, out.String(), "intrinsic")
}
