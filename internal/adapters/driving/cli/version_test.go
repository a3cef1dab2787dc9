package cli

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withVersion sets the build version for one test.
func withVersion(t *testing.T, v string) {
	t.Helper()
	saved := version
	version = v
	t.Cleanup(func() {
		version = saved
		versionShort = false
	})
}

func TestVersionCmd_Full(t *testing.T) {
	withVersion(t, "1.2.0")

	out, err := execute(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "skillgap 1.2.0")
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
	assert.Contains(t, out, runtime.Version())
}

func TestVersionCmd_Short(t *testing.T) {
	withVersion(t, "1.2.0")

	out, err := execute(t, nil, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.0\n", out)
}

func TestVersionCmd_DevByDefault(t *testing.T) {
	withVersion(t, "dev")

	out, err := execute(t, nil, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	withVersion(t, "dev")

	_, err := execute(t, nil, "version", "extra")
	assert.Error(t, err)
}
