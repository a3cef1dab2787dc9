package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

func TestIngestCmd_Flags(t *testing.T) {
	flag := ingestCmd.Flags().Lookup("watch")
	require.NotNil(t, flag)
	assert.Equal(t, "w", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

func TestIngestCmd_BuildsStore(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, nil, "ingest")

	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 2 job description(s) and 1 CV(s)")
	assert.Contains(t, out, "Stored 3 chunk(s) in :memory:")
}

func TestIngestCmd_MissingJobsDir(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, os.RemoveAll(env.settings.Paths.JobsDir))

	_, err := execute(t, nil, "ingest")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "ingestion failed")
}

func TestIngestCmd_WithoutServices(t *testing.T) {
	prevApp, prevSettings := application, settingsService
	application, settingsService = nil, nil
	defer func() { application, settingsService = prevApp, prevSettings }()

	_, err := execute(t, nil, "ingest")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}
