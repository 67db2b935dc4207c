package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Thireb/AI-agent-email-generator/internal/pipeline"
)

func newRunTestCommand(t *testing.T) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "run"}
	cmd.Flags().StringP("posting-file", "p", "", "")
	cmd.Flags().BoolP("auto-approve", "y", false, "")
	return cmd
}

func TestResolvePostingFlagWinsOverConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posting.txt")
	require.NoError(t, os.WriteFile(path, []byte("Backend Engineer at Acme"), 0o600))

	cmd := newRunTestCommand(t)
	require.NoError(t, cmd.Flags().Set("posting-file", path))

	config := &Config{Posting: &PostingConfig{Text: "inline text"}}

	raw, err := resolvePosting(cmd, config)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer at Acme", raw.Text)
	assert.Equal(t, path, raw.Source)
}

func TestResolvePostingInlineText(t *testing.T) {
	cmd := newRunTestCommand(t)
	config := &Config{Posting: &PostingConfig{Text: "inline text"}}

	raw, err := resolvePosting(cmd, config)
	require.NoError(t, err)
	assert.Equal(t, "inline text", raw.Text)
	assert.Equal(t, "config", raw.Source)
}

func TestResolvePostingErrors(t *testing.T) {
	cmd := newRunTestCommand(t)

	_, err := resolvePosting(cmd, &Config{})
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("   \n"), 0o600))
	require.NoError(t, cmd.Flags().Set("posting-file", empty))

	_, err = resolvePosting(cmd, &Config{})
	assert.Error(t, err)
}

func TestHandleOutcomeSuccess(t *testing.T) {
	cmd := newRunTestCommand(t)
	run := &pipeline.Run{
		Attempts: []*pipeline.Attempt{{}},
		Outcome:  &pipeline.Outcome{Status: pipeline.StatusSuccess, Email: "Dear Hiring Manager"},
	}

	assert.NoError(t, handleOutcome(cmd, zap.NewNop(), run))
}

func TestHandleOutcomeExhaustedWithAutoApprove(t *testing.T) {
	cmd := newRunTestCommand(t)
	require.NoError(t, cmd.Flags().Set("auto-approve", "true"))

	run := &pipeline.Run{
		Attempts: []*pipeline.Attempt{{}, {}, {}},
		Outcome: &pipeline.Outcome{
			Status: pipeline.StatusExhaustedRetries,
			Email:  "best effort draft",
			Reason: "no draft passed review within the attempt budget",
		},
	}

	assert.NoError(t, handleOutcome(cmd, zap.NewNop(), run))
}

func TestHandleOutcomeFailed(t *testing.T) {
	cmd := newRunTestCommand(t)
	run := &pipeline.Run{
		Attempts: []*pipeline.Attempt{{Err: "generation unavailable"}},
		Outcome:  &pipeline.Outcome{Status: pipeline.StatusFailed, Reason: "generation unavailable"},
	}

	err := handleOutcome(cmd, zap.NewNop(), run)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation unavailable")
}
