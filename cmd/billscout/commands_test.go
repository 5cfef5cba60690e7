package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/billscout/internal/classification"
	"github.com/Veraticus/billscout/internal/common"
	"github.com/Veraticus/billscout/internal/config"
	"github.com/Veraticus/billscout/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupCommandEnv points the database at a temp file and restores viper afterwards.
func setupCommandEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	viper.Set("database.path", filepath.Join(dir, "billscout.db"))
	t.Cleanup(viper.Reset)
	return dir
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestClassifyCommand(t *testing.T) {
	setupCommandEnv(t)

	out, err := runCommand(t, classifyCmd(), "Monthly bill", "--company", "Comcast", "--description", "internet service", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "Internet/Telecom")
	assert.Contains(t, out, "Saved as bill #1")

	out, err = runCommand(t, historyCmd(), "bills")
	require.NoError(t, err)
	assert.Contains(t, out, "Comcast")
	assert.Contains(t, out, "All-time totals")
}

func TestClassifyCommand_NoInput(t *testing.T) {
	setupCommandEnv(t)

	_, err := runCommand(t, classifyCmd())
	require.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Contains(t, common.UserMessage(err), "provide bill text")
}

func TestClassifyBatchCommand(t *testing.T) {
	dir := setupCommandEnv(t)
	path := writeFile(t, dir, "bills.json", `[
		{"text": "Monthly bill", "company_name": "Comcast", "description": "internet service"},
		{"text": "nothing recognizable"}
	]`)

	out, err := runCommand(t, classifyBatchCmd(), path, "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "Bills classified: 2")
	assert.Contains(t, out, "Internet/Telecom: 1")
	assert.Contains(t, out, "Other: 1")

	store, err := initStorage(context.Background())
	require.NoError(t, err)
	counts, err := store.CountBillsByCategory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Internet/Telecom": 1, model.CategoryOther: 1}, counts)
	require.NoError(t, store.Close())

	empty := writeFile(t, dir, "empty.json", `[]`)
	_, err = runCommand(t, classifyBatchCmd(), empty)
	require.ErrorIs(t, err, common.ErrNoBills)
}

func TestTagsCommand(t *testing.T) {
	setupCommandEnv(t)

	out, err := runCommand(t, tagsCmd(), "Internet/Telecom", "Mobile Phone")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "internet-telecom mobile-phone"))
}

func TestRankCommand(t *testing.T) {
	dir := setupCommandEnv(t)
	path := writeFile(t, dir, "places.json", `{"places": [
		{"id": "far", "name": "Far Away", "location": {"lat": 41.0, "lon": -75.0}},
		{"id": "near", "name": "Next Door", "price_level": 1, "location": {"lat": 40.0, "lon": -75.0}},
		{"id": "lost", "name": "No Location"}
	]}`)

	out, err := runCommand(t, rankCmd(), path, "--lat", "40", "--lon", "-75", "--sort", "distance", "--json", "--save", "--query", "isp")
	require.NoError(t, err)

	var places []model.ScoredPlace
	require.NoError(t, json.Unmarshal([]byte(out), &places))
	require.Len(t, places, 2)
	assert.Equal(t, "near", places[0].ID)
	assert.Equal(t, 85, places[0].PriceScore)
	assert.Equal(t, "far", places[1].ID)

	out, err = runCommand(t, historyCmd(), "places")
	require.NoError(t, err)
	assert.Contains(t, out, "isp")

	out, err = runCommand(t, historyCmd(), "places", "--id", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Next Door")
	assert.Contains(t, out, "Far Away")

	_, err = runCommand(t, historyCmd(), "places", "--id", "99")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestRankCommand_Errors(t *testing.T) {
	dir := setupCommandEnv(t)
	path := writeFile(t, dir, "places.json", `[{"id": "a", "location": {"lat": 1, "lon": 1}}]`)

	_, err := runCommand(t, rankCmd(), path, "--lat", "1", "--lon", "1", "--sort", "vibes")
	require.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = runCommand(t, rankCmd(), path, "--lat", "1")
	require.Error(t, err)

	none := writeFile(t, dir, "none.json", `[{"id": "a"}]`)
	_, err = runCommand(t, rankCmd(), none, "--lat", "1", "--lon", "1")
	require.ErrorIs(t, err, common.ErrNoCandidates)
}

func TestRulesCommand_YAMLRoundTrip(t *testing.T) {
	dir := setupCommandEnv(t)

	out, err := runCommand(t, rulesCmd(), "--yaml")
	require.NoError(t, err)

	decoded, err := config.DecodeRuleSet(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, classification.DefaultRules(), decoded)

	// The exported table is accepted back as a rules file.
	rulesPath := writeFile(t, dir, "rules.yaml", out)
	viper.Set("classification.rules_file", rulesPath)

	out, err = runCommand(t, rulesCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Utilities")
}

func TestRulesCommand_InvalidFile(t *testing.T) {
	dir := setupCommandEnv(t)
	viper.Set("classification.rules_file", writeFile(t, dir, "rules.yaml", "rules: []\n"))

	_, err := runCommand(t, rulesCmd())
	require.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestHistoryCommand_RequiresSubcommand(t *testing.T) {
	setupCommandEnv(t)

	_, err := runCommand(t, historyCmd())
	require.ErrorIs(t, err, common.ErrUnknownCommand)
}

func TestMigrateCommand(t *testing.T) {
	setupCommandEnv(t)

	out, err := runCommand(t, migrateCmd(), "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema version 0 of 2")

	out, err = runCommand(t, migrateCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Database migrations completed")

	out, err = runCommand(t, migrateCmd(), "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema version 2 of 2")
}
