package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.Solver.WordLength)
	assert.Equal(t, 3, cfg.Rank.MinAttempt)
	assert.Equal(t, 30*time.Second, cfg.Rank.Timeout())
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	// the written file loads back to the same values
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[solver]
word_length = 6
exclusion_policy = "reject"

[rank]
min_attempt = 1
model = "gpt-4o-mini"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Solver.WordLength)
	assert.Equal(t, "reject", cfg.Solver.ExclusionPolicy)
	assert.Equal(t, ",", cfg.Solver.Delimiter)
	assert.Equal(t, 1, cfg.Rank.MinAttempt)
	assert.Equal(t, "gpt-4o-mini", cfg.Rank.Model)
	assert.Equal(t, 5, cfg.Rank.TopN)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	// word_length has the wrong type so the struct decode fails; the rest
	// of the file is still used
	path := writeConfig(t, `
[solver]
word_length = "five"
duplicate_policy = "reject"

[cli]
color = false
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Solver.WordLength)
	assert.Equal(t, "reject", cfg.Solver.DuplicatePolicy)
	assert.False(t, cfg.CLI.Color)
}

func TestLoadConfigPartialRecoveryNestedKeys(t *testing.T) {
	path := writeConfig(t, `
[rank]
model = "gpt-4o-mini"
top_n = "three"
min_attempt = 2

[server]
max_words = 20
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", cfg.Rank.Model)
	assert.Equal(t, 5, cfg.Rank.TopN)
	assert.Equal(t, 2, cfg.Rank.MinAttempt)
	assert.Equal(t, 20, cfg.Server.MaxWords)
}

func TestLoadConfigPartialRecoveryStillValidates(t *testing.T) {
	path := writeConfig(t, `
[solver]
word_length = "five"
delimiter = "-"
`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		content string
		desc    string
	}{
		{"[solver]\nword_length = 0\n", "zero word length"},
		{"[solver]\nexclusion_policy = \"strict\"\n", "unknown exclusion policy"},
		{"[solver]\nduplicate_policy = \"merge\"\n", "unknown duplicate policy"},
		{"[rank]\nbase_url = \"not a url\"\n", "bad base url"},
		{"[rank]\ntop_n = 0\n", "zero top n"},
		{"[solver]\ndelimiter = \"-\"\n", "minus delimiter"},
		{"[solver]\ndelimiter = \" \"\n", "space delimiter"},
		{"[solver]\ndelimiter = \"+\"\n", "plus delimiter"},
		{"[solver]\ndelimiter = \",,\"\n", "two character delimiter"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestValidateDelimiter(t *testing.T) {
	for _, d := range []string{"-", " ", "\t", "+", "E", "4", ",,"} {
		cfg := DefaultConfig()
		cfg.Solver.Delimiter = d
		assert.Error(t, cfg.Validate(), "delimiter %q", d)
	}

	cfg := DefaultConfig()
	cfg.Solver.Delimiter = ";"
	assert.NoError(t, cfg.Validate())
}

func TestInitConfigFallsBackOnInvalidFile(t *testing.T) {
	path := writeConfig(t, "[solver]\nword_length = -3\n")
	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeConfig(t, "[dict]\npath = \"/srv/words.txt\"\n")
	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "/srv/words.txt", cfg.Dict.Path)
}

func TestRankAPIKey(t *testing.T) {
	t.Setenv("WORDSOLVE_TEST_KEY", "sk-123")
	r := RankConfig{APIKeyEnv: "WORDSOLVE_TEST_KEY"}
	assert.Equal(t, "sk-123", r.APIKey())
	assert.Equal(t, "", RankConfig{}.APIKey())
}
