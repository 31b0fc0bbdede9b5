package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/minesafe-lab/minesafe/pkg/cli/config"
)

func TestSiteConfigure(t *testing.T) {
	t.Run("no file yields defaults", func(t *testing.T) {
		var site config.Site
		policy, err := site.Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, policy.Timezone).Equal("UTC")
		gt.Value(t, policy.Weights.Critical).Equal(15.0)
	})

	t.Run("file overrides sections and weights", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "site.toml")
		gt.NoError(t, os.WriteFile(path, []byte(`
name = "boddington"
timezone = "Australia/Perth"
sections = ["north-drift", "south-decline", "crusher"]
shifts = ["day", "night"]
roles = ["miner", "supervisor", "admin", "geologist"]

[score_weights]
critical = 25.0
high = 10.0
medium = 5.0
low = 1.0
checklist_bonus = 10.0
`), 0o600))

		site := config.NewSiteForTest(path)
		policy, err := site.Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, policy.Name).Equal("boddington")
		gt.Value(t, policy.Timezone).Equal("Australia/Perth")
		gt.Array(t, policy.Sections).Length(3)
		gt.Value(t, policy.Weights.Critical).Equal(25.0)
		gt.Value(t, policy.Weights.ChecklistBonus).Equal(10.0)

		loc, err := policy.Location()
		gt.NoError(t, err).Required()
		gt.Value(t, loc.String()).Equal("Australia/Perth")
	})

	t.Run("file without weights keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "site.toml")
		gt.NoError(t, os.WriteFile(path, []byte(`
name = "minimal"
timezone = "UTC"
sections = ["pit"]
`), 0o600))

		site := config.NewSiteForTest(path)
		policy, err := site.Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, policy.Weights.Critical).Equal(15.0)
	})

	t.Run("bad timezone fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "site.toml")
		gt.NoError(t, os.WriteFile(path, []byte(`timezone = "Mars/Olympus"`), 0o600))

		site := config.NewSiteForTest(path)
		_, err := site.Configure()
		gt.Value(t, err).NotNil()
	})
}
