package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Site holds the CLI flag for the site policy file
type Site struct {
	path string
}

// Flags returns CLI flags for site configuration
func (s *Site) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "site-config",
			Usage:       "Path to the site policy TOML file (sections, shifts, roles, score weights)",
			Sources:     cli.EnvVars("MINESAFE_SITE_CONFIG"),
			Destination: &s.path,
		},
	}
}

// Configure loads the site policy. Without a file the default policy is
// used. Weights omitted from the file fall back to the defaults rather
// than zero, so a file that only lists sections does not disable scoring.
func (s *Site) Configure() (*model.SitePolicy, error) {
	policy := model.DefaultSitePolicy()
	if s.path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read site config", goerr.V("path", s.path))
	}

	if err := toml.Unmarshal(data, policy); err != nil {
		return nil, goerr.Wrap(err, "failed to parse site config", goerr.V("path", s.path))
	}

	zero := model.ScoreWeights{}
	if policy.Weights == zero {
		policy.Weights = model.DefaultScoreWeights()
	}

	if err := policy.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid site config", goerr.V("path", s.path))
	}
	return policy, nil
}
