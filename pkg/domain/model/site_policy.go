package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// SitePolicy is per-site configuration: the known sections, shifts and
// roles, the site-local timezone used for daily keys and report labels, and
// the safety score weights.
type SitePolicy struct {
	Name     string       `toml:"name"`
	Timezone string       `toml:"timezone"`
	Sections []string     `toml:"sections"`
	Shifts   []string     `toml:"shifts"`
	Roles    []string     `toml:"roles"`
	Weights  ScoreWeights `toml:"score_weights"`
}

// DefaultSitePolicy returns the policy used when no site file is configured
func DefaultSitePolicy() *SitePolicy {
	return &SitePolicy{
		Name:     "default",
		Timezone: "UTC",
		Shifts:   []string{"day", "night"},
		Roles:    []string{"miner", "supervisor", "admin"},
		Weights:  DefaultScoreWeights(),
	}
}

// Validate checks the policy is usable
func (p *SitePolicy) Validate() error {
	if _, err := time.LoadLocation(p.Timezone); err != nil {
		return goerr.Wrap(err, "invalid site timezone", goerr.V("timezone", p.Timezone))
	}
	if p.Weights.Critical < 0 || p.Weights.High < 0 || p.Weights.Medium < 0 || p.Weights.Low < 0 {
		return goerr.New("score weights must not be negative")
	}
	return nil
}

// Location resolves the site-local timezone
func (p *SitePolicy) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid site timezone", goerr.V("timezone", p.Timezone))
	}
	return loc, nil
}
