package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
)

func TestAlert_Matching(t *testing.T) {
	alert := &model.Alert{
		TargetSections: []string{types.TargetAll},
		TargetRoles:    []string{"supervisor"},
	}

	t.Run("wildcard section matches any section", func(t *testing.T) {
		gt.Value(t, alert.MatchesSection("B")).Equal(true)
	})

	t.Run("role must be listed", func(t *testing.T) {
		gt.Value(t, alert.MatchesRole("supervisor")).Equal(true)
		gt.Value(t, alert.MatchesRole("operator")).Equal(false)
	})

	t.Run("empty filter matches everything", func(t *testing.T) {
		gt.Value(t, alert.MatchesSection("")).Equal(true)
		gt.Value(t, alert.MatchesRole("")).Equal(true)
	})

	t.Run("wildcard role", func(t *testing.T) {
		a := &model.Alert{TargetRoles: []string{types.TargetAll}}
		gt.Value(t, a.MatchesRole("operator")).Equal(true)
	})
}

func TestAlert_Acknowledge(t *testing.T) {
	alert := &model.Alert{ID: types.NewAlertID()}

	gt.Value(t, alert.Acknowledge("U100")).Equal(true)
	// Second acknowledgment by the same actor is a no-op.
	gt.Value(t, alert.Acknowledge("U100")).Equal(false)
	alert.Acknowledge("U200")

	gt.Array(t, alert.AcknowledgedBy).Length(2)
}

func TestAlert_IsExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("no expiry never expires", func(t *testing.T) {
		a := &model.Alert{}
		gt.Value(t, a.IsExpired(now)).Equal(false)
	})

	t.Run("past expiry", func(t *testing.T) {
		exp := now.Add(-time.Minute)
		a := &model.Alert{ExpiresAt: &exp}
		gt.Value(t, a.IsExpired(now)).Equal(true)
	})

	t.Run("expiry exactly now counts as expired", func(t *testing.T) {
		exp := now
		a := &model.Alert{ExpiresAt: &exp}
		gt.Value(t, a.IsExpired(now)).Equal(true)
	})
}
