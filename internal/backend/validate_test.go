package backend_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adminlayers/gcadm/internal/api"
	"github.com/adminlayers/gcadm/internal/backend"
	"github.com/adminlayers/gcadm/internal/simulator"
)

func TestValidateSimulatorComplete(t *testing.T) {
	missing := backend.Validate(simulator.New())
	assert.Empty(t, missing)
}

func TestValidateLiveComplete(t *testing.T) {
	missing := backend.Validate(backend.NewLive(api.NewClient("http://example.invalid", nil, nil)))
	assert.Empty(t, missing)
}

func TestValidateNil(t *testing.T) {
	missing := backend.Validate(nil)
	assert.Contains(t, missing, "users.Get")
	assert.Contains(t, missing, "routing.RemoveUserSkill")
}

// partialBackend has users and groups but no queues or routing.
type partialBackend struct{}

func (partialBackend) Users() backend.Users   { return simulator.New().Users() }
func (partialBackend) Groups() backend.Groups { return simulator.New().Groups() }

func TestValidatePartialBackend(t *testing.T) {
	missing := backend.Validate(partialBackend{})

	assert.NotEmpty(t, missing)
	for _, m := range missing {
		assert.NotContains(t, m, "users.")
		assert.NotContains(t, m, "groups.")
	}
	assert.Contains(t, missing, "queues.Get")
	assert.Contains(t, missing, "routing.Skills")
}

// stubRouting is missing most of the routing surface.
type stubRouting struct{}

func (stubRouting) Skills(context.Context) ([]any, error) { return nil, nil }

type mostlyComplete struct {
	*simulator.Simulator
}

func (mostlyComplete) Routing() stubRouting { return stubRouting{} }

func TestValidateDetectsMissingMethods(t *testing.T) {
	missing := backend.Validate(mostlyComplete{simulator.New()})

	assert.Contains(t, missing, "routing.Skill")
	assert.Contains(t, missing, "routing.AddUserSkill")
	assert.NotContains(t, missing, "users.Get")
}
