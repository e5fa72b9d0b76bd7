package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEngineWith(t *testing.T, script string) *Engine {
	t.Helper()
	dir := t.TempDir()
	if script != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "balance.lua"), []byte(script), 0o644))
	}
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestHooksFromScript(t *testing.T) {
	e := newEngineWith(t, `
function spawn_budget(wave)
  return 5 * wave
end

function health_scale(wave)
  return 1 + 0.5 * (wave - 1)
end

function weight_scale(wave, type_id)
  if type_id == "brute" and wave < 3 then
    return 0
  end
  return 1
end
`)

	assert.Equal(t, 5, e.SpawnBudget(1))
	assert.Equal(t, 15, e.SpawnBudget(3))
	assert.InDelta(t, 1.5, e.HealthScale(2), 1e-9)
	assert.Zero(t, e.WeightScale(1, "brute"))
	assert.Equal(t, 1.0, e.WeightScale(3, "brute"))
	assert.Equal(t, 1.0, e.WeightScale(1, "grunt"))
}

func TestMissingHooksFallBack(t *testing.T) {
	e := newEngineWith(t, "")

	assert.Equal(t, 8, e.SpawnBudget(1))
	assert.Equal(t, 12, e.SpawnBudget(2))
	assert.InDelta(t, 1.15, e.HealthScale(2), 1e-9)
	assert.Equal(t, 1.0, e.WeightScale(4, "grunt"))
}

func TestMissingDirectoryIsNotAnError(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "absent"), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, 8, e.SpawnBudget(1))
}

func TestScriptErrorFallsBack(t *testing.T) {
	e := newEngineWith(t, `
function spawn_budget(wave)
  error("boom")
end

function health_scale(wave)
  return "not a number"
end
`)

	assert.Equal(t, 8, e.SpawnBudget(1), "runtime error uses built-in balance")
	assert.InDelta(t, 1.0, e.HealthScale(1), 1e-9, "non-numeric return uses built-in balance")
}

func TestHookResultsClamped(t *testing.T) {
	e := newEngineWith(t, `
function spawn_budget(wave)
  return 0
end

function health_scale(wave)
  return -2
end

function weight_scale(wave, type_id)
  return -5
end
`)

	assert.Equal(t, 1, e.SpawnBudget(1), "budget floor is one")
	assert.Equal(t, 1.0, e.HealthScale(1), "non-positive scale resets to one")
	assert.Zero(t, e.WeightScale(1, "grunt"), "negative weight clamps to zero")
}

func TestBrokenScriptFailsLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.lua"), []byte("function ("), 0o644))

	_, err := NewEngine(dir, zap.NewNop())
	assert.Error(t, err)
}
