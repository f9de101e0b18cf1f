package systems

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobSystemValidation(t *testing.T) {
	_, err := NewJobSystem(0, 1)
	assert.ErrorIs(t, err, ErrNoWorkers)

	_, err = NewJobSystem(1, -1)
	assert.ErrorIs(t, err, ErrNegativeChannelSize)
}

func TestJobSystemRunsEveryJob(t *testing.T) {
	js, err := NewJobSystem(4, 0)
	require.NoError(t, err)

	var completed, failed atomic.Int32
	boom := errors.New("boom")
	for i := 0; i < 20; i++ {
		fail := i%5 == 0
		require.NoError(t, js.Submit(JobTask{
			Name: "job",
			Run: func() error {
				if fail {
					return boom
				}
				return nil
			},
			OnComplete: func() { completed.Add(1) },
			OnFailure:  func(err error) { failed.Add(1) },
		}))
	}

	err = js.Shutdown()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(16), completed.Load())
	assert.Equal(t, int32(4), failed.Load())

	assert.NoError(t, js.Shutdown())
	assert.ErrorIs(t, js.Submit(JobTask{}), ErrJobSystemClosed)
}

func TestGenerateConfigs(t *testing.T) {
	configs, err := GenerateConfigs(
		func() (*resources.GeometryConfig, error) { return GenerateCubeConfig(1, 1, 1, 1, 1, "cube") },
		func() (*resources.GeometryConfig, error) { return GenerateSphereConfig(0.5, 8, 8, "sphere") },
	)
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, "cube", configs[0].Name)
	assert.Equal(t, "sphere", configs[1].Name)

	_, err = GenerateConfigs(
		func() (*resources.GeometryConfig, error) { return GenerateSphereConfig(1, 400, 400, "bad") },
	)
	assert.ErrorIs(t, err, core.ErrInvalidGeometry)

	_, err = GenerateConfigs()
	assert.ErrorIs(t, err, ErrNoWorkers)
}
