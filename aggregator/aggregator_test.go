package aggregator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/homemesh/core"
)

func TestAggregator_AllSuccess(t *testing.T) {
	a := New()

	result, err := a.Aggregate([]core.AgentOutcome{
		core.SuccessOutcome("light-agent", "lights dimmed"),
		core.SuccessOutcome("music-agent", "playing jazz"),
	})

	require.NoError(t, err)
	assert.Equal(t, "lights dimmed\nplaying jazz", result.Payload)
	assert.Empty(t, result.Warnings)
}

func TestAggregator_PartialFailure(t *testing.T) {
	a := New()

	result, err := a.Aggregate([]core.AgentOutcome{
		core.SuccessOutcome("light-agent", "lights dimmed"),
		core.TimedOutOutcome("music-agent", core.ErrAgentTimedOut),
	})

	require.NoError(t, err)
	assert.Equal(t, "lights dimmed", result.Payload)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "music-agent", result.Warnings[0].AgentID)
	assert.Equal(t, core.StatusTimedOut, result.Warnings[0].Status)
	assert.Contains(t, result.Warnings[0].Detail, "timed out")
}

func TestAggregator_TotalFailure(t *testing.T) {
	a := New()

	outcomes := []core.AgentOutcome{
		core.FailedOutcome("light-agent", errors.New("connection refused")),
		core.TimedOutOutcome("music-agent", core.ErrAgentTimedOut),
	}
	result, err := a.Aggregate(outcomes)

	assert.Nil(t, result)
	var aggErr *core.AggregateError
	require.ErrorAs(t, err, &aggErr)
	assert.Equal(t, outcomes, aggErr.Outcomes)
}

func TestAggregator_SkippedBecomesWarning(t *testing.T) {
	a := New()

	result, err := a.Aggregate([]core.AgentOutcome{
		core.SuccessOutcome("light-agent", "lights dimmed"),
		{AgentID: "music-agent", Status: core.StatusSkipped},
	})

	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, core.StatusSkipped, result.Warnings[0].Status)
}

func TestAggregator_EmptyOutcomes(t *testing.T) {
	a := New()

	_, err := a.Aggregate(nil)

	assert.Error(t, err)
}

func TestAggregator_Deterministic(t *testing.T) {
	a := New()
	outcomes := []core.AgentOutcome{
		core.SuccessOutcome("light-agent", "lights dimmed"),
		core.FailedOutcome("music-agent", errors.New("boom")),
		core.SuccessOutcome("climate-agent", "21 degrees"),
	}

	first, err := a.Aggregate(outcomes)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := a.Aggregate(outcomes)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAggregator_CustomStrategy(t *testing.T) {
	a := New(func(o *Options) {
		o.Strategy = NewJSONMerge()
	})

	result, err := a.Aggregate([]core.AgentOutcome{
		core.SuccessOutcome("light-agent", `{"lights":"off"}`),
		core.SuccessOutcome("music-agent", `{"music":"paused"}`),
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"lights":"off","music":"paused"}`, result.Payload)
}
