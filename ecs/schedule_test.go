package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScheduleRunsStagesInOrder(t *testing.T) {
	var order []string
	s := NewSchedule()
	s.AddStage("first", NewSequenceStage())
	s.AddStageAfter("first", "second", NewSequenceStage())
	s.AddStageAfter("second", "third", NewSequenceStage())

	s.AddSystemToStage("first", NewSystem("f", func(w *World, c *CommandBuffer) { order = append(order, "first") }))
	s.AddSystemToStage("second", NewSystem("s", func(w *World, c *CommandBuffer) { order = append(order, "second") }))
	s.AddSystemToStage("third", NewSystem("t", func(w *World, c *CommandBuffer) { order = append(order, "third") }))

	s.Run(NewWorld())
	require.Equal(t, []string{"first", "second", "third"}, order)
}

func TestScheduleAddStageBeforeInsertsAhead(t *testing.T) {
	var order []string
	s := NewSchedule()
	s.AddStage("b", NewSequenceStage())
	s.AddStageBefore("b", "a", NewSequenceStage())
	s.AddStageAfter("b", "c", NewSequenceStage())

	s.AddSystemToStage("a", NewSystem("a", func(w *World, c *CommandBuffer) { order = append(order, "a") }))
	s.AddSystemToStage("b", NewSystem("b", func(w *World, c *CommandBuffer) { order = append(order, "b") }))
	s.AddSystemToStage("c", NewSystem("c", func(w *World, c *CommandBuffer) { order = append(order, "c") }))

	s.Run(NewWorld())
	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestScheduleDuplicateStageLabelPanics(t *testing.T) {
	s := NewSchedule()
	s.AddStage("first", NewSequenceStage())
	require.Panics(t, func() { s.AddStage("first", NewSequenceStage()) })
}

func TestScheduleUnknownTargetLabelPanics(t *testing.T) {
	s := NewSchedule()
	require.Panics(t, func() { s.AddStageAfter("missing", "new", NewSequenceStage()) })
}

func TestScheduleUnknownStageForSystemPanics(t *testing.T) {
	s := NewSchedule()
	require.Panics(t, func() {
		s.AddSystemToStage("missing", NewSystem("x", func(w *World, c *CommandBuffer) {}))
	})
}
