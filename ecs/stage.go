package ecs

// stagePolicy selects a Stage's run behaviour across repeated calls to
// Run, mirroring the original's SequenceExecutor/SequenceOnceExecutor
// split (spec §4.8).
type stagePolicy uint8

const (
	// stageSequence runs every system, in registration order, on every
	// call to Run.
	stageSequence stagePolicy = iota
	// stageSequenceOnce runs every system, in registration order, on the
	// first call to Run only; subsequent calls are no-ops. Used for
	// Startup-style stages.
	stageSequenceOnce
)

// Stage is an ordered list of systems sharing one run policy. Schedule
// composes stages into the overall tick order (spec §4.8).
type Stage struct {
	policy  stagePolicy
	systems []*System
	ran     bool
}

// NewSequenceStage returns a stage that runs its systems, in order, every
// time Run is called.
func NewSequenceStage() *Stage {
	return &Stage{policy: stageSequence}
}

// NewSequenceOnceStage returns a stage that runs its systems, in order,
// only on the first call to Run.
func NewSequenceOnceStage() *Stage {
	return &Stage{policy: stageSequenceOnce}
}

// AddSystem appends a system to the stage's run order and returns the
// stage for chaining.
func (s *Stage) AddSystem(system *System) *Stage {
	s.systems = append(s.systems, system)
	return s
}

// Run executes the stage's systems per its policy, then flushes each
// system's command buffer, in registration order, after every system in
// the stage has run (spec's resolved per-system, post-stage flush
// ordering — a system's deferred edits are never visible to a later
// system in the same stage run).
func (s *Stage) Run(world *World) {
	if s.policy == stageSequenceOnce && s.ran {
		return
	}
	s.ran = true

	for _, system := range s.systems {
		system.runOnce(world)
	}
	for _, system := range s.systems {
		system.flush(world)
	}
}
