package ecs

// StageLabel names a stage within a Schedule. Plain strings are the
// common case; the standard labels below cover the default App pipeline.
type StageLabel string

// Standard stage labels, matching the shape of a conventional game/sim
// frame: one-time setup, then the steady-state per-tick pipeline.
const (
	StageBegin     StageLabel = "begin"
	StageStartup   StageLabel = "startup"
	StagePreUpdate StageLabel = "pre_update"
	StageUpdate    StageLabel = "update"
	StagePostUpdate StageLabel = "post_update"
	StageEnd       StageLabel = "end"
)

// Schedule orders a set of labelled stages and runs them, in order, every
// tick (spec §4.8, ported from the original's Schedule). Stage labels are
// unique; AddStage panics via FatalError(ErrDuplicateStageLabel) on a
// repeat, and AddStageBefore/After panic via
// FatalError(ErrUnknownStageLabel) if the anchor label is not registered.
type Schedule struct {
	stages     map[StageLabel]*Stage
	stageOrder []StageLabel
}

// NewSchedule returns an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{stages: make(map[StageLabel]*Stage)}
}

func (s *Schedule) indexOf(label StageLabel) int {
	for i, l := range s.stageOrder {
		if l == label {
			return i
		}
	}
	return -1
}

// AddStage appends stage at the end of the run order under label.
func (s *Schedule) AddStage(label StageLabel, stage *Stage) *Schedule {
	if _, exists := s.stages[label]; exists {
		panic(newFatalErrorf(ErrDuplicateStageLabel, "stage already exists: %s", label))
	}
	s.stages[label] = stage
	s.stageOrder = append(s.stageOrder, label)
	return s
}

// AddStageAfter inserts stage immediately after target in the run order.
func (s *Schedule) AddStageAfter(target, label StageLabel, stage *Stage) *Schedule {
	if _, exists := s.stages[label]; exists {
		panic(newFatalErrorf(ErrDuplicateStageLabel, "stage already exists: %s", label))
	}
	idx := s.indexOf(target)
	if idx < 0 {
		panic(newFatalErrorf(ErrUnknownStageLabel, "target stage does not exist: %s", target))
	}
	s.stages[label] = stage
	s.stageOrder = append(s.stageOrder, "")
	copy(s.stageOrder[idx+2:], s.stageOrder[idx+1:])
	s.stageOrder[idx+1] = label
	return s
}

// AddStageBefore inserts stage immediately before target in the run order.
func (s *Schedule) AddStageBefore(target, label StageLabel, stage *Stage) *Schedule {
	if _, exists := s.stages[label]; exists {
		panic(newFatalErrorf(ErrDuplicateStageLabel, "stage already exists: %s", label))
	}
	idx := s.indexOf(target)
	if idx < 0 {
		panic(newFatalErrorf(ErrUnknownStageLabel, "target stage does not exist: %s", target))
	}
	s.stages[label] = stage
	s.stageOrder = append(s.stageOrder, "")
	copy(s.stageOrder[idx+1:], s.stageOrder[idx:])
	s.stageOrder[idx] = label
	return s
}

// AddSystemToStage appends system to the stage registered under label.
func (s *Schedule) AddSystemToStage(label StageLabel, system *System) *Schedule {
	stage, ok := s.stages[label]
	if !ok {
		panic(newFatalErrorf(ErrUnknownStageLabel, "stage does not exist: %s", label))
	}
	stage.AddSystem(system)
	return s
}

// Run executes every stage, in schedule order, once.
func (s *Schedule) Run(world *World) {
	for _, label := range s.stageOrder {
		s.stages[label].Run(world)
	}
}
