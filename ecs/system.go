package ecs

// SystemFunc is one unit of scheduled work: given shared access to World
// and a command buffer for deferred structural edits, it reads and
// mutates component rows in place (via Query results) and queues
// spawns/despawns/component edits for the next flush (spec §4.8, ported
// from the original's System/SystemBuilder, collapsed to a plain function
// type since Go has no trait-object query-set machinery to replicate).
type SystemFunc func(world *World, cmd *CommandBuffer)

// System pairs a SystemFunc with the command buffer it accumulates
// deferred edits into across one run. Each System owns exactly one
// CommandBuffer, flushed by its Stage once per stage run, after every
// system in that stage has executed (spec §4.8's resolved per-system,
// post-stage flush ordering).
type System struct {
	name string
	run  SystemFunc
	cmd  *CommandBuffer
}

// NewSystem wraps fn as a named System with its own command buffer. name
// is used only for logging and panics.
func NewSystem(name string, fn SystemFunc) *System {
	return &System{name: name, run: fn, cmd: NewCommandBuffer()}
}

// Name returns the system's diagnostic name.
func (s *System) Name() string { return s.name }

func (s *System) runOnce(world *World) {
	s.run(world, s.cmd)
}

func (s *System) flush(world *World) {
	s.cmd.Flush(world)
}
