// Package team provides the per-team state used while forming teams.
//
// The central type is [Accumulator]: a mutable aggregate that tracks one
// in-progress team's members, per-activity counts, per-archetype counts and
// running skill total. An Accumulator is owned by a single formation run and
// is safe for concurrent use; [Accumulator.TryAdd] performs the
// read-check-then-append sequence under the accumulator's exclusive lock so
// two concurrent placements can never both observe spare capacity and both
// write.
//
// # Constraints
//
// [Limits] configures capacity and the caps every placement respects:
//
//   - Size: members per team; an accumulator never exceeds it.
//   - ActivityCap: members sharing one preferred activity (default 2).
//   - ThinkerCap: Thinker members per team in [ModeConstrained] (default 2).
//   - DiversityThreshold: once a team holds this many distinct archetypes, a
//     second Leader or Thinker is refused in [ModeConstrained] (default 3).
//
// [ModeRelaxed] checks only capacity and the activity cap; the leftover pass
// and the mandatory thinker pass use it.
//
// # Completion
//
// An accumulator holding exactly Size members at the end of a run is frozen
// into a [Team] snapshot with [Accumulator.Complete]. Partial accumulators
// are dissolved with [Accumulator.Dissolve], which hands their members back
// to the caller.
package team
