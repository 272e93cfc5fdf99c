// Package allocation forms fixed-size teams from a participant pool.
//
// An Engine runs two kinds of pass against a Session:
//
//   - FormTeams, the primary pass. Leaders seed teams, one Thinker is paired
//     with each team, remaining Thinkers and the generalists (Balanced and
//     Motivator) are placed by best fit under the full constraint set.
//   - FormLeftoverTeams, the relaxed pass over the Session's unassigned
//     pool. Teams are seeded with the strongest remaining participants and
//     filled under capacity and activity caps only.
//
// Best fit picks the team whose average skill after placement is closest to
// the run's target average, breaking ties uniformly at random through the
// Engine's random source (see WithRand and WithSeed).
//
// The Session owns the unassigned pool. FormTeams clears it, FormLeftoverTeams
// consumes and rebuilds it, and Reset starts an independent series of runs.
// Every participant handed to a run ends in exactly one completed team or in
// the pool; a run that cannot prove this returns a *errors.FormationError and
// leaves the pool as it was before the run.
//
// With WithParallelism(n > 1) the generalist placement fans out across n
// workers. Each candidate's eligibility is re-checked under the chosen
// accumulator's lock before the append, and a candidate that loses a race for
// the last slot goes to the pool without a retry.
package allocation
