// Package participant defines the person record that team formation works on.
//
// A [Participant] carries identity fields (ID, Name, Email) plus the
// attributes the allocation engine reads: a skill level, a preferred
// activity, an [Archetype] (the personality-derived role that drives role
// quotas), a preferred [Position] and the raw personality score.
//
// Participants are created by loaders (CSV, manual entry) and are treated as
// read-only inputs by the engine. The only field the engine ever sets is
// TeamNumber, and only on the copy it places into a completed team.
package participant
