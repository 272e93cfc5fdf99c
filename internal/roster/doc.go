// Package roster reads participants from CSV and writes formed teams and the
// unassigned pool back to CSV.
//
// Participant files carry the header
//
//	ID,Name,Email,PreferredGame,SkillLevel,PreferredRole,PersonalityScore,PersonalityType
//
// in any column order and letter case. Email, PreferredRole and
// PersonalityType may be omitted; a missing or blank PersonalityType is
// derived from PersonalityScore. Team files use
//
//	TeamNumber,ID,Name,Email,Activity,Skill,Role,PersonalityScore,PersonalityType
package roster
