// Package models defines the GORM data structures for the Fairway Cup API.
// The struct tags tell GORM each field's column type, constraints, defaults,
// and relationships.
//
// The hierarchy is Tournament → Round → raw scores, with derived totals
// recomputed by internal/scoring and cached back onto the owning rows:
//   - A Tournament has registered TournamentPlayers and one or more Rounds.
//   - A Round is played on a Course (holes carry par + stroke index) under a
//     ScoringFormat; its lifecycle only ever moves forward.
//   - Stroke-format rounds own per-hole Score rows per player (absence of a
//     row means the hole was not played — never a zero), or TeamScore rows
//     for scramble teams.
//   - Match-play rounds own Matches with per-hole MatchHole pairs; status,
//     per-hole results, and points are engine output persisted as a snapshot.
//
// Derived columns (totals, net scores, match status) are never patched
// incrementally: every submission reloads the raw rows and recomputes the
// whole record, so what is stored is always consistent with the raw history.
package models

import (
	"time"

	"github.com/google/uuid"
)

// --- Enums ---
// Named string types plus const blocks stand in for enums: type-safe in Go,
// human-readable in the database.

// UserRole is a user's global permission level across the platform.
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"   // Full access: manage users, tournaments, everything
	UserRoleManager UserRole = "manager" // Can create and manage tournaments
	UserRoleUser    UserRole = "user"    // Regular player: can join tournaments and record scores
)

// TournamentStatus tracks the lifecycle of a tournament.
type TournamentStatus string

const (
	TournamentStatusUpcoming  TournamentStatus = "upcoming"
	TournamentStatusActive    TournamentStatus = "active"
	TournamentStatusCompleted TournamentStatus = "completed"
	TournamentStatusCancelled TournamentStatus = "cancelled"
)

// TournamentPlayerRole controls what a user can do within one tournament,
// separate from their global UserRole. Organizers edit the tournament,
// invite players, and schedule rounds; players just compete.
type TournamentPlayerRole string

const (
	TournamentPlayerRoleOrganizer TournamentPlayerRole = "organizer"
	TournamentPlayerRolePlayer    TournamentPlayerRole = "player"
)

// TournamentPlayerStatus tracks participation state.
type TournamentPlayerStatus string

const (
	TournamentPlayerStatusInvited    TournamentPlayerStatus = "invited"
	TournamentPlayerStatusRegistered TournamentPlayerStatus = "registered"
	TournamentPlayerStatusWithdrawn  TournamentPlayerStatus = "withdrawn"
)

// RoundStatus is the round lifecycle. Transitions are monotonic:
// created → in_progress → completed, never backward. The status handler
// enforces this ordering.
type RoundStatus string

const (
	RoundStatusCreated    RoundStatus = "created"
	RoundStatusInProgress RoundStatus = "in_progress"
	RoundStatusCompleted  RoundStatus = "completed"
)

// RoundLifecycleRank orders round statuses for the monotonic-transition
// check; a round may only move to a status with a strictly higher rank.
func RoundLifecycleRank(s RoundStatus) int {
	switch s {
	case RoundStatusCreated:
		return 0
	case RoundStatusInProgress:
		return 1
	case RoundStatusCompleted:
		return 2
	default:
		return -1
	}
}

// ScoringFormat describes how a round is scored. The values match
// scoring.Format one-for-one; handlers convert with a plain cast.
type ScoringFormat string

const (
	ScoringFormatStroke     ScoringFormat = "stroke"     // Fewest total strokes wins
	ScoringFormatStableford ScoringFormat = "stableford" // Points per hole based on net score vs par
	ScoringFormatBestBall   ScoringFormat = "best_ball"  // Team format: best member score per hole
	ScoringFormatScramble   ScoringFormat = "scramble"   // Team format: one shared ball per hole
	ScoringFormatMatchPlay  ScoringFormat = "match_play" // Head-to-head holes won, Ryder Cup style
)

// MatchSide says which side of a match a player is on.
type MatchSide string

const (
	MatchSideA MatchSide = "side_a"
	MatchSideB MatchSide = "side_b"
)

// --- Models ---

// User is a registered person, created lazily on their first authenticated
// request. ClerkID links our row to the identity provider.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClerkID     *string   `gorm:"uniqueIndex:idx_users_clerk_id"` // Identity-provider user ID; nullable for legacy rows
	DisplayName string    `gorm:"not null"`
	Email       string    `gorm:"uniqueIndex;not null"`
	AvatarURL   *string
	Role        UserRole `gorm:"type:user_role;not null;default:'user'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tournament is the top-level competition container: a weekend trip, a
// season, or a Ryder Cup style team event.
//
// TargetPoints only applies to match-play tournaments: the first team to
// reach it clinches (e.g. 14.5 of 28). It is a display threshold the API
// compares point totals against — nothing in the scoring engine holds it.
type Tournament struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string           `gorm:"not null"`
	Description  *string
	Status       TournamentStatus `gorm:"type:tournament_status;not null;default:'upcoming'"`
	StartDate    *time.Time
	EndDate      *time.Time
	TargetPoints *float64         `gorm:"type:decimal(4,1)"` // Match-play clinch line; nil for stroke events
	CreatedBy    uuid.UUID        `gorm:"type:uuid;not null"`
	Creator      User             `gorm:"foreignKey:CreatedBy"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Players      []TournamentPlayer `gorm:"foreignKey:TournamentID"`
	Rounds       []Round            `gorm:"foreignKey:TournamentID"`
}

// TournamentPlayer links a User to a Tournament: the registration list plus
// the per-tournament handicap the engine reads.
//
// Handicap is the player's index at registration time (fractional, e.g.
// 12.4). The engine only ever reads it — rounding and per-hole allocation
// happen in internal/scoring at computation time.
type TournamentPlayer struct {
	ID           uuid.UUID              `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TournamentID uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_tournament_user"`
	Tournament   Tournament             `gorm:"foreignKey:TournamentID"`
	UserID       uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_tournament_user"`
	User         User                   `gorm:"foreignKey:UserID"`
	Role         TournamentPlayerRole   `gorm:"type:tournament_player_role;not null;default:'player'"`
	Status       TournamentPlayerStatus `gorm:"type:tournament_player_status;not null;default:'registered'"`
	Handicap     *float64               `gorm:"type:decimal(4,1)"` // Nil = no handicap: always plays gross
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Course is where rounds are played. Only what scoring needs is kept: a
// name for display and the holes underneath. No tee sets, slope, or rating.
type Course struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	City      string    `gorm:"not null;default:''"`
	State     string    `gorm:"not null;default:''"`
	HoleCount int       `gorm:"not null;default:18"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Holes     []Hole `gorm:"foreignKey:CourseID"`
}

// Hole is one hole on a course: par, the 1..N stroke index used for
// handicap allocation (1 = hardest), and an optional yardage that exists
// purely for scorecard display.
type Hole struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_course_hole"`
	Course      Course    `gorm:"foreignKey:CourseID"`
	Number      int       `gorm:"not null;uniqueIndex:idx_course_hole"` // 1..N
	Par         int       `gorm:"not null"`                             // Typically 3–5
	StrokeIndex int       `gorm:"not null;default:0"`                   // 0 = not assigned (ordinal fallback applies)
	Yardage     *int
}

// Round is one day of play within a tournament: a course, a scoring format,
// and whether handicap strokes are given.
type Round struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TournamentID  uuid.UUID     `gorm:"type:uuid;not null"`
	Tournament    Tournament    `gorm:"foreignKey:TournamentID"`
	CourseID      uuid.UUID     `gorm:"type:uuid;not null"`
	Course        Course        `gorm:"foreignKey:CourseID"`
	RoundNumber   int           `gorm:"not null;default:1"`
	ScheduledDate time.Time     `gorm:"not null"`
	Status        RoundStatus   `gorm:"type:round_status;not null;default:'created'"`
	Format        ScoringFormat `gorm:"type:scoring_format;not null"`
	StrokesGiven  bool          `gorm:"not null;default:false"` // Gates handicap allocation for the whole round
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RoundPlayer is one player's entry in a round. The Total*/Net*/Stableford
// columns are the derived scoring record: recomputed wholesale from the raw
// Score rows on every submission, never adjusted in place.
//
// TotalNet/NetToPar are nullable on purpose — NULL means "no handicap
// strokes applied this round", which the leaderboard reads as "rank this
// player by gross". That is different from a net score of zero.
type RoundPlayer struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoundID            uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_round_tournament_player"`
	Round              Round            `gorm:"foreignKey:RoundID"`
	TournamentPlayerID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_round_tournament_player"`
	TournamentPlayer   TournamentPlayer `gorm:"foreignKey:TournamentPlayerID"`
	TeamID             *uuid.UUID       `gorm:"type:uuid"` // Set when the round's format plays in teams
	Team               *Team            `gorm:"foreignKey:TeamID"`

	TotalGross         int `gorm:"not null;default:0"` // 0 = nothing posted yet
	TotalToPar         int `gorm:"not null;default:0"`
	HolesPlayed        int `gorm:"not null;default:0"`
	HandicapStrokes    int `gorm:"not null;default:0"`
	TotalNet           *int
	NetToPar           *int
	StablefordPoints   *int // Computed total; nil until any score exists on a stableford round
	StablefordOverride *int // Manual override; replaces the computed total entirely when set

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Score is the raw record of one player's strokes on one hole. There is no
// "unplayed" row — a hole with no Score row simply was not played, and the
// engine excludes it from every total.
type Score struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoundPlayerID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_round_player_hole"`
	RoundPlayer   RoundPlayer `gorm:"foreignKey:RoundPlayerID"`
	HoleNumber    int         `gorm:"not null;uniqueIndex:idx_round_player_hole"`
	Strokes       int         `gorm:"not null"` // Always positive; invalid input never reaches the table
	EnteredBy     uuid.UUID   `gorm:"type:uuid;not null"`
	Enterer       User        `gorm:"foreignKey:EnteredBy"`
	EnteredAt     time.Time   `gorm:"autoCreateTime"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime"`
}

// Team is a named team within a round. Teams belong to rounds, not
// tournaments, because compositions change day to day. Derived team totals
// carry the same recompute-wholesale rule as RoundPlayer's.
type Team struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoundID uuid.UUID `gorm:"type:uuid;not null"`
	Round   Round     `gorm:"foreignKey:RoundID"`
	Name    string    `gorm:"not null"`
	Color   string    `gorm:"not null;default:''"` // Display color for the app (e.g. "#bf0a30")

	TotalGross      int `gorm:"not null;default:0"`
	TotalToPar      int `gorm:"not null;default:0"`
	HandicapStrokes int `gorm:"not null;default:0"`
	TotalNet        *int
	NetToPar        *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TeamMember places a RoundPlayer onto a Team. Composite primary key keeps
// a player from joining two teams in the same round.
type TeamMember struct {
	TeamID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	RoundPlayerID uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Team          Team        `gorm:"foreignKey:TeamID"`
	RoundPlayer   RoundPlayer `gorm:"foreignKey:RoundPlayerID"`
}

// TeamScore is a scramble team's combined score on one hole: the whole team
// plays one ball, so this stream is the team's raw scorecard and there are
// no individual Score rows at all.
type TeamScore struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TeamID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_hole"`
	Team       Team      `gorm:"foreignKey:TeamID"`
	HoleNumber int       `gorm:"not null;uniqueIndex:idx_team_hole"`
	Strokes    int       `gorm:"not null"`
	EnteredBy  uuid.UUID `gorm:"type:uuid;not null"`
	Enterer    User      `gorm:"foreignKey:EnteredBy"`
	EnteredAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// Match is one head-to-head match in a match-play round: two sides, each a
// team plus the subset of its players actually playing this match (one for
// singles, two for foursomes/four-ball).
//
// Status, StatusText, and the points are snapshots of the scoring engine's
// output, rewritten in full every time any MatchHole changes.
type Match struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoundID     uuid.UUID `gorm:"type:uuid;not null"`
	Round       Round     `gorm:"foreignKey:RoundID"`
	SideATeamID uuid.UUID `gorm:"type:uuid;not null"`
	SideATeam   Team      `gorm:"foreignKey:SideATeamID"`
	SideBTeamID uuid.UUID `gorm:"type:uuid;not null"`
	SideBTeam   Team      `gorm:"foreignKey:SideBTeamID"`

	Status     string  `gorm:"not null;default:'not_started'"` // scoring.MatchStatus value
	StatusText string  `gorm:"not null;default:''"`            // e.g. "All Square", "Side A wins 3&2"
	Margin     string  `gorm:"not null;default:''"`            // "3&2" / "1 up" / "halved" once completed
	Winner     string  `gorm:"not null;default:''"`            // scoring.Side value; empty while open
	PointsA    float64 `gorm:"not null;default:0"`
	PointsB    float64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	Players   []MatchPlayer `gorm:"foreignKey:MatchID"`
	Holes     []MatchHole   `gorm:"foreignKey:MatchID"`
}

// MatchPlayer assigns a RoundPlayer to one side of a match.
type MatchPlayer struct {
	MatchID       uuid.UUID   `gorm:"type:uuid;primaryKey"`
	RoundPlayerID uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Match         Match       `gorm:"foreignKey:MatchID"`
	RoundPlayer   RoundPlayer `gorm:"foreignKey:RoundPlayerID"`
	Side          MatchSide   `gorm:"type:match_side;not null"`
}

// MatchHole is the raw (and derived) record for one hole of a match. The
// side scores are nullable so a half-entered hole is representable; Result
// is engine output ("side_a"/"side_b"/"tie"/"unplayed") stored for display.
type MatchHole struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MatchID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_hole"`
	Match      Match     `gorm:"foreignKey:MatchID"`
	HoleNumber int       `gorm:"not null;uniqueIndex:idx_match_hole"`
	SideAScore *int
	SideBScore *int
	Result     string    `gorm:"not null;default:'unplayed'"` // scoring.HoleResult value
	EnteredBy  uuid.UUID `gorm:"type:uuid;not null"`
	Enterer    User      `gorm:"foreignKey:EnteredBy"`
	EnteredAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}
