package constants

// Centralized constants for headers, env keys, routes and log fields.
const (
	// Environment variable keys
	EnvConfigPath   = "BATTLE_CONFIG"
	EnvDatabasePath = "BATTLE_DB"
	EnvLogLevel     = "BATTLE_LOG_LEVEL"
	EnvHealthURL    = "BATTLE_HEALTH_URL"

	// HTTP headers and content types
	HeaderPlayerID    = "X-Player-ID"
	HeaderContentType = "Content-Type"

	ContentTypeJSON = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"

	// Context key under which the middleware stores the caller's id.
	ContextKeyPlayerID = "player_id"

	MaxPlayerIDLength = 64
)

// Routes used by the backend router
const (
	RouteAPIPrefix    = "/api"
	RouteVersion      = "/version"
	RouteCreatures    = "/creatures"
	RouteMoves        = "/moves"
	RouteBattles      = "/battles"
	RouteBattleByID   = "/battles/:battleID"
	RouteBattleAction = "/battles/:battleID/action"
	RouteHistory      = "/history"
	RouteStats        = "/stats"

	ParamBattleID = "battleID"
	QueryResult   = "result"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest       = "Invalid request"
	ErrInvalidBattleID      = "Invalid battle ID"
	ErrBattleNotFound       = "Battle not found"
	ErrPlayerNotInBattle    = "Player not part of this battle"
	ErrPlayerIDRequired     = "X-Player-ID header is required"
	ErrPlayerIDTooLong      = "X-Player-ID header is too long"
	ErrBattleChanged        = "Battle changed since it was read; reload and retry"
	ErrInvalidResultFilter  = "result must be 'win' or 'loss'"
	ErrFailedStartBattle    = "Failed to start battle"
	ErrFailedResolveAction  = "Failed to resolve action"
	ErrFailedFetchBattle    = "Failed to fetch battle"
	ErrFailedFetchHistory   = "Failed to fetch history"
	ErrFailedFetchStats     = "Failed to fetch stats"
	ErrBattleStateCorrupted = "Battle state is corrupted"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldPlayerID = "player_id"
	LogFieldTurn     = "turn"
	LogFieldStep     = "step"
	LogFieldOutcome  = "outcome"
	LogFieldAction   = "action"
	LogFieldVersion  = "version"
	LogFieldSource   = "source"
	LogFieldCount    = "count"
	LogFieldAddr     = "addr"
	LogFieldPath     = "path"
)
