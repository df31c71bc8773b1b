package app

// DefaultMaxPlayers caps a table when no configuration says otherwise.
// The deck itself allows up to 21 players with full hands.
const DefaultMaxPlayers = 6
