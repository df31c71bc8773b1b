package nakama

// RPC ids clients call through the Nakama runtime.
const (
	RpcCreate        = "virus_create"
	RpcJoin          = "virus_join"
	RpcStart         = "virus_start"
	RpcStatus        = "virus_status"
	RpcDiscard       = "virus_discard"
	RpcUse           = "virus_use"
	RpcClaim         = "virus_claim"
	RpcTransplantAll = "virus_transplant_all"
	RpcApplySelf     = "virus_apply_self"
	RpcApplyOpponent = "virus_apply_opponent"
	RpcPlay          = "virus_play"
	RpcCardHelp      = "virus_card_help"
	RpcCatalog       = "virus_catalog"
)

// EventPrefix namespaces analytics events emitted through nk.Event.
const EventPrefix = "virus_"

// NotificationCodeTurn marks "it is your turn" notifications. Nakama reserves codes <= 0.
const NotificationCodeTurn = 1001

// ConfigPathEnv names the runtime env key holding the TOML config path.
const ConfigPathEnv = "VIRUS_CONFIG_PATH"

// Drop targets understood by virus_play.
const (
	kindCard   = "card"
	kindAction = "action"
	kindPlayer = "player"

	actionPass = "pass"
	actionUse  = "use"
	actionHelp = "help"
)
