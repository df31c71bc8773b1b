package nakama

import (
	"virusgame/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/grpc/codes"
)

var (
	errBadPayload = runtime.NewError("invalid request payload", int(codes.InvalidArgument))
	errInternal   = runtime.NewError("internal server error", int(codes.Internal))
)

// grpcCode maps a game error code to the status clients see for it.
func grpcCode(code domain.Code) codes.Code {
	switch code {
	case domain.CodeValidation:
		return codes.InvalidArgument
	case domain.CodeAuth:
		return codes.PermissionDenied
	case domain.CodeRuleViolation, domain.CodeGameState:
		return codes.FailedPrecondition
	case domain.CodeNotFound:
		return codes.NotFound
	case domain.CodeInternal:
		return codes.Internal
	default:
		return codes.Unknown
	}
}
