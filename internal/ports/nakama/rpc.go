package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"

	"virusgame/internal/app"
	"virusgame/internal/domain"
	"virusgame/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/codes"
)

// request is the JSON body shared by every RPC. Each call reads the fields it needs.
type request struct {
	domain.Auth
	GameID        string `json:"game_id"`
	AdminPassword string `json:"admin_password"`
	Card          string `json:"card"`
	Target        string `json:"target"`
	Organ         string `json:"organ"`

	// virus_play drag and drop
	SrcPlayer string `json:"src_player"`
	SrcKind   string `json:"src_kind"`
	Src       string `json:"src"`
	DstPlayer string `json:"dst_player"`
	DstKind   string `json:"dst_kind"`
	Dst       string `json:"dst"`

	userID string
}

// response is the envelope every RPC answers with, success or not.
type response struct {
	Success bool                  `json:"success"`
	Error   string                `json:"error,omitempty"`
	Code    domain.Code           `json:"code,omitempty"`
	Message string                `json:"message,omitempty"`
	GameID  string                `json:"game_id,omitempty"`
	Status  *domain.Status        `json:"status,omitempty"`
	Card    *domain.CatalogEntry  `json:"card,omitempty"`
	Catalog []domain.CatalogEntry `json:"catalog,omitempty"`
}

type operation func(ctx context.Context, req request) (response, []app.Event, error)

// Gateway exposes the game service as Nakama RPCs and forwards app events to the ports.
type Gateway struct {
	svc       *app.Service
	analytics ports.AnalyticsPort
	notifier  ports.NotifierPort
	tracer    trace.Tracer
}

// NewGateway wires a gateway. Either port may be nil to disable it.
func NewGateway(svc *app.Service, analytics ports.AnalyticsPort, notifier ports.NotifierPort) *Gateway {
	return &Gateway{
		svc:       svc,
		analytics: analytics,
		notifier:  notifier,
		tracer:    otel.Tracer("virusgame/internal/ports/nakama"),
	}
}

// RegisterRPCs registers Nakama RPC endpoints.
func (g *Gateway) RegisterRPCs(initializer runtime.Initializer) error {
	for id, op := range g.operations() {
		if err := initializer.RegisterRpc(id, g.rpc(id, op)); err != nil {
			return err
		}
	}
	return nil
}

func (g *Gateway) operations() map[string]operation {
	return map[string]operation{
		RpcCreate:        g.create,
		RpcJoin:          g.join,
		RpcStart:         g.start,
		RpcStatus:        g.status,
		RpcDiscard:       g.discard,
		RpcUse:           g.use,
		RpcClaim:         g.claim,
		RpcTransplantAll: g.transplantAll,
		RpcApplySelf:     g.applySelf,
		RpcApplyOpponent: g.applyOpponent,
		RpcPlay:          g.play,
		RpcCardHelp:      g.cardHelp,
		RpcCatalog:       g.catalog,
	}
}

// rpc adapts an operation to the runtime signature. Game errors become a
// failed envelope; bad payloads and broken invariants become runtime errors.
func (g *Gateway) rpc(name string, op operation) func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error) {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		ctx, span := g.tracer.Start(ctx, name)
		defer span.End()

		userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
		logger = logger.WithFields(map[string]interface{}{"rpc": name, "user_id": userID})

		var req request
		if payload != "" {
			if err := json.Unmarshal([]byte(payload), &req); err != nil {
				logger.Warn("Rejecting malformed payload: %v", err)
				span.SetStatus(otelcodes.Error, "malformed payload")
				return "", errBadPayload
			}
		}
		req.userID = userID
		span.SetAttributes(
			attribute.String("virus.game_id", req.GameID),
			attribute.String("virus.player", req.PlayerID),
		)

		resp, evs, err := op(ctx, req)
		g.dispatch(ctx, logger, evs)

		if err != nil {
			var gameErr *domain.Error
			if !errors.As(err, &gameErr) {
				logger.Error("Unexpected error in game %s: %v", req.GameID, err)
				span.RecordError(err)
				span.SetStatus(otelcodes.Error, err.Error())
				return "", errInternal
			}
			code := grpcCode(gameErr.Code)
			span.SetAttributes(attribute.String("virus.error_code", string(gameErr.Code)))
			if code == codes.Internal {
				logger.Error("Invariant violated in game %s: %v", req.GameID, err)
				span.RecordError(err)
				span.SetStatus(otelcodes.Error, err.Error())
				return "", runtime.NewError(err.Error(), int(code))
			}
			logger.Debug("Rejected: %v", err)
			resp = response{Error: gameErr.Message, Code: gameErr.Code}
		} else {
			resp.Success = true
		}

		out, err := json.Marshal(resp)
		if err != nil {
			logger.Error("Failed to marshal response: %v", err)
			return "", errInternal
		}
		return string(out), nil
	}
}

// dispatch forwards events to analytics and turn notifications. Delivery
// failures are logged and never fail the request.
func (g *Gateway) dispatch(ctx context.Context, logger runtime.Logger, evs []app.Event) {
	for _, ev := range evs {
		if g.analytics != nil {
			if err := g.analytics.Track(ctx, string(ev.Kind), eventProperties(ev)); err != nil {
				logger.Warn("Analytics for %s failed: %v", ev.Kind, err)
			}
		}
		if g.notifier == nil || ev.Kind != app.EventTurnPassed {
			continue
		}
		p, ok := ev.Payload.(app.TurnPassedPayload)
		if !ok {
			continue
		}
		for _, uid := range ev.Recipients {
			n := ports.Notification{
				UserID:  uid,
				Subject: "It is your turn",
				Content: map[string]interface{}{"game_id": p.GameID, "player": p.NextPlayer},
			}
			if err := g.notifier.Notify(ctx, n); err != nil {
				logger.Warn("Turn notification to %s failed: %v", uid, err)
			}
		}
	}
}

func eventProperties(ev app.Event) map[string]string {
	switch p := ev.Payload.(type) {
	case app.GameCreatedPayload:
		return map[string]string{"game_id": p.GameID}
	case app.PlayerJoinedPayload:
		return map[string]string{"game_id": p.GameID, "player": p.PlayerID, "seat": strconv.Itoa(p.Seat)}
	case app.GameStartedPayload:
		return map[string]string{"game_id": p.GameID, "first_player": p.FirstPlayer, "players": strconv.Itoa(len(p.Players))}
	case app.TurnPassedPayload:
		return map[string]string{"game_id": p.GameID, "player": p.PlayerID, "next_player": p.NextPlayer}
	case app.GameEndedPayload:
		return map[string]string{"game_id": p.GameID, "winner": p.Winner}
	case app.InvariantViolatedPayload:
		return map[string]string{"game_id": p.GameID, "message": p.Message}
	default:
		return map[string]string{}
	}
}
