package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
)

const msgPlayerMismatch = "player does not match the connection"

// handleConnect - identifies the player, creating one for new or expired ids, and resends any game in progress.
func (that *Server) handleConnect(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		that.sendError(conn, msg.Action, "invalid payload")
		return err
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	switch {
	case conn.playerID == "":
	case playerID == "":
		playerID = conn.playerID
	case playerID != conn.playerID:
		log.Warn("connect names another player", "playerID", conn.playerID, "requested", playerID)
		that.sendError(conn, msg.Action, msgPlayerMismatch)
		return nil
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if errors.Is(err, apperror.ErrPlayerNotFound) {
		log.Info("player expired, creating a new one", "playerID", playerID)
		player, err = that.gameUseCase.GetOrCreatePlayer(ctx, "")
	}

	if err != nil {
		that.replyError(conn, msg.Action, err)
		return fmt.Errorf("failed to get or create player: %w", err)
	}

	conn.playerID = player.ID

	payloadResp := Payload{Player: player}

	if player.InGame() {
		game, gameErr := that.gameUseCase.GetGame(ctx, player.ID)
		switch {
		case gameErr == nil:
			payloadResp.Game = newGameView(game)
		case errors.Is(gameErr, apperror.ErrGameNotFound):
			log.Info("player's game has expired", "playerID", player.ID, "gameID", player.GameID)
		default:
			that.replyError(conn, msg.Action, gameErr)
			return fmt.Errorf("failed to get game: %w", gameErr)
		}
	}

	if err = conn.send(msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, conn *connection, msg *Message) error {
	payloadReq, playerID, ok := that.requirePlayer(conn, msg)
	if !ok {
		return nil
	}

	game, err := that.gameUseCase.NewGame(ctx, playerID, that.gameOptions(payloadReq.Options))
	if errors.Is(err, apperror.ErrGameInProgress) {
		return that.replyWithGame(conn, msg.Action, game, err)
	}

	if err != nil {
		that.replyError(conn, msg.Action, err)
		return fmt.Errorf("failed to start game: %w", err)
	}

	return that.sendGame(conn, msg.Action, playerID, game)
}

// handleGameTurn - a rejected move is answered with the error and the unchanged board.
func (that *Server) handleGameTurn(ctx context.Context, conn *connection, msg *Message) error {
	payloadReq, playerID, ok := that.requirePlayer(conn, msg)
	if !ok {
		return nil
	}

	if payloadReq.Cell == nil {
		that.sendError(conn, msg.Action, "cell is required")
		return nil
	}

	game, err := that.gameUseCase.MakeTurn(ctx, playerID, payloadReq.Cell.Row, payloadReq.Cell.Col)
	if err != nil {
		return that.replyWithGame(conn, msg.Action, game, err)
	}

	return that.sendGame(conn, msg.Action, playerID, game)
}

// replyWithGame - sends the error together with the game as it stands, game may be nil.
func (that *Server) replyWithGame(conn *connection, action string, game *entity.Game, err error) error {
	text, known := errorText(err)
	if sendErr := conn.send(action, Payload{Game: newGameView(game), Error: text}); sendErr != nil {
		return fmt.Errorf("failed to send error response: %w", sendErr)
	}

	if known {
		return nil
	}

	return fmt.Errorf("%s failed: %w", action, err)
}

func (that *Server) handleGameState(ctx context.Context, conn *connection, msg *Message) error {
	_, playerID, ok := that.requirePlayer(conn, msg)
	if !ok {
		return nil
	}

	game, err := that.gameUseCase.GetGame(ctx, playerID)
	if err != nil {
		that.replyError(conn, msg.Action, err)
		return nil
	}

	return that.sendGame(conn, msg.Action, playerID, game)
}

func (that *Server) handleGameLeave(ctx context.Context, conn *connection, msg *Message) error {
	_, playerID, ok := that.requirePlayer(conn, msg)
	if !ok {
		return nil
	}

	game, err := that.gameUseCase.LeaveGame(ctx, playerID)
	if err != nil {
		that.replyError(conn, msg.Action, err)
		return nil
	}

	that.logger.Info("player left game", "playerID", playerID, "gameID", game.ID)

	return that.sendGame(conn, msg.Action, playerID, game)
}

// requirePlayer - decodes the payload and resolves the player id.
// The first player seen on a socket is bound to it, a payload naming another player is refused afterwards.
func (that *Server) requirePlayer(conn *connection, msg *Message) (*Payload, string, bool) {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		that.sendError(conn, msg.Action, "invalid payload")
		return nil, "", false
	}

	var requested string
	if payloadReq.Player != nil {
		requested = payloadReq.Player.ID
	}

	playerID := conn.playerID
	switch {
	case playerID == "":
		playerID = requested
	case requested != "" && requested != playerID:
		that.logger.Warn("player id does not match the connection", "action", msg.Action, "playerID", playerID, "requested", requested)
		that.sendError(conn, msg.Action, msgPlayerMismatch)
		return nil, "", false
	}

	if playerID == "" {
		that.sendError(conn, msg.Action, "player is required")
		return nil, "", false
	}

	conn.playerID = playerID

	return payloadReq, playerID, true
}

func (that *Server) gameOptions(opts *Options) service.GameOptions {
	result := that.defaults
	if opts == nil {
		return result
	}

	if opts.Mark != "" {
		result.HumanMark = opts.Mark
	}

	if opts.BotFirst != nil {
		result.BotFirst = *opts.BotFirst
	}

	return result
}

func (that *Server) sendGame(conn *connection, action, playerID string, game *entity.Game) error {
	payload := Payload{
		Player: &entity.Player{ID: playerID, Mark: game.HumanMark, GameID: game.ID},
		Game:   newGameView(game),
	}

	if action == actionGameLeave {
		payload.Player = &entity.Player{ID: playerID}
	}

	if err := conn.send(action, payload); err != nil {
		return fmt.Errorf("failed to send game update: %w", err)
	}

	return nil
}

func (that *Server) replyError(conn *connection, action string, err error) {
	text, known := errorText(err)
	if !known {
		that.logger.Error("request failed", "action", action, "error", err)
	}

	that.sendError(conn, action, text)
}

func decodePayload(msg *Message) (*Payload, error) {
	payload := &Payload{}
	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}
