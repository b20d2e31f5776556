package hub

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/strikerapp/striker-backend/internal/engine"
	"github.com/strikerapp/striker-backend/internal/store"
	"github.com/strikerapp/striker-backend/internal/wire"
)

// ErrUnknownAction is returned for action types the dispatcher does not
// recognize.
var ErrUnknownAction = errors.New("unknown action")

// DefaultMatch is used whenever a request carries no match id.
const DefaultMatch = "default"

type Msg interface{ isHubMsg() }

// Connect registers a connection's outbox. No match subscription yet; that
// comes from a JOIN.
type Connect struct {
	ClientID string
	Outbox   chan wire.ServerMessage
}

// Disconnect drops a connection and its subscription.
type Disconnect struct{ ClientID string }

// Subscribe moves a connection into a match's broadcast group and delivers
// the current state immediately, so a late joiner is never stale.
type Subscribe struct {
	ClientID string
	MatchID  string
}

// FromClient is one inbound action request.
type FromClient struct {
	ClientID string
	Req      wire.ClientMessage
}

// GetView asks for the derived view of a match (HTTP state query).
type GetView struct {
	MatchID string
	Reply   chan engine.View
}

type Shutdown struct{}

func (Connect) isHubMsg()    {}
func (Disconnect) isHubMsg() {}
func (Subscribe) isHubMsg()  {}
func (FromClient) isHubMsg() {}
func (GetView) isHubMsg()    {}
func (Shutdown) isHubMsg()   {}

type client struct {
	outbox chan wire.ServerMessage
	match  string
	joined bool
}

// Hub owns every match machine and all connected observers. One goroutine
// processes the inbox, so each action runs to completion (validate, mutate,
// view, broadcast) before the next; matches never interleave mid-mutation.
type Hub struct {
	inbox   chan Msg
	matches *store.Store
	clients map[string]*client
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(parent context.Context, matches *store.Store, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:   make(chan Msg, 64),
		matches: matches,
		clients: make(map[string]*client),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- Msg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case Connect:
				h.clients[msg.ClientID] = &client{outbox: msg.Outbox}

			case Disconnect:
				if c, ok := h.clients[msg.ClientID]; ok {
					close(c.outbox)
					delete(h.clients, msg.ClientID)
				}

			case Subscribe:
				c, ok := h.clients[msg.ClientID]
				if !ok {
					break
				}
				matchID := orDefault(msg.MatchID)
				c.match = matchID
				c.joined = true
				v := h.matches.GetOrCreate(matchID).View(matchID)
				h.send(msg.ClientID, c, wire.StateUpdate(v))

			case FromClient:
				h.dispatch(msg)

			case GetView:
				matchID := orDefault(msg.MatchID)
				msg.Reply <- h.matches.GetOrCreate(matchID).View(matchID)

			case Shutdown:
				h.shutdown()
				return
			}
		}
	}
}

// dispatch routes one action to the match machine, answers the requester,
// and on success broadcasts the fresh view (plus the discrete event for
// bans and picks). Failures reach the requester only; observers never see
// a state that did not pass validation.
func (h *Hub) dispatch(msg FromClient) {
	matchID := orDefault(msg.Req.MatchID)
	m := h.matches.GetOrCreate(matchID)

	var evt *engine.Event
	var err error

	switch msg.Req.Type {
	case wire.TypeBan:
		var e engine.Event
		if e, err = m.Ban(msg.Req.StageID); err == nil {
			evt = &e
		}
	case wire.TypePick:
		var e engine.Event
		if e, err = m.PickStage(msg.Req.StageID); err == nil {
			evt = &e
		}
	case wire.TypeUndo:
		err = m.Undo()
	case wire.TypeReset:
		m.Reset()
	case wire.TypeSetMode:
		mode, ok := engine.ParseMode(msg.Req.Mode)
		if !ok {
			err = engine.ErrInvalidMode
		} else {
			err = m.SetMode(mode)
		}
	case wire.TypeForceNextPhase:
		err = m.ForceAdvance()
	default:
		err = ErrUnknownAction
	}

	if c, ok := h.clients[msg.ClientID]; ok {
		h.send(msg.ClientID, c, wire.Result(msg.Req.Type, err))
	}

	if err != nil {
		h.log.Info("action rejected",
			zap.String("match", matchID),
			zap.String("action", msg.Req.Type),
			zap.String("stage", msg.Req.StageID),
			zap.Error(err))
		return
	}

	h.log.Info("action applied",
		zap.String("match", matchID),
		zap.String("action", msg.Req.Type),
		zap.String("stage", msg.Req.StageID),
		zap.String("phase", string(m.Phase)))

	h.broadcast(matchID, wire.StateUpdate(m.View(matchID)))
	if evt != nil {
		h.broadcast(matchID, wire.GameEvent(*evt))
	}
}

func (h *Hub) broadcast(matchID string, msg wire.ServerMessage) {
	for id, c := range h.clients {
		if c.joined && c.match == matchID {
			h.send(id, c, msg)
		}
	}
}

// send never blocks the hub loop. A client whose outbox is full is dropped.
func (h *Hub) send(id string, c *client, msg wire.ServerMessage) {
	select {
	case c.outbox <- msg:
	default:
		h.log.Warn("dropping slow client", zap.String("client", id))
		close(c.outbox)
		delete(h.clients, id)
	}
}

func (h *Hub) shutdown() {
	for id, c := range h.clients {
		close(c.outbox)
		delete(h.clients, id)
	}
	h.cancel()
}

func orDefault(matchID string) string {
	if matchID == "" {
		return DefaultMatch
	}
	return matchID
}
