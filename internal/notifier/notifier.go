package notifier

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Channel names shared with every process that publishes screen updates.
const (
	CanalMesasActualizadas = "mesas_actualizadas"
	CanalKDSUpdate         = "kds_update"
	CanalMenuActualizado   = "menu_actualizado"
	CanalKDSMensaje        = "kds_message_alert"
)

// Notifier publishes screen-refresh events through Redis so every server
// process rebroadcasts them to its own websocket clients.
type Notifier struct {
	rdb *redis.Client
	hub *Hub
}

func New(rdb *redis.Client, hub *Hub) *Notifier {
	return &Notifier{rdb: rdb, hub: hub}
}

type evento struct {
	Canal string      `json:"canal"`
	Data  interface{} `json:"data,omitempty"`
}

// Publicar pushes one event. A Redis failure only costs liveness (screens
// refresh on their next poll), so it logs and moves on.
func (n *Notifier) Publicar(ctx context.Context, canal string, data interface{}) {
	payload, err := json.Marshal(evento{Canal: canal, Data: data})
	if err != nil {
		log.Error().Err(err).Str("canal", canal).Msg("no se pudo serializar el evento")
		return
	}
	if err := n.rdb.Publish(ctx, canal, payload).Err(); err != nil {
		log.Warn().Err(err).Str("canal", canal).Msg("no se pudo publicar el evento")
	}
}

// Escuchar subscribes to every screen channel and rebroadcasts into the local
// hub. Blocks until ctx is cancelled; run it in its own goroutine.
func (n *Notifier) Escuchar(ctx context.Context) {
	sub := n.rdb.Subscribe(ctx,
		CanalMesasActualizadas,
		CanalKDSUpdate,
		CanalMenuActualizado,
		CanalKDSMensaje,
	)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			n.hub.Broadcast([]byte(msg.Payload))
		}
	}
}
