package handlers

import (
	"github.com/BigDaddyAman/webhook-catcher/internal/config"
	"github.com/BigDaddyAman/webhook-catcher/internal/forward"
	"github.com/BigDaddyAman/webhook-catcher/internal/replay"
	"github.com/BigDaddyAman/webhook-catcher/internal/storage"
)

type Handler struct {
	store     *storage.WebhookStore
	forwarder *forward.Forwarder
	replayer  *replay.Replayer
	cfg       *config.Config
}

func NewHandler(store *storage.WebhookStore, forwarder *forward.Forwarder, replayer *replay.Replayer, cfg *config.Config) *Handler {
	return &Handler{
		store:     store,
		forwarder: forwarder,
		replayer:  replayer,
		cfg:       cfg,
	}
}
