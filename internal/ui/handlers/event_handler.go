package handlers

import (
	"fmt"
	"log/slog"

	"rgqview/internal/eventbus"
	"rgqview/internal/logic"
)

// EventHandler applies domain events to the section view states
type EventHandler struct {
	store  logic.SectionStore
	logger *slog.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(store logic.SectionStore, logger *slog.Logger) *EventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventHandler{
		store:  store,
		logger: logger.With("component", "ui.events"),
	}
}

// MarkLoading flags a section as waiting for content. It is registered as a
// load listener on the sections service.
func (h *EventHandler) MarkLoading(name string) {
	if section := h.store.GetSection(name); section != nil {
		section.Loading = true
		section.LoadErr = ""
	}
}

// HandleEvent processes a domain event and returns a status message, or ""
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) string {
	switch e := event.(type) {
	case eventbus.SectionLoadedEvent:
		section := h.store.GetSection(e.Name)
		if section == nil {
			h.logger.Debug("loaded section no longer present", "section", e.Name)
			return ""
		}
		section.Content = e.Content
		section.Loading = false
		section.LoadErr = ""

	case eventbus.SectionLoadFailedEvent:
		section := h.store.GetSection(e.Name)
		if section == nil {
			return ""
		}
		section.Loading = false
		if e.Err != nil {
			section.LoadErr = e.Err.Error()
		} else {
			section.LoadErr = "unknown error"
		}
		return fmt.Sprintf("Failed to load %s", e.Name)

	case eventbus.ConfigSavedEvent:
		return "Saved config to " + e.Path

	case eventbus.ErrorEvent:
		if e.Err != nil {
			return fmt.Sprintf("Error: %s: %v", e.Message, e.Err)
		}
		return "Error: " + e.Message
	}
	return ""
}
