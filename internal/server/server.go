package server

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"eventnite/internal/config"
	"eventnite/internal/discord"
	"eventnite/internal/manager"
	"eventnite/internal/timeparse"
	"eventnite/internal/types"
)

const maxBodySize = 1 << 20 // 1 MB

// Server receives Discord slash-command interactions over the webhook
// endpoint, dispatches them to the event manager, and exposes health/admin
// routes.
type Server struct {
	cfg    *config.Config
	mgr    *manager.Manager
	pubKey ed25519.PublicKey
	router chi.Router
	logger *slog.Logger
}

// NewServer creates a Server wired with the given dependencies. The
// configured Discord public key must be a hex-encoded Ed25519 key; Discord
// signs every interaction request with the matching private key.
func NewServer(cfg *config.Config, mgr *manager.Manager, logger *slog.Logger) (*Server, error) {
	key, err := hex.DecodeString(cfg.Discord.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("decoding discord.public_key: %w", err)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("discord.public_key is %d bytes, want %d", len(key), ed25519.PublicKeySize)
	}

	s := &Server{
		cfg:    cfg,
		mgr:    mgr,
		pubKey: ed25519.PublicKey(key),
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logging(logger))
	r.Use(Recovery(logger))

	r.Post("/interactions", s.handleInteraction)
	r.Get("/health", s.handleHealth)
	r.Get("/admin/events", s.handleAdminEvents)

	s.router = r
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleInteraction processes POST /interactions.
// Pipeline: verify signature → decode → dispatch → respond.
func (s *Server) handleInteraction(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reading request body"})
		return
	}
	if len(body) > maxBodySize {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body exceeds 1MB limit"})
		return
	}

	if !s.verifySignature(r, body) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid request signature"})
		return
	}

	var in Interaction
	if err := json.Unmarshal(body, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "request body is not a valid interaction"})
		return
	}

	switch in.Type {
	case interactionPing:
		writeJSON(w, http.StatusOK, interactionResponse{Type: responsePong})
	case interactionCommand:
		content := s.dispatch(r.Context(), &in)
		writeJSON(w, http.StatusOK, interactionResponse{
			Type: responseChannelMessage,
			Data: &interactionResponseData{Content: content},
		})
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("unsupported interaction type %d", in.Type),
		})
	}
}

// verifySignature checks the Ed25519 signature Discord attaches to every
// interaction request: sign(timestamp || body).
func (s *Server) verifySignature(r *http.Request, body []byte) bool {
	sig, err := hex.DecodeString(r.Header.Get("X-Signature-Ed25519"))
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	ts := r.Header.Get("X-Signature-Timestamp")
	if ts == "" {
		return false
	}

	msg := make([]byte, 0, len(ts)+len(body))
	msg = append(msg, ts...)
	msg = append(msg, body...)
	return ed25519.Verify(s.pubKey, msg, sig)
}

func (s *Server) dispatch(ctx context.Context, in *Interaction) string {
	switch in.Data.Name {
	case "newevent":
		return s.newEvent(ctx, in)
	case "deleteevent":
		return s.deleteEvent(ctx, in)
	case "editevent":
		return s.editEvent(ctx, in)
	case "listevents":
		return s.listEvents()
	default:
		return fmt.Sprintf("Unknown command %q.", in.Data.Name)
	}
}

func (s *Server) newEvent(ctx context.Context, in *Interaction) string {
	name := in.Data.stringOption("name")
	hours := in.Data.intOption("hours", 1)
	description := in.Data.stringOption("description")

	date, err := timeparse.Parse(in.Data.stringOption("date"))
	if err != nil {
		return parseErrorMessage(err)
	}

	ev, err := s.mgr.AddNewEvent(ctx, name, date, hours, description, in.actor())
	if err != nil {
		return s.errorMessage(err)
	}

	return fmt.Sprintf("Scheduled %q for %s to %s.", ev.Name, formatDate(ev.Date), formatDate(ev.EndDate()))
}

func (s *Server) deleteEvent(ctx context.Context, in *Interaction) string {
	name := in.Data.stringOption("name")

	if err := s.mgr.DeleteEvent(ctx, name, in.actor()); err != nil {
		// Someone beat us to it on Discord. Not a failure worth alarming
		// the user about.
		if discord.IsAlreadyCancelled(err) {
			return fmt.Sprintf("%q was already cancelled on Discord.", name)
		}
		return s.errorMessage(err)
	}

	return fmt.Sprintf("Cancelled %q.", name)
}

func (s *Server) editEvent(ctx context.Context, in *Interaction) string {
	name := in.Data.stringOption("name")
	newName := in.Data.stringOption("new_name")
	hours := in.Data.intOption("hours", 1)
	description := in.Data.stringOption("description")

	date, err := timeparse.Parse(in.Data.stringOption("date"))
	if err != nil {
		return parseErrorMessage(err)
	}

	ev, err := s.mgr.EditEvent(ctx, name, newName, date, hours, description, in.actor())
	if err != nil {
		return s.errorMessage(err)
	}

	return fmt.Sprintf("Updated %q: now %s to %s.", ev.Name, formatDate(ev.Date), formatDate(ev.EndDate()))
}

func (s *Server) listEvents() string {
	events, err := s.mgr.Events()
	if err != nil {
		return s.errorMessage(err)
	}
	if len(events) == 0 {
		return "No events scheduled."
	}

	var b strings.Builder
	b.WriteString("Scheduled events:\n")
	for _, ev := range events {
		fmt.Fprintf(&b, "• %s — %s (%d hour(s), %d subscribed)\n",
			ev.Name, formatDate(ev.Date), ev.Hours, ev.SubscriberCount)
	}
	return b.String()
}

// errorMessage translates manager errors into user-facing replies.
// Validation errors mean nothing happened; anything unrecognized is logged
// and reported vaguely, because the remote action may or may not have gone
// through.
func (s *Server) errorMessage(err error) string {
	switch {
	case errors.Is(err, manager.ErrPastEvent):
		return "Cannot create events in the past."
	case errors.Is(err, manager.ErrDuplicate):
		return "An event with that name already exists."
	case errors.Is(err, manager.ErrNotFound):
		return "No active schedule found with that name."
	case errors.Is(err, manager.ErrCorruptState):
		return "Multiple events share that name; were some added by mistake?"
	case errors.Is(err, manager.ErrRemotePast):
		return "Cannot schedule event in the past."
	}

	s.logger.Error("command failed", "error", err)
	return "Something went wrong talking to Discord. The event may not have been saved."
}

func parseErrorMessage(err error) string {
	var pe *timeparse.ParseError
	if errors.As(err, &pe) {
		return fmt.Sprintf("Could not read that date: %s.", pe.Reason)
	}
	return "Could not read that date."
}

func formatDate(t time.Time) string {
	return t.Format("Mon Jan 2 2006 3:04 PM MST")
}

// handleHealth responds to GET /health with a simple liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAdminEvents responds to GET /admin/events with the local snapshot.
func (s *Server) handleAdminEvents(w http.ResponseWriter, _ *http.Request) {
	events, err := s.mgr.Events()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load events"})
		return
	}

	records := make([]types.Record, len(events))
	for i, ev := range events {
		records[i] = ev.ToRecord()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"events": records,
		"count":  len(records),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
