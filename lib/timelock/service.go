// Copyright 2026 The GXT Authors
// SPDX-License-Identifier: Apache-2.0

package timelock

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gxt-foundation/gxt/lib/key"
	"github.com/gxt-foundation/gxt/lib/token"
)

// Service answers timelock requests from a single master secret.
type Service struct {
	master key.Secret
	logger *slog.Logger

	// now is the clock used for release checks. Overridable for
	// deterministic testing.
	now func() time.Time
}

// ServiceConfig configures a Service.
type ServiceConfig struct {
	// Master is the master secret all timelock keys derive from.
	Master key.Secret

	// Logger is the structured logger. Required.
	Logger *slog.Logger

	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// NewService creates a timelock service.
func NewService(config ServiceConfig) *Service {
	if config.Logger == nil {
		panic("timelock.Service: Logger is required")
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		master: config.Master,
		logger: config.Logger,
		now:    now,
	}
}

// Handler returns the HTTP routes:
//
//	GET /v1/tlock/public?timestamp=<rfc3339>&label=<text>
//	    → the ID card for the timelock key (any timestamp).
//	GET /v1/tlock/private?timestamp=<rfc3339>&label=<text>
//	    header id_card: <requester's gxi token>
//	    → the timelock secret, encrypted to the requester;
//	      403 until the timestamp has passed.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/tlock/public", s.handlePublic)
	mux.HandleFunc("GET /v1/tlock/private", s.handlePrivate)
	return mux
}

func (s *Service) handlePublic(writer http.ResponseWriter, request *http.Request) {
	lock, err := lockFromQuery(request)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	derived, err := Derive(s.master, lock)
	if err != nil {
		s.logger.Error("timelock derivation failed", "error", err)
		http.Error(writer, "internal", http.StatusInternalServerError)
		return
	}

	card, err := token.MakeIDCard(derived, lock)
	if err != nil {
		s.logger.Error("building timelock ID card", "error", err)
		http.Error(writer, "internal", http.StatusInternalServerError)
		return
	}

	s.logger.Info("issued timelock ID card", "timestamp", lock.Timestamp, "label", lock.Label)
	fmt.Fprint(writer, card)
}

func (s *Service) handlePrivate(writer http.ResponseWriter, request *http.Request) {
	lock, err := lockFromQuery(request)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	unlockTime, err := time.Parse(time.RFC3339, lock.Timestamp)
	if err != nil {
		// lockFromQuery already validated; unreachable, but the
		// release check below must never run on a garbage time.
		http.Error(writer, "bad timestamp", http.StatusBadRequest)
		return
	}
	if s.now().Before(unlockTime) {
		http.Error(writer, "not yet available", http.StatusForbidden)
		return
	}

	requesterCard := request.Header.Get("id_card")
	if requesterCard == "" {
		http.Error(writer, "missing id_card header", http.StatusBadRequest)
		return
	}

	derived, err := Derive(s.master, lock)
	if err != nil {
		s.logger.Error("timelock derivation failed", "error", err)
		http.Error(writer, "internal", http.StatusInternalServerError)
		return
	}

	release := Release{
		Timestamp: lock.Timestamp,
		Label:     lock.Label,
		SecretKey: fmt.Sprintf("%x", derived[:]),
	}
	message, err := token.MakeMessage(s.master, requesterCard, release, nil)
	if err != nil {
		// Most likely an invalid requester card — their fault, not ours.
		http.Error(writer, fmt.Sprintf("encrypting release: %v", err), http.StatusBadRequest)
		return
	}

	s.logger.Info("released timelock secret", "timestamp", lock.Timestamp, "label", lock.Label)
	fmt.Fprint(writer, message)
}

// lockFromQuery reads and validates the timelock named by the
// request's query parameters.
func lockFromQuery(request *http.Request) (Timelock, error) {
	timestamp := request.URL.Query().Get("timestamp")
	if _, err := time.Parse(time.RFC3339, timestamp); err != nil {
		return Timelock{}, fmt.Errorf("bad timestamp")
	}
	return Timelock{
		Timestamp: timestamp,
		Label:     request.URL.Query().Get("label"),
	}, nil
}
