/*
Copyright (C) 2026  The Proboscis Authors

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package serveapi runs proboscis as a compile-as-a-service: a client
// opens a WebSocket connection, streams LISP source, and receives back
// either the compiled WAT text or a rendered diagnostic transcript.
package serveapi

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/launix-de/NonLockingReadMap"

	"github.com/launix-de/proboscis/internal/compiler"
	"github.com/launix-de/proboscis/internal/intrinsics"
)

// intrinsicEntry satisfies NonLockingReadMap's KeyGetter/Sizable
// contract so the supported-intrinsic set can be read lock-free by
// every concurrent connection.
type intrinsicEntry struct {
	name string
}

func (e intrinsicEntry) GetKey() string    { return e.name }
func (e intrinsicEntry) ComputeSize() uint { return uint(16 + len(e.name)) }

// Server holds the one process-wide, write-once intrinsic registry that
// Supports reads from; compile requests do not consult it.
type Server struct {
	registry    NonLockingReadMap.NonLockingReadMap[intrinsicEntry, string]
	runtimeBody string
	upgrader    websocket.Upgrader
}

// New builds a Server and populates its intrinsic registry once.
// runtimeBody is rt/rt.wat's text, spliced into every compiled module.
func New(runtimeBody string) *Server {
	s := &Server{
		registry:    NonLockingReadMap.New[intrinsicEntry, string](),
		runtimeBody: runtimeBody,
		upgrader:    websocket.Upgrader{ReadBufferSize: 4096, WriteBufferSize: 4096},
	}
	for _, name := range intrinsics.Names {
		s.registry.Set(&intrinsicEntry{name: name})
	}
	return s
}

// Supports reports whether name is a known intrinsic, read from the
// lock-free registry — safe to call from any number of concurrent
// connection goroutines.
func (s *Server) Supports(name string) bool {
	return s.registry.Get(name) != nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("proboscis serve: upgrade: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.New()
	log.Printf("proboscis serve: connection %s opened", connID)
	defer log.Printf("proboscis serve: connection %s closed", connID)

	for {
		conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		s.handleCompile(conn, connID, string(data))
	}
}

func (s *Server) handleCompile(conn *websocket.Conn, connID uuid.UUID, source string) {
	var out, diagOut strings.Builder
	err := compiler.Compile(
		[]compiler.Input{{Name: connID.String(), Text: source}},
		compiler.Options{Out: &out, Diag: &diagOut, RuntimeBody: s.runtimeBody},
	)
	if err != nil {
		conn.WriteMessage(websocket.TextMessage, []byte("error: "+diagOut.String()))
		return
	}
	conn.WriteMessage(websocket.TextMessage, []byte(out.String()))
}

// ListenAndServe starts the HTTP/WebSocket listener, mirroring the
// reference codebase's own bare http.Server construction for a single
// handler mounted at the root path.
func ListenAndServe(addr string, s *Server) error {
	server := &http.Server{
		Addr:           addr,
		Handler:        s,
		ReadTimeout:    300 * time.Second,
		WriteTimeout:   300 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	log.Printf("proboscis serve: listening on %s", addr)
	return server.ListenAndServe()
}
