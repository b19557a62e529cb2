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

// Package watch drives --watch mode: it recompiles whenever one of the
// input files changes, debouncing bursts of events fsnotify tends to
// deliver for a single editor save.
package watch

import (
	"log"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

// Debounce is how long to wait after the last event in a burst before
// triggering a recompile.
const Debounce = 100 * time.Millisecond

// Run watches files and calls rebuild once per debounced burst of
// changes, until stop is closed. Each rebuild is handed a fresh UUID so
// a caller writing to temporary files never collides with a rebuild
// that is still in flight.
func Run(files []string, stop <-chan struct{}, rebuild func(runID uuid.UUID)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, f := range files {
		if err := w.Add(f); err != nil {
			return err
		}
	}

	rebuild(uuid.New())

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	for {
		select {
		case <-stop:
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(Debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(Debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("proboscis: watch error: %v", err)
		case <-fire:
			rebuild(uuid.New())
		}
	}
}
