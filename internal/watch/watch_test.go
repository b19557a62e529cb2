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

package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRunRebuildsOnceImmediatelyThenOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.pbs")
	if err := os.WriteFile(path, []byte("(princ 1)"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	stop := make(chan struct{})
	seen := make(chan uuid.UUID, 8)
	go func() {
		err := Run([]string{path}, stop, func(id uuid.UUID) { seen <- id })
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	}()

	select {
	case <-seen:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected an immediate initial rebuild")
	}

	if err := os.WriteFile(path, []byte("(princ 2)"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case <-seen:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a rebuild after the file changed")
	}

	close(stop)
}
