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

package ir

import (
	"fmt"

	"github.com/google/btree"
)

// internEntry is one interned value, keyed by a content description so
// identical content is deduplicated and so the pool can be listed in a
// deterministic order independent of insertion order (used by the PIRT
// dump).
type internEntry struct {
	Key  string
	Addr DataAddress
}

func lessEntry(a, b internEntry) bool { return a.Key < b.Key }

// StaticDataPool is the append-only byte buffer backing the module's WAT
// (data …) section. Every interning method is idempotent: calling it
// twice with equal content returns the same DataAddress within one
// compile.
type StaticDataPool struct {
	buf      []byte
	interned map[string]DataAddress
	ordered  *btree.BTreeG[internEntry]

	nilAddr DataAddress
	tAddr   DataAddress
}

func NewStaticDataPool() *StaticDataPool {
	p := &StaticDataPool{
		interned: map[string]DataAddress{},
		ordered:  btree.NewG(32, lessEntry),
	}
	p.nilAddr = p.writeNil()
	p.intern("nil", p.nilAddr)
	p.tAddr = p.InternIdentifier("T")
	return p
}

func (p *StaticDataPool) intern(key string, addr DataAddress) {
	p.interned[key] = addr
	p.ordered.ReplaceOrInsert(internEntry{Key: key, Addr: addr})
}

func (p *StaticDataPool) alloc(n int) DataAddress {
	addr := DataAddress(len(p.buf))
	p.buf = append(p.buf, make([]byte, n)...)
	return addr
}

func putU32(b []byte, off int, v uint32) {
	b[off] = byte(v)
	b[off+1] = byte(v >> 8)
	b[off+2] = byte(v >> 16)
	b[off+3] = byte(v >> 24)
}

// writeNil allocates the single shared Nil value: a 12-byte record whose
// car and cdr both point to itself, so LoadCar/LoadCdr of nil yield nil.
func (p *StaticDataPool) writeNil() DataAddress {
	addr := p.alloc(12)
	self := uint32(addr)
	putU32(p.buf, int(addr), uint32(TagNil))
	putU32(p.buf, int(addr)+4, self)
	putU32(p.buf, int(addr)+8, self)
	return addr
}

// Nil returns the fixed static address of the shared nil value.
func (p *StaticDataPool) Nil() DataAddress { return p.nilAddr }

// T returns the fixed static address of the shared boolean-true value,
// represented as the interned Identifier "T".
func (p *StaticDataPool) T() DataAddress { return p.tAddr }

// InternSInt32 interns a signed 32-bit integer constant.
func (p *StaticDataPool) InternSInt32(v int32) DataAddress {
	key := fmt.Sprintf("int:%d", v)
	if addr, ok := p.interned[key]; ok {
		return addr
	}
	addr := p.alloc(8)
	putU32(p.buf, int(addr), uint32(TagSInt32))
	putU32(p.buf, int(addr)+4, uint32(v))
	p.intern(key, addr)
	return addr
}

func (p *StaticDataPool) internBytes(key string, tag Tag, s string) DataAddress {
	if addr, ok := p.interned[key]; ok {
		return addr
	}
	addr := p.alloc(8 + len(s))
	putU32(p.buf, int(addr), uint32(tag))
	putU32(p.buf, int(addr)+4, uint32(len(s)))
	copy(p.buf[int(addr)+8:], s)
	p.intern(key, addr)
	return addr
}

// InternString interns a CharacterData (dialect string) constant.
func (p *StaticDataPool) InternString(s string) DataAddress {
	return p.internBytes("str:"+s, TagCharacterData, s)
}

// InternIdentifier interns an Identifier constant. Kept in a distinct
// namespace from InternString even though both are length-prefixed byte
// blobs, per the spec's resolution of the source's identifier/string
// table ambiguity: identifiers and strings are separate interning maps.
func (p *StaticDataPool) InternIdentifier(s string) DataAddress {
	return p.internBytes("id:"+s, TagIdentifier, s)
}

// InternCons interns a ListNode (cons cell) pointing at the two given
// addresses.
func (p *StaticDataPool) InternCons(car, cdr DataAddress) DataAddress {
	key := fmt.Sprintf("cons:%d:%d", car, cdr)
	if addr, ok := p.interned[key]; ok {
		return addr
	}
	addr := p.alloc(12)
	putU32(p.buf, int(addr), uint32(TagListNode))
	putU32(p.buf, int(addr)+4, uint32(car))
	putU32(p.buf, int(addr)+8, uint32(cdr))
	p.intern(key, addr)
	return addr
}

// InternFunction interns a Function value wrapping a static table index
// with no captured persistent frame (table functions reached only by
// name never need one; lambdas get their own Function value at
// CreateFunction time, not through this path).
func (p *StaticDataPool) InternFunction(table FuncID) DataAddress {
	key := fmt.Sprintf("fn:%d", table)
	if addr, ok := p.interned[key]; ok {
		return addr
	}
	addr := p.alloc(12)
	putU32(p.buf, int(addr), uint32(TagFunction))
	putU32(p.buf, int(addr)+4, uint32(table))
	putU32(p.buf, int(addr)+8, 0)
	p.intern(key, addr)
	return addr
}

// AllocGlobalPlace writes a fresh, un-deduplicated indirection cell
// holding pointee's address and returns the cell's own address — the
// representation of a Global Place.
func (p *StaticDataPool) AllocGlobalPlace(pointee DataAddress) DataAddress {
	addr := p.alloc(4)
	putU32(p.buf, int(addr), uint32(pointee))
	return addr
}

// Bytes is the full static data buffer, emitted verbatim as the module's
// (data …) section.
func (p *StaticDataPool) Bytes() []byte { return p.buf }

// Len is the current size of the static data buffer; the WAT emitter
// computes heap_start as Len() + 10240 (10 KiB of stack).
func (p *StaticDataPool) Len() int { return len(p.buf) }

// Entry is one interned value's content key and address, used by the
// PIRT pretty-printer to render the pool in a stable order.
type Entry struct {
	Key  string
	Addr DataAddress
}

// Entries lists every interned value in ascending key order, independent
// of insertion order.
func (p *StaticDataPool) Entries() []Entry {
	out := make([]Entry, 0, p.ordered.Len())
	p.ordered.Ascend(func(e internEntry) bool {
		out = append(out, Entry{Key: e.Key, Addr: e.Addr})
		return true
	})
	return out
}
