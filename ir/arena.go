package ir

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/wasm-ir/errors"
)

// DefaultChunkBytes is the size of one allocation chunk.
const DefaultChunkBytes = 10000

// Ref is a handle to an expression owned by an Arena. The variant kind is
// kept in the top bits and the slot within that variant's storage below it.
// The zero Ref is NoRef and marks an absent optional child.
type Ref uint32

// NoRef is the absent child.
const NoRef Ref = 0

const (
	refKindBits = 5
	refSlotBits = 32 - refKindBits
	refSlotMask = 1<<refSlotBits - 1
)

func makeRef(k Kind, slot uint32) Ref {
	return Ref(uint32(k)<<refSlotBits | slot)
}

// Kind returns the variant the handle refers to.
func (r Ref) Kind() Kind { return Kind(r >> refSlotBits) }

// Slot returns the index of the node within its variant's storage.
func (r Ref) Slot() uint32 { return uint32(r) & refSlotMask }

// IsSet reports whether r refers to a node.
func (r Ref) IsSet() bool { return r != NoRef }

func (r Ref) String() string {
	if r == NoRef {
		return "none"
	}
	return fmt.Sprintf("%s#%d", r.Kind(), r.Slot())
}

// ArenaOptions configures an Arena.
type ArenaOptions struct {
	// ChunkBytes is the target size of one chunk. Each variant gets chunks
	// holding as many nodes as fit, and at least one.
	ChunkBytes int
}

// DefaultArenaOptions returns the default arena configuration.
func DefaultArenaOptions() ArenaOptions {
	return ArenaOptions{ChunkBytes: DefaultChunkBytes}
}

// Arena owns every expression of one compilation unit. Nodes are carved from
// fixed-capacity chunks that never move, so a pointer obtained from Get or
// Alloc stays valid while further nodes are allocated. There is no per-node
// free; Release drops all chunks at once.
//
// An Arena is not safe for concurrent use. Handles from one arena must not
// be resolved against another.
type Arena struct {
	slabs  [numKinds]store
	opts   ArenaOptions
	nodes  int
	chunks int
}

// NewArena creates an arena with default options.
func NewArena() *Arena {
	return NewArenaWithOptions(DefaultArenaOptions())
}

// NewArenaWithOptions creates an arena with the given options.
func NewArenaWithOptions(opts ArenaOptions) *Arena {
	if opts.ChunkBytes <= 0 {
		opts.ChunkBytes = DefaultChunkBytes
	}
	return &Arena{opts: opts}
}

// Alloc returns a fresh zero-valued node of variant T and its handle.
func Alloc[T any, P interface {
	*T
	Expression
}](a *Arena) (Ref, P) {
	var zero T
	k := P(&zero).Kind()

	s, _ := a.slabs[k].(*slab[T])
	if s == nil {
		s = newSlab[T](a.opts.ChunkBytes)
		a.slabs[k] = s
	}
	if s.n > refSlotMask {
		errors.Invariant(errors.PhaseBuild, "arena holds too many %s nodes", k)
	}

	slot, p, grew := s.alloc()
	if grew {
		a.chunks++
		Logger().Debug("arena chunk allocated",
			zap.Stringer("kind", k),
			zap.Int("nodes_per_chunk", s.perChunk),
			zap.Int("chunks", a.chunks))
	}
	a.nodes++
	return makeRef(k, slot), P(p)
}

// Get resolves a handle. Resolving NoRef or a handle this arena did not
// issue is a structural error and panics.
func (a *Arena) Get(ref Ref) Expression {
	k := ref.Kind()
	if ref == NoRef || k >= numKinds || a.slabs[k] == nil {
		errors.Invariant(errors.PhaseBuild, "dangling expression handle %s", ref)
	}
	e, ok := a.slabs[k].get(ref.Slot())
	if !ok {
		errors.Invariant(errors.PhaseBuild, "dangling expression handle %s", ref)
	}
	return e
}

// As resolves a handle to a specific variant, panicking on a kind mismatch.
func As[T any, P interface {
	*T
	Expression
}](a *Arena, ref Ref) P {
	p, ok := a.Get(ref).(P)
	if !ok {
		errors.Invariant(errors.PhaseBuild, "handle %s is not a %T", ref, p)
	}
	return p
}

// Len returns the number of live nodes.
func (a *Arena) Len() int { return a.nodes }

// Chunks returns the number of chunks allocated so far.
func (a *Arena) Chunks() int { return a.chunks }

// Release frees every node at once. The arena is empty afterwards and can be
// reused; handles issued before the release must not be resolved again.
func (a *Arena) Release() {
	Logger().Debug("arena released",
		zap.Int("nodes", a.nodes),
		zap.Int("chunks", a.chunks))
	a.slabs = [numKinds]store{}
	a.nodes = 0
	a.chunks = 0
}

type store interface {
	get(slot uint32) (Expression, bool)
}

// slab is the chunked storage for one variant.
type slab[T any] struct {
	chunks   [][]T
	perChunk int
	n        int
}

func newSlab[T any](chunkBytes int) *slab[T] {
	var zero T
	per := chunkBytes / int(unsafe.Sizeof(zero))
	if per < 1 {
		per = 1
	}
	return &slab[T]{perChunk: per}
}

func (s *slab[T]) alloc() (slot uint32, p *T, grew bool) {
	last := len(s.chunks) - 1
	if last < 0 || len(s.chunks[last]) == s.perChunk {
		s.chunks = append(s.chunks, make([]T, 0, s.perChunk))
		last++
		grew = true
	}
	var zero T
	s.chunks[last] = append(s.chunks[last], zero)
	slot = uint32(s.n)
	s.n++
	return slot, &s.chunks[last][len(s.chunks[last])-1], grew
}

func (s *slab[T]) get(slot uint32) (Expression, bool) {
	if int(slot) >= s.n {
		return nil, false
	}
	e, ok := any(&s.chunks[int(slot)/s.perChunk][int(slot)%s.perChunk]).(Expression)
	return e, ok
}
