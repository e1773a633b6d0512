// Package pager owns the single backing file of a B-tree store: it
// serialises and deserialises fixed-size node blocks at computed offsets
// and tracks cumulative read/write/alloc counts since the file was opened.
//
// File layout:
//
//	[0:4)   int32  magic (0xBEEFCAFE)
//	[4:8)   int32  version (1)
//	[8:12)  int32  t (minimum degree)
//	        dense array of node blocks, 6*t int32s each, starting at offset 12
//
// A node block is laid out as [n, leaf, key[0:2t-1), value[0:2t-1),
// child[0:2t)]. Address A lives at file offset 12 + A*6*t*4.
//
// Only one Pager may be open at a time; see Open.
package pager

import (
	"encoding/binary"
	"io"
	"log"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
)

const (
	headerSize = 3 * 4 // magic, version, t — each a 4-byte int32

	magicNumber int32 = -1091581186 // 0xBEEFCAFE as int32
	fileVersion int32 = 1

	// SentinelValue fills unused key/value slots on disk for debuggability.
	SentinelValue int32 = -559038737 // 0xDEADBEEF as int32
	// TombstoneValue marks a key's value slot as logically deleted.
	TombstoneValue int32 = -559030611 // 0xDEADDEAD as int32
)

// Node is one deserialized B-tree node, sized for the pager's current t.
type Node struct {
	N     int32
	Leaf  bool
	Key   []int32 // length 2t-1; only [0,N) live
	Value []int32 // length 2t-1; only [0,N) live, parallel to Key
	Child []int32 // length 2t; only [0,N] live when !Leaf
}

// NewNode allocates a node buffer sized for minimum degree t, with every
// slot pre-filled with SentinelValue.
func NewNode(t int32) *Node {
	maxKeys := 2*t - 1
	maxChildren := 2 * t
	n := &Node{
		Leaf:  true,
		Key:   make([]int32, maxKeys),
		Value: make([]int32, maxKeys),
		Child: make([]int32, maxChildren),
	}
	for i := range n.Key {
		n.Key[i] = SentinelValue
		n.Value[i] = SentinelValue
	}
	for i := range n.Child {
		n.Child[i] = SentinelValue
	}
	return n
}

var (
	globalMu   sync.Mutex
	globalOpen bool
)

// Pager owns one open B-tree data file. The file and counters live on the
// returned handle; a package-level guard ensures exactly one Pager is open
// at a time process-wide (see Open).
type Pager struct {
	file *os.File
	t    int32
	size int64 // bytes occupied by node blocks, i.e. (fileSize - headerSize)

	reads  uint64
	writes uint64
	allocs uint64

	closed bool
}

func blockSize(t int32) int64 {
	return int64(6*t) * 4
}

// Open opens or creates the single-file store at path. If the file exists,
// tDesired is ignored and the stored t is adopted; otherwise tDesired must
// be >= 2 and seeds a new file. Read/write/alloc counters reset to zero.
func Open(path string, tDesired int32) (*Pager, error) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalOpen {
		return nil, errors.New("pager: a store is already open; close it before opening another")
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "pager: open %q", path)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "pager: stat %q", path)
	}

	p := &Pager{file: f}

	if info.Size() == 0 {
		if tDesired < 2 {
			f.Close()
			return nil, errors.Newf("pager: t must be >= 2 for a new file, got %d", tDesired)
		}
		p.t = tDesired
		if err := p.writeHeader(); err != nil {
			f.Close()
			return nil, err
		}
	} else {
		hdr := make([]byte, headerSize)
		if _, err := io.ReadFull(io.NewSectionReader(f, 0, headerSize), hdr); err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "pager: read header of %q", path)
		}
		magic := int32(binary.NativeEndian.Uint32(hdr[0:4]))
		version := int32(binary.NativeEndian.Uint32(hdr[4:8]))
		storedT := int32(binary.NativeEndian.Uint32(hdr[8:12]))
		if magic != magicNumber || version != fileVersion {
			f.Close()
			return nil, errors.Newf("pager: %q is not a valid store (magic=%#x version=%d)", path, uint32(magic), version)
		}
		if storedT < 2 {
			f.Close()
			return nil, errors.Newf("pager: %q has invalid stored degree t=%d", path, storedT)
		}
		p.t = storedT
		if rem := (info.Size() - headerSize) % blockSize(storedT); rem != 0 {
			log.Printf("pager: %q size %d does not align with header (t=%d, blockSize=%d)", path, info.Size(), storedT, blockSize(storedT))
		}
		p.size = info.Size() - headerSize
	}

	globalOpen = true
	return p, nil
}

func (p *Pager) requireOpen() {
	if p.closed {
		panic(errors.AssertionFailedf("pager: operation on a closed pager"))
	}
}

func (p *Pager) writeHeader() error {
	hdr := make([]byte, headerSize)
	magic := magicNumber
	binary.NativeEndian.PutUint32(hdr[0:4], uint32(magic))
	binary.NativeEndian.PutUint32(hdr[4:8], uint32(fileVersion))
	binary.NativeEndian.PutUint32(hdr[8:12], uint32(p.t))
	if _, err := p.file.WriteAt(hdr, 0); err != nil {
		return errors.Wrap(err, "pager: write header")
	}
	return nil
}

// Close flushes and closes the underlying file. Idempotent once closed.
func (p *Pager) Close() error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	globalOpen = false
	if err := p.file.Sync(); err != nil {
		p.file.Close()
		return errors.Wrap(err, "pager: sync before close")
	}
	if err := p.file.Close(); err != nil {
		return errors.Wrap(err, "pager: close")
	}
	return nil
}

// Empty reports whether the file contains no node blocks yet.
func (p *Pager) Empty() bool {
	p.requireOpen()
	return p.size == 0
}

// GetT returns the minimum degree of the currently open store.
func (p *Pager) GetT() int32 {
	p.requireOpen()
	return p.t
}

func (p *Pager) ReadCount() uint64  { return p.reads }
func (p *Pager) WriteCount() uint64 { return p.writes }
func (p *Pager) AllocCount() uint64 { return p.allocs }

func (p *Pager) offset(addr int32) int64 {
	return headerSize + int64(addr)*blockSize(p.t)
}

// Alloc reserves the next free node address and extends the file by one
// block. Extension is a single seek-and-write of the block's last byte
// (sparse), not a zero-filled buffer write, so cost is independent of t.
func (p *Pager) Alloc() (int32, error) {
	p.requireOpen()
	bs := blockSize(p.t)
	addr := int32(p.size / bs)
	target := p.offset(addr) + bs - 1
	if _, err := p.file.WriteAt([]byte{0}, target); err != nil {
		return 0, errors.Wrapf(err, "pager: alloc: extend to offset %d", target)
	}
	p.size += bs
	p.allocs++
	return addr, nil
}

// Read deserializes the node block at addr into node, which must already be
// sized for this pager's t (see NewNode). Short reads are fatal.
func (p *Pager) Read(addr int32, node *Node) error {
	p.requireOpen()
	if addr < 0 {
		panic(errors.AssertionFailedf("pager: read: negative address %d", addr))
	}
	maxKeys := 2*p.t - 1
	maxChildren := 2 * p.t
	off := p.offset(addr)

	buf := make([]byte, blockSize(p.t))
	n, err := p.file.ReadAt(buf, off)
	if err != nil && !(err == io.EOF && int64(n) == int64(len(buf))) {
		return errors.Wrapf(err, "pager: short read at addr=%d offset=%d (got %d/%d bytes)", addr, off, n, len(buf))
	}

	cur := 0
	readInt := func() int32 {
		v := int32(binary.NativeEndian.Uint32(buf[cur : cur+4]))
		cur += 4
		return v
	}
	node.N = readInt()
	node.Leaf = readInt() != 0
	for i := int32(0); i < maxKeys; i++ {
		node.Key[i] = readInt()
	}
	for i := int32(0); i < maxKeys; i++ {
		node.Value[i] = readInt()
	}
	for i := int32(0); i < maxChildren; i++ {
		node.Child[i] = readInt()
	}

	p.reads++
	return nil
}

// Write serializes node to the block at addr. Short writes are fatal.
func (p *Pager) Write(addr int32, node *Node) error {
	p.requireOpen()
	if addr < 0 {
		panic(errors.AssertionFailedf("pager: write: negative address %d", addr))
	}
	maxKeys := 2*p.t - 1
	maxChildren := 2 * p.t
	off := p.offset(addr)

	buf := make([]byte, blockSize(p.t))
	cur := 0
	putInt := func(v int32) {
		binary.NativeEndian.PutUint32(buf[cur:cur+4], uint32(v))
		cur += 4
	}
	putInt(node.N)
	if node.Leaf {
		putInt(1)
	} else {
		putInt(0)
	}
	for i := int32(0); i < maxKeys; i++ {
		putInt(node.Key[i])
	}
	for i := int32(0); i < maxKeys; i++ {
		putInt(node.Value[i])
	}
	for i := int32(0); i < maxChildren; i++ {
		putInt(node.Child[i])
	}

	n, err := p.file.WriteAt(buf, off)
	if err != nil || n != len(buf) {
		return errors.Wrapf(err, "pager: short write at addr=%d offset=%d (wrote %d/%d bytes)", addr, off, n, len(buf))
	}

	p.writes++
	return nil
}
