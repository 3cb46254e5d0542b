package models

import "time"

// Block is one observation bucket. The last block of a Window is the current one and is
// the only block that receives new outcomes.
type Block struct {
	StartTime    time.Time `json:"startTime"`
	SuccessCount uint64    `json:"successCount"`
	FailureCount uint64    `json:"failureCount"`
}

// Total returns the number of outcomes recorded in the block.
func (b Block) Total() uint64 {
	return b.SuccessCount + b.FailureCount
}

// Window is the oldest-first block history of one label.
type Window struct {
	Blocks []Block `json:"blocks"`
}

// Current returns the mutable current block, or nil for an empty window.
func (w *Window) Current() *Block {
	if len(w.Blocks) == 0 {
		return nil
	}
	return &w.Blocks[len(w.Blocks)-1]
}

// Open appends a fresh current block starting at start.
func (w *Window) Open(start time.Time) *Block {
	w.Blocks = append(w.Blocks, Block{StartTime: start})
	return w.Current()
}

// DropOldest removes the n oldest blocks. It never removes more blocks than exist.
func (w *Window) DropOldest(n int) int {
	if n <= 0 {
		return 0
	}
	if n > len(w.Blocks) {
		n = len(w.Blocks)
	}
	// shift instead of reslicing so the backing array does not grow without bound
	copy(w.Blocks, w.Blocks[n:])
	clear(w.Blocks[len(w.Blocks)-n:])
	w.Blocks = w.Blocks[:len(w.Blocks)-n]
	return n
}

// Clone returns a deep copy of w.
func (w *Window) Clone() *Window {
	if w == nil {
		return &Window{}
	}
	blocks := make([]Block, len(w.Blocks))
	copy(blocks, w.Blocks)
	return &Window{Blocks: blocks}
}

// VersionedWindow is a window as read from storage. Version 0 means the window has never
// been written; every successful write stores the previous version plus one.
type VersionedWindow struct {
	Version uint64
	Window  *Window
}

// NewEmptyVersionedWindow returns the state of a window that does not exist yet.
func NewEmptyVersionedWindow() *VersionedWindow {
	return &VersionedWindow{Window: &Window{}}
}

func (v *VersionedWindow) IsNewWindow() bool {
	return v.Version == 0
}
