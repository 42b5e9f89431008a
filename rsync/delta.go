package rsync

import (
	"io"
)

// DeltaOp is one instruction of a delta.
type DeltaOp struct {
	Hash uint32
	// Data is the line to emit at this position.
	// nil means the old line identified by Hash is not present anymore.
	Data []byte
}

func (op DeltaOp) Removed() bool {
	return op.Data == nil
}

// Calculator aligns the hashes of an old signature against a new data file.
type Calculator struct {
	oldHashes []uint32
	dataPath  string
	ops       []DeltaOp
}

func NewCalculator(sigPath string, dataPath string) (*Calculator, error) {
	sig, err := NewSignature(sigPath, SignatureFile)
	if err != nil {
		return nil, err
	}
	return NewCalculatorFromSignature(sig, dataPath)
}

func NewCalculatorFromSignature(sig *Signature, dataPath string) (*Calculator, error) {
	// Fail early, the file is opened again by Calculate
	f, err := openFile(dataPath)
	if err != nil {
		return nil, err
	}
	f.Close()

	return &Calculator{
		oldHashes: sig.Hashes(),
		dataPath:  dataPath,
	}, nil
}

// Calculate scans the data file and recomputes the delta from scratch.
func (c *Calculator) Calculate() error {
	f, err := openFile(c.dataPath)
	if err != nil {
		return err
	}
	defer f.Close()

	lines, err := buildLineIndex(f)
	if err != nil {
		return err
	}

	a := &aligner{
		old:   c.oldHashes,
		lines: lines,
		ops:   make([]DeltaOp, 0),
	}
	if err := a.run(); err != nil {
		return err
	}
	c.ops = a.ops
	return nil
}

func (c *Calculator) IsChanged() bool {
	return len(c.ops) > 0
}

// Ops returns a copy of the delta, in application order.
func (c *Calculator) Ops() []DeltaOp {
	ops := make([]DeltaOp, len(c.ops))
	copy(ops, c.ops)
	return ops
}

// SerializeDelta writes the delta as text. Nothing is written for an unchanged file.
func (c *Calculator) SerializeDelta(w io.Writer) error {
	return writeDelta(w, c.ops)
}

/* aligner walks the old hashes in order with a forward-only cursor into the new lines.
   An old hash matched at line j is an anchor: the new lines between the last anchor and j are
   emitted, the anchor itself never is. An old hash that can't be matched is a removal.
*/
type aligner struct {
	old     []uint32
	lines   *lineIndex
	cursor  int // next new line a search starts from
	emitted int // new lines before it are accounted for
	ops     []DeltaOp
}

func (a *aligner) run() error {
	for i, h := range a.old {
		j := a.lines.find(h, a.cursor)
		if a.removed(i, j) {
			a.ops = append(a.ops, DeltaOp{Hash: h})
			continue
		}
		if err := a.emitUntil(j); err != nil {
			return err
		}
		a.cursor = j + 1
		a.emitted = j + 1
	}
	// Whatever follows the last anchor is new
	return a.emitUntil(a.lines.Len())
}

// removed decides whether old hash i, whose search landed on j, is treated as absent.
// Unless j is the cursor itself, the next old hash is looked up from the cursor too: when it
// lands at or before j, hash i gives way and the cursor stays. One step only, longer duplicate
// runs are not resolved.
func (a *aligner) removed(i int, j int) bool {
	if j < 0 {
		return true
	}
	if j == a.cursor || i+1 >= len(a.old) {
		return false
	}
	k := a.lines.find(a.old[i+1], a.cursor)
	return k >= 0 && k <= j
}

func (a *aligner) emitUntil(end int) error {
	for ; a.emitted < end; a.emitted++ {
		line, err := a.lines.Line(a.emitted)
		if err != nil {
			return err
		}
		a.ops = append(a.ops, DeltaOp{
			Hash: a.lines.Record(a.emitted).Hash,
			Data: line,
		})
	}
	return nil
}
