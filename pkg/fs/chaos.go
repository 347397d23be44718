package fs

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sync"
)

// ChaosConfig controls write-fault injection probabilities.
// Each rate is a float64 from 0.0 (never) to 1.0 (always).
//
// The zero value disables all fault injection.
type ChaosConfig struct {
	// WriteFailRate controls how often File.Write fails entirely, writing
	// zero bytes and returning an error.
	WriteFailRate float64

	// PartialWriteRate controls how often File.Write writes only a prefix
	// of the given bytes before returning io.ErrShortWrite.
	PartialWriteRate float64
}

// Chaos wraps an [FS] and injects write faults into the files it opens,
// for testing a caller's handling of a failing append-only log.
//
// All other operations (reads, directory listings, renames, and so on)
// pass straight through to the underlying [FS].
type Chaos struct {
	underlying FS
	cfg        ChaosConfig
	mu         sync.Mutex
	rng        *rand.Rand
}

// NewChaos returns a [Chaos] wrapping underlying, using seed to drive
// fault selection deterministically. A nil config disables injection.
func NewChaos(underlying FS, seed int64, config *ChaosConfig) *Chaos {
	cfg := ChaosConfig{}
	if config != nil {
		cfg = *config
	}

	return &Chaos{
		underlying: underlying,
		cfg:        cfg,
		rng:        rand.New(rand.NewPCG(uint64(seed), uint64(seed))),
	}
}

func (c *Chaos) should(rate float64) bool {
	if rate <= 0 {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.rng.Float64() < rate
}

func (c *Chaos) wrap(f File, err error) (File, error) {
	if err != nil {
		return nil, err
	}

	return &chaosFile{File: f, c: c}, nil
}

func (c *Chaos) Open(path string) (File, error) {
	f, err := c.underlying.Open(path)
	return c.wrap(f, err)
}

func (c *Chaos) Create(path string) (File, error) {
	f, err := c.underlying.Create(path)
	return c.wrap(f, err)
}

func (c *Chaos) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	f, err := c.underlying.OpenFile(path, flag, perm)
	return c.wrap(f, err)
}

func (c *Chaos) ReadFile(path string) ([]byte, error) {
	return c.underlying.ReadFile(path)
}

func (c *Chaos) WriteFile(path string, data []byte, perm os.FileMode) error {
	return c.underlying.WriteFile(path, data, perm)
}

func (c *Chaos) ReadDir(path string) ([]os.DirEntry, error) {
	return c.underlying.ReadDir(path)
}

func (c *Chaos) MkdirAll(path string, perm os.FileMode) error {
	return c.underlying.MkdirAll(path, perm)
}

func (c *Chaos) Stat(path string) (os.FileInfo, error) {
	return c.underlying.Stat(path)
}

func (c *Chaos) Exists(path string) (bool, error) {
	return c.underlying.Exists(path)
}

func (c *Chaos) Remove(path string) error {
	return c.underlying.Remove(path)
}

func (c *Chaos) RemoveAll(path string) error {
	return c.underlying.RemoveAll(path)
}

func (c *Chaos) Rename(oldpath, newpath string) error {
	return c.underlying.Rename(oldpath, newpath)
}

// chaosFile wraps a [File], injecting write faults from the owning [Chaos].
// All other methods pass through to the embedded [File].
type chaosFile struct {
	File
	c *Chaos
}

func (f *chaosFile) Write(p []byte) (int, error) {
	if f.c.should(f.c.cfg.WriteFailRate) {
		return 0, fmt.Errorf("chaos: injected write failure")
	}

	if f.c.should(f.c.cfg.PartialWriteRate) && len(p) > 1 {
		n, err := f.File.Write(p[:len(p)/2])
		if err != nil {
			return n, err
		}

		return n, io.ErrShortWrite
	}

	return f.File.Write(p)
}
