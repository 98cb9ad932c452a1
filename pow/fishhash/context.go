// Copyright (c) 2015-2024 The fishdagd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fishhash builds and serves the FishHashPlus light cache and
// optional full dataset: the memory-hard ingredient the v2 proof-of-work
// pipeline draws on.
package fishhash

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/fishdagd/fishdagd/crypto/hashes"
)

// Wire-bound constants; changing any of these desynchronizes the dataset
// from every other node building it from the same seed.
const (
	LightCacheNumItems     = 1_179_641
	FullDatasetNumItems    = 37_748_717
	LightCacheRounds       = 3
	FullDatasetItemParents = 512
	NumDatasetAccesses     = 32
	FnvPrime               = 0x01000193
)

// DefaultSeed is the fixed 32-byte seed the light cache is derived from
// when a caller does not supply its own.
var DefaultSeed = [32]byte{
	0xeb, 0x01, 0x63, 0xae, 0xf2, 0xab, 0x1c, 0x5a,
	0x66, 0x31, 0x0c, 0x1c, 0x14, 0xd6, 0x0f, 0x42,
	0x55, 0xa9, 0xb3, 0x9b, 0x0e, 0xdf, 0x26, 0x53,
	0x98, 0x44, 0xf1, 0x17, 0xad, 0x67, 0x21, 0x19,
}

// Context is the immutable, process-wide FishHash dataset handle: a light
// cache built at construction and, optionally, a prebuilt full dataset.
// Once NewContext returns, a Context is never mutated again and can be
// shared by reference across arbitrarily many reader goroutines.
type Context struct {
	lightCache  []hashes.Hash512
	fullDataset []hashes.Hash1024
}

// NewContext builds a light cache from seed (or DefaultSeed if nil), and,
// if full is true, prebuilds the full dataset in parallel across
// GOMAXPROCS goroutines before returning. Construction can only fail by
// allocation failure of the ~4.6 GB full dataset; a caller that hits this
// should retry with full=false rather than abort.
func NewContext(full bool, seed *[32]byte) (ctx *Context, err error) {
	s := DefaultSeed
	if seed != nil {
		s = *seed
	}

	c := &Context{lightCache: buildLightCache(s)}
	log.Infof("fishhash: light cache built (%d items)", LightCacheNumItems)

	if full {
		defer func() {
			if r := recover(); r != nil {
				ctx, err = nil, fmt.Errorf("fishhash: full dataset allocation failed: %v", r)
			}
		}()
		c.fullDataset = make([]hashes.Hash1024, FullDatasetNumItems)
		prebuildFullDataset(c.lightCache, c.fullDataset)
		log.Infof("fishhash: full dataset prebuilt (%d items)", FullDatasetNumItems)
	}
	return c, nil
}

// buildLightCache is a pure function of seed: §4.2's keccak chain followed
// by three mixing rounds.
func buildLightCache(seed [32]byte) []hashes.Hash512 {
	cache := make([]hashes.Hash512, LightCacheNumItems)
	cache[0] = hashes.Keccak512(seed[:])
	for i := 1; i < LightCacheNumItems; i++ {
		cache[i] = cache[i-1]
		hashes.Keccak512InPlace(&cache[i])
	}

	n := uint32(LightCacheNumItems)
	for round := 0; round < LightCacheRounds; round++ {
		for i := 0; i < LightCacheNumItems; i++ {
			v := cache[i].WordU32(0) % n
			w := uint32((LightCacheNumItems + i - 1) % LightCacheNumItems)
			mixed := hashes.XorHash512(&cache[v], &cache[w])
			cache[i] = hashes.Keccak512(mixed[:])
		}
	}
	return cache
}

// Fnv1 computes the FNV-1 mixing step that dataset item derivation and the
// v2 kernel's mixing and final fold share. The light-cache rounds do not
// use it; they mix with XOR and Keccak-512.
func Fnv1(a, b uint32) uint32 {
	return a*FnvPrime ^ b
}

func fnv1Hash512(a, b hashes.Hash512) hashes.Hash512 {
	var out hashes.Hash512
	for i := 0; i < 16; i++ {
		out.SetWordU32(i, Fnv1(a.WordU32(i), b.WordU32(i)))
	}
	return out
}

// item derives the full dataset's index'th Hash1024 on demand, per §4.2.
func item(cache []hashes.Hash512, index uint64) hashes.Hash1024 {
	n := uint64(LightCacheNumItems)
	s0 := 2 * index
	s1 := s0 + 1

	m0 := cache[s0%n]
	m0.SetWordU32(0, m0.WordU32(0)^uint32(s0))
	m1 := cache[s1%n]
	m1.SetWordU32(0, m1.WordU32(0)^uint32(s1))
	hashes.Keccak512InPlace(&m0)
	hashes.Keccak512InPlace(&m1)

	for j := uint32(0); j < FullDatasetItemParents; j++ {
		t0 := Fnv1(uint32(s0)^j, m0.WordU32(int(j%16)))
		m0 = fnv1Hash512(m0, cache[uint64(t0)%n])

		t1 := Fnv1(uint32(s1)^j, m1.WordU32(int(j%16)))
		m1 = fnv1Hash512(m1, cache[uint64(t1)%n])
	}

	hashes.Keccak512InPlace(&m0)
	hashes.Keccak512InPlace(&m1)
	return hashes.Hash1024FromHalves(&m0, &m1)
}

// prebuildFullDataset partitions [0, len(dst)) into disjoint, contiguous
// chunks across GOMAXPROCS goroutines; each goroutine only ever writes its
// own chunk, so no locking is required. A WaitGroup barrier guarantees
// every writer has finished before the caller observes dst, and a single
// atomic counter tracks coarse-grained progress for logging.
func prebuildFullDataset(cache []hashes.Hash512, dst []hashes.Hash1024) {
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	chunk := (len(dst) + workers - 1) / workers

	var wg sync.WaitGroup
	var done atomic.Uint64
	total := uint64(len(dst))

	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= len(dst) {
			break
		}
		if end > len(dst) {
			end = len(dst)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				dst[i] = item(cache, uint64(i))
				if n := done.Add(1); n%1_000_000 == 0 {
					log.Debugf("fishhash: full dataset prebuild %d/%d items", n, total)
				}
			}
		}(start, end)
	}
	wg.Wait()
}

// Lookup returns the dataset item at i: the prebuilt entry if the full
// dataset was constructed, otherwise a freshly computed one. Both modes
// are observationally identical except for wall-clock cost.
func (c *Context) Lookup(i uint64) hashes.Hash1024 {
	if c.fullDataset != nil {
		return c.fullDataset[i]
	}
	return item(c.lightCache, i)
}

// HasFullDataset reports whether the context was built with the full
// dataset prebuilt rather than computed on demand.
func (c *Context) HasFullDataset() bool {
	return c.fullDataset != nil
}

// LightCacheItem returns the light cache cell at i. Nothing else in this
// core calls it.
func (c *Context) LightCacheItem(i int) hashes.Hash512 {
	return c.lightCache[i]
}
