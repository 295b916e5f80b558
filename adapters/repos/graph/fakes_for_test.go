//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2024 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

package graph

import (
	"sort"
	"strings"
	"sync"

	"github.com/weaviate/graphkv/adapters/repos/graph/row"
	"github.com/weaviate/graphkv/adapters/repos/graph/store"
	"github.com/weaviate/graphkv/entities/graphmodel"
	"github.com/weaviate/graphkv/entities/indexstate"
	"github.com/weaviate/graphkv/entities/resultcode"
)

type fakeSchema struct {
	vidLen int
	err    error
}

func (f *fakeSchema) SpaceVidLen(graphmodel.SpaceID) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.vidLen, nil
}

func (f *fakeSchema) DecodeEdgeRow(_ graphmodel.SpaceID, _ graphmodel.EdgeType,
	raw []byte,
) (*row.Reader, error) {
	return row.New(raw)
}

type fakeCatalog struct {
	indexes []graphmodel.IndexDefinition
	err     error
	states  map[graphmodel.PartitionID]indexstate.State
}

func (f *fakeCatalog) EdgeIndexes(graphmodel.SpaceID) ([]graphmodel.IndexDefinition, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.indexes, nil
}

func (f *fakeCatalog) IndexState(_ graphmodel.SpaceID,
	part graphmodel.PartitionID,
) indexstate.State {
	if s, ok := f.states[part]; ok {
		return s
	}
	return indexstate.StateNormal
}

// fakeStore is an in-memory Store for one space. Commits run on their own
// goroutine so the async contract is exercised for real.
type fakeStore struct {
	mu            sync.Mutex
	rows          map[string][]byte
	committed     []*store.MutationBatch
	multiRemoves  [][][]byte
	scans         int
	scanErr       error
	commitCode    resultcode.Code
	applyOnCommit bool
	blockCommit   chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rows:       map[string][]byte{},
		commitCode: resultcode.Succeeded,
	}
}

func (f *fakeStore) put(key, value []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[string(key)] = value
}

func (f *fakeStore) rowCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

func (f *fakeStore) committedBatches() []*store.MutationBatch {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.committed
}

func (f *fakeStore) PrefixScan(_ graphmodel.SpaceID, _ graphmodel.PartitionID,
	prefix []byte,
) (store.Cursor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.scans++
	if f.scanErr != nil {
		return nil, f.scanErr
	}

	var ks []string
	for k := range f.rows {
		if strings.HasPrefix(k, string(prefix)) {
			ks = append(ks, k)
		}
	}
	sort.Strings(ks)

	c := &fakeCursor{}
	for _, k := range ks {
		c.pairs = append(c.pairs, [2][]byte{[]byte(k), f.rows[k]})
	}
	return c, nil
}

func (f *fakeStore) AsyncAppendBatch(_ graphmodel.SpaceID, _ graphmodel.PartitionID,
	batch *store.MutationBatch, onComplete func(resultcode.Code),
) {
	go func() {
		if f.blockCommit != nil {
			<-f.blockCommit
		}

		f.mu.Lock()
		f.committed = append(f.committed, batch)
		if f.applyOnCommit {
			for _, op := range batch.Ops() {
				if op.Put {
					f.rows[string(op.Key)] = op.Value
				} else {
					delete(f.rows, string(op.Key))
				}
			}
		}
		code := f.commitCode
		f.mu.Unlock()

		onComplete(code)
	}()
}

func (f *fakeStore) AsyncMultiRemove(_ graphmodel.SpaceID, _ graphmodel.PartitionID,
	prefixes [][]byte, onComplete func(resultcode.Code),
) {
	go func() {
		f.mu.Lock()
		f.multiRemoves = append(f.multiRemoves, prefixes)
		for _, prefix := range prefixes {
			for k := range f.rows {
				if strings.HasPrefix(k, string(prefix)) {
					delete(f.rows, k)
				}
			}
		}
		code := f.commitCode
		f.mu.Unlock()

		onComplete(code)
	}()
}

type fakeCursor struct {
	pairs [][2][]byte
	pos   int
}

func (c *fakeCursor) First() ([]byte, []byte) {
	c.pos = 0
	return c.current()
}

func (c *fakeCursor) Next() ([]byte, []byte) {
	c.pos++
	return c.current()
}

func (c *fakeCursor) current() ([]byte, []byte) {
	if c.pos >= len(c.pairs) {
		return nil, nil
	}
	return c.pairs[c.pos][0], c.pairs[c.pos][1]
}

func (c *fakeCursor) Close() error {
	return nil
}
