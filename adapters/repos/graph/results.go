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
	"sync"

	"github.com/weaviate/graphkv/entities/graphmodel"
	"github.com/weaviate/graphkv/entities/resultcode"
)

// resultAggregator folds per-partition outcomes into one response. Results
// arrive from asynchronous commit callbacks in any order; the request is
// finished only once every expected partition has reported. The first code
// reported for a partition wins.
type resultAggregator struct {
	mu      sync.Mutex
	results map[graphmodel.PartitionID]resultcode.Code
	wg      sync.WaitGroup
}

func newResultAggregator(parts int) *resultAggregator {
	a := &resultAggregator{
		results: make(map[graphmodel.PartitionID]resultcode.Code, parts),
	}
	a.wg.Add(parts)
	return a
}

func (a *resultAggregator) report(part graphmodel.PartitionID, code resultcode.Code) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.results[part]; ok {
		return
	}
	a.results[part] = code
	a.wg.Done()
}

// wait blocks until every partition has reported, then hands out the result
// map. No further reports may arrive afterwards.
func (a *resultAggregator) wait() map[graphmodel.PartitionID]resultcode.Code {
	a.wg.Wait()

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.results
}
