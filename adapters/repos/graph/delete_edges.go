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
	"bytes"
	"context"
	"encoding/hex"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/weaviate/graphkv/adapters/repos/graph/keys"
	"github.com/weaviate/graphkv/adapters/repos/graph/row"
	"github.com/weaviate/graphkv/adapters/repos/graph/store"
	enterrors "github.com/weaviate/graphkv/entities/errors"
	"github.com/weaviate/graphkv/entities/graphmodel"
	"github.com/weaviate/graphkv/entities/indexstate"
	"github.com/weaviate/graphkv/entities/resultcode"
)

// DeleteEdges removes every physical representation of the requested edges:
// stale lock markers, the current record, trailing obsolete versions and all
// secondary index entries. Each partition is planned, guarded and committed
// independently; the returned map holds exactly one result code per
// requested partition. The call blocks until every partition has reported.
//
// There is no cancellation at this layer: once submitted, a partition's
// commit runs to completion regardless of ctx.
func (m *Mutator) DeleteEdges(ctx context.Context,
	req DeleteEdgesRequest,
) map[graphmodel.PartitionID]resultcode.Code {
	start := time.Now()

	agg := newResultAggregator(len(req.Parts))

	vidLen, err := m.schema.SpaceVidLen(req.Space)
	if err != nil {
		m.logger.WithError(err).WithField("space", req.Space).
			Error("resolve space vid length")
		return m.finish(start, m.failAll(agg, req, resultcode.ErrInvalidSpaceVidLen))
	}

	indexes, err := m.catalog.EdgeIndexes(req.Space)
	if err != nil {
		m.logger.WithError(err).WithField("space", req.Space).
			Error("resolve edge indexes")
		return m.finish(start, m.failAll(agg, req, resultcode.ErrSpaceNotFound))
	}

	run := &deleteRun{
		m:       m,
		space:   req.Space,
		vidLen:  vidLen,
		indexes: indexes,
		agg:     agg,
	}

	if len(indexes) == 0 {
		run.processFast(req.Parts)
	} else {
		run.process(req.Parts)
	}

	return m.finish(start, agg.wait())
}

func (m *Mutator) failAll(agg *resultAggregator, req DeleteEdgesRequest,
	code resultcode.Code,
) map[graphmodel.PartitionID]resultcode.Code {
	for part := range req.Parts {
		agg.report(part, code)
	}
	return agg.wait()
}

func (m *Mutator) finish(start time.Time,
	results map[graphmodel.PartitionID]resultcode.Code,
) map[graphmodel.PartitionID]resultcode.Code {
	for _, code := range results {
		m.metrics.PartitionResult(code)
	}
	m.metrics.DeleteEdgesDone(start)
	return results
}

// deleteRun carries the per-request state: the schema snapshot resolved in
// the precondition phase and the shared result aggregator.
type deleteRun struct {
	m       *Mutator
	space   graphmodel.SpaceID
	vidLen  int
	indexes []graphmodel.IndexDefinition
	agg     *resultAggregator
}

// processFast handles spaces without edge indexes: nothing to project, so
// each edge's rows are dropped by blind prefix removal, skipping both the
// scan and the memory lock.
func (r *deleteRun) processFast(parts map[graphmodel.PartitionID][]graphmodel.EdgeIdentity) {
	for part, edges := range parts {
		prefixes := make([][]byte, 0, len(edges))
		code := resultcode.Succeeded
		for _, edge := range edges {
			if !keys.IsValidVidLen(r.vidLen, edge.Src, edge.Dst) {
				r.logInvalidVid(part, edge)
				code = resultcode.ErrInvalidVID
				break
			}
			prefixes = append(prefixes, keys.EdgePrefix(r.vidLen, part, edge))
		}
		if !code.OK() {
			r.agg.report(part, code)
			continue
		}

		part := part
		r.m.store.AsyncMultiRemove(r.space, part, prefixes, func(code resultcode.Code) {
			r.agg.report(part, code)
		})
	}
}

// process plans, guards and commits each partition independently. No
// partition's outcome blocks another.
func (r *deleteRun) process(parts map[graphmodel.PartitionID][]graphmodel.EdgeIdentity) {
	eg := enterrors.NewErrorGroupWrapper(r.m.logger)
	for part, edges := range parts {
		part, edges := part, edges
		eg.Go(func() error {
			r.processPart(part, edges)
			return nil
		})
	}
	eg.Wait()
}

func (r *deleteRun) processPart(part graphmodel.PartitionID,
	edges []graphmodel.EdgeIdentity,
) {
	batch, code := r.deleteEdges(part, edges)
	if !code.OK() {
		r.agg.report(part, code)
		return
	}

	guard, conflict := r.m.locks.Acquire(lockKeys(r.space, r.vidLen, part, edges))
	if guard == nil {
		r.m.logger.WithFields(logrus.Fields{
			"action":       "delete_edges",
			"space":        r.space,
			"partition":    part,
			"conflict_key": hex.EncodeToString([]byte(conflict)),
		}).Error("edge conflict")
		r.m.metrics.LockConflict()
		r.agg.report(part, resultcode.ErrDataConflict)
		return
	}

	// guard ownership transfers into the completion callback and is
	// dropped there exactly once, on success and failure alike
	r.m.metrics.BatchOps(batch.Len())
	r.m.store.AsyncAppendBatch(r.space, part, batch, func(code resultcode.Code) {
		guard.Release()
		r.agg.report(part, code)
	})
}

// deleteEdges builds the ordered mutation batch for one partition. It does
// no commit I/O; any error aborts the whole partition before anything is
// submitted. The batch may come out empty when no requested edge has
// physical rows.
func (r *deleteRun) deleteEdges(part graphmodel.PartitionID,
	edges []graphmodel.EdgeIdentity,
) (*store.MutationBatch, resultcode.Code) {
	batch := store.NewBatch()
	state := r.m.catalog.IndexState(r.space, part)

	for _, edge := range edges {
		if code := r.planEdge(part, edge, state, batch); !code.OK() {
			return nil, code
		}
	}

	return batch, resultcode.Succeeded
}

func (r *deleteRun) planEdge(part graphmodel.PartitionID,
	edge graphmodel.EdgeIdentity, state indexstate.State,
	batch *store.MutationBatch,
) resultcode.Code {
	if !keys.IsValidVidLen(r.vidLen, edge.Src, edge.Dst) {
		r.logInvalidVid(part, edge)
		return resultcode.ErrInvalidVID
	}

	prefix := keys.EdgePrefix(r.vidLen, part, edge)
	cursor, err := r.m.store.PrefixScan(r.space, part, prefix)
	if err != nil {
		r.m.logger.WithError(err).WithFields(logrus.Fields{
			"action":    "delete_edges",
			"space":     r.space,
			"partition": part,
		}).Error("prefix scan")
		return codeFromStoreErr(err)
	}
	defer cursor.Close()

	k, v := cursor.First()

	// stale write intents of an unfinished prior operation sort before the
	// record and must be dropped first
	for ; k != nil && keys.IsLockMarker(r.vidLen, k); k, v = cursor.Next() {
		batch.Remove(bytes.Clone(k))
	}

	if k != nil && keys.IsEdgeRecord(r.vidLen, k) {
		// only the latest version feeds the index projection
		var reader *row.Reader
		for _, index := range r.indexes {
			if index.EdgeType != edge.EdgeType {
				continue
			}

			if reader == nil {
				reader, err = r.m.schema.DecodeEdgeRow(r.space, edge.EdgeType, v)
				if err != nil {
					r.m.logger.WithError(err).WithFields(logrus.Fields{
						"action":    "delete_edges",
						"space":     r.space,
						"partition": part,
					}).Warn("bad format row")
					return resultcode.ErrInvalidData
				}
			}

			values, err := reader.CollectValues(index.Fields)
			if err != nil {
				// deprecated definition referencing fields this row no
				// longer carries, skip just this index
				continue
			}
			indexKey := keys.IndexKey(r.vidLen, part, index.ID,
				edge.Src, edge.Rank, edge.Dst, values)

			switch {
			case state.IsRebuilding():
				// the rebuild scan must still learn of the deletion
				batch.Put(keys.DeleteOperationKey(part), indexKey)
			case state.IsLocked():
				r.m.logger.WithFields(logrus.Fields{
					"action":    "delete_edges",
					"space":     r.space,
					"partition": part,
					"index":     index.Name,
				}).Error("index is locked")
				return resultcode.ErrDataConflict
			default:
				batch.Remove(indexKey)
			}
		}

		batch.Remove(bytes.Clone(k))
		k, _ = cursor.Next()
	}

	for ; k != nil; k, _ = cursor.Next() {
		batch.Remove(bytes.Clone(k))
	}

	return resultcode.Succeeded
}

func (r *deleteRun) logInvalidVid(part graphmodel.PartitionID,
	edge graphmodel.EdgeIdentity,
) {
	r.m.logger.WithFields(logrus.Fields{
		"action":    "delete_edges",
		"space":     r.space,
		"partition": part,
		"vid_len":   r.vidLen,
		"src_len":   len(edge.Src),
		"dst_len":   len(edge.Dst),
	}).Error("vertex id length invalid")
}
