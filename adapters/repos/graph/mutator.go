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

// Package graph implements the edge mutation path of the storage engine.
// Schema, index catalog and the sorted KV substrate are external
// collaborators consumed through the narrow interfaces below.
package graph

import (
	"encoding/binary"

	"github.com/sirupsen/logrus"

	"github.com/weaviate/graphkv/adapters/repos/graph/keys"
	"github.com/weaviate/graphkv/adapters/repos/graph/memlock"
	"github.com/weaviate/graphkv/adapters/repos/graph/row"
	"github.com/weaviate/graphkv/adapters/repos/graph/store"
	"github.com/weaviate/graphkv/entities/graphmodel"
	"github.com/weaviate/graphkv/entities/indexstate"
	"github.com/weaviate/graphkv/entities/resultcode"
)

// SchemaReader supplies per-space schema metadata.
type SchemaReader interface {
	// SpaceVidLen returns the configured vertex-id byte length of the
	// space.
	SpaceVidLen(space graphmodel.SpaceID) (int, error)

	// DecodeEdgeRow decodes a stored edge record value against the
	// space's schema. An error signals a malformed row.
	DecodeEdgeRow(space graphmodel.SpaceID, edgeType graphmodel.EdgeType,
		raw []byte) (*row.Reader, error)
}

// IndexCatalog supplies the read-only secondary index snapshot of a space
// and the lifecycle state of its indexes per partition.
type IndexCatalog interface {
	EdgeIndexes(space graphmodel.SpaceID) ([]graphmodel.IndexDefinition, error)
	IndexState(space graphmodel.SpaceID, part graphmodel.PartitionID) indexstate.State
}

// DeleteEdgesRequest asks for the deletion of all physical representations
// of the listed edges, grouped by partition. The graph layer above
// guarantees edge-key uniqueness per partition.
type DeleteEdgesRequest struct {
	Space graphmodel.SpaceID
	Parts map[graphmodel.PartitionID][]graphmodel.EdgeIdentity
}

// Mutator orchestrates edge mutations against the store. Safe for
// concurrent use; per-edge exclusion is enforced through the shared lock
// registry.
type Mutator struct {
	schema  SchemaReader
	catalog IndexCatalog
	store   store.Store
	locks   *memlock.Registry
	logger  logrus.FieldLogger
	metrics *Metrics
}

func NewMutator(schema SchemaReader, catalog IndexCatalog, st store.Store,
	locks *memlock.Registry, logger logrus.FieldLogger, metrics *Metrics,
) *Mutator {
	if metrics == nil {
		metrics = NewMetrics(logger, nil, "")
	}
	return &Mutator{
		schema:  schema,
		catalog: catalog,
		store:   st,
		locks:   locks,
		logger:  logger,
		metrics: metrics,
	}
}

// lockKey is the canonical registry key of one logical edge:
// (space, partition, src, edgeType, rank, dst), byte-encoded.
func lockKey(space graphmodel.SpaceID, vidLen int, part graphmodel.PartitionID,
	edge graphmodel.EdgeIdentity,
) string {
	var spaceBuf [4]byte
	binary.BigEndian.PutUint32(spaceBuf[:], uint32(space))
	return string(spaceBuf[:]) + string(keys.EdgePrefix(vidLen, part, edge))
}

func lockKeys(space graphmodel.SpaceID, vidLen int, part graphmodel.PartitionID,
	edges []graphmodel.EdgeIdentity,
) []string {
	out := make([]string, 0, len(edges))
	for _, edge := range edges {
		out = append(out, lockKey(space, vidLen, part, edge))
	}
	return out
}

func codeFromStoreErr(err error) resultcode.Code {
	if err == nil {
		return resultcode.Succeeded
	}
	return resultcode.ErrStorage
}
