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

package store

import (
	"encoding/binary"
	"path/filepath"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	enterrors "github.com/weaviate/graphkv/entities/errors"
	"github.com/weaviate/graphkv/entities/graphmodel"
	"github.com/weaviate/graphkv/entities/resultcode"
)

const spacePrefixLen = 4

// Pebble implements Store on a single pebble DB. Rows of all spaces share
// the DB, namespaced by a 4-byte space prefix; partition separation is
// already part of the key layout built by the keys package.
type Pebble struct {
	db     *pebble.DB
	logger logrus.FieldLogger
}

type PebbleOptions struct {
	DataDir string
	Logger  logrus.FieldLogger

	// FS overrides the filesystem, e.g. vfs.NewMem() in tests.
	FS vfs.FS
}

func NewPebble(opts PebbleOptions) (*Pebble, error) {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}

	pebbleOpts := &pebble.Options{
		FS:     opts.FS,
		Logger: &pebbleLogger{logger: opts.Logger},
	}

	db, err := pebble.Open(filepath.Join(opts.DataDir, "graph"), pebbleOpts)
	if err != nil {
		return nil, errors.Wrap(err, "open pebble db")
	}

	opts.Logger.WithField("path", opts.DataDir).Info("graph store initialized")
	return &Pebble{db: db, logger: opts.Logger}, nil
}

func (p *Pebble) Close() error {
	return p.db.Close()
}

func spaceKey(space graphmodel.SpaceID, key []byte) []byte {
	buf := make([]byte, spacePrefixLen+len(key))
	binary.BigEndian.PutUint32(buf, uint32(space))
	copy(buf[spacePrefixLen:], key)
	return buf
}

// prefixEnd returns the exclusive upper bound for a prefix scan. It
// increments the last byte of the prefix; returns nil if all bytes overflow.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

func (p *Pebble) PrefixScan(space graphmodel.SpaceID, part graphmodel.PartitionID,
	prefix []byte,
) (Cursor, error) {
	lower := spaceKey(space, prefix)
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: prefixEnd(lower),
	})
	if err != nil {
		return nil, errors.Wrap(err, "create prefix iterator")
	}
	return &pebbleCursor{iter: iter}, nil
}

func (p *Pebble) AsyncAppendBatch(space graphmodel.SpaceID, part graphmodel.PartitionID,
	batch *MutationBatch, onComplete func(resultcode.Code),
) {
	enterrors.GoWrapper(func() {
		b := p.db.NewBatch()
		for _, op := range batch.Ops() {
			if op.Put {
				b.Set(spaceKey(space, op.Key), op.Value, nil)
			} else {
				b.Delete(spaceKey(space, op.Key), nil)
			}
		}
		onComplete(p.apply(b, space, part, "append batch"))
	}, p.logger)
}

func (p *Pebble) AsyncMultiRemove(space graphmodel.SpaceID, part graphmodel.PartitionID,
	prefixes [][]byte, onComplete func(resultcode.Code),
) {
	enterrors.GoWrapper(func() {
		b := p.db.NewBatch()
		for _, prefix := range prefixes {
			lower := spaceKey(space, prefix)
			b.DeleteRange(lower, prefixEnd(lower), nil)
		}
		onComplete(p.apply(b, space, part, "multi remove"))
	}, p.logger)
}

func (p *Pebble) apply(b *pebble.Batch, space graphmodel.SpaceID,
	part graphmodel.PartitionID, action string,
) resultcode.Code {
	if err := p.db.Apply(b, pebble.Sync); err != nil {
		p.logger.WithError(err).
			WithField("space", space).
			WithField("partition", part).
			Errorf("%s failed", action)
		return resultcode.ErrStorage
	}
	return resultcode.Succeeded
}

type pebbleCursor struct {
	iter *pebble.Iterator
}

func (c *pebbleCursor) First() ([]byte, []byte) {
	if !c.iter.First() {
		return nil, nil
	}
	return c.current()
}

func (c *pebbleCursor) Next() ([]byte, []byte) {
	if !c.iter.Next() {
		return nil, nil
	}
	return c.current()
}

func (c *pebbleCursor) current() ([]byte, []byte) {
	// strip the space prefix so callers see engine keys
	return c.iter.Key()[spacePrefixLen:], c.iter.Value()
}

func (c *pebbleCursor) Close() error {
	return c.iter.Close()
}

// pebbleLogger forwards pebble's internal logging to logrus.
type pebbleLogger struct {
	logger logrus.FieldLogger
}

func (l *pebbleLogger) Infof(format string, args ...interface{}) {
	l.logger.Debugf(format, args...)
}

func (l *pebbleLogger) Fatalf(format string, args ...interface{}) {
	l.logger.Fatalf(format, args...)
}
