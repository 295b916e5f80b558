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

package indexstate

import "errors"

const (
	StateNormal     State = "NORMAL"
	StateRebuilding State = "REBUILDING"
	StateLocked     State = "LOCKED"
)

var ErrInvalidState = errors.New("invalid index state")

// State is the lifecycle state of a space's secondary indexes on one
// partition. It is owned by the index manager; this engine only reads a
// fresh snapshot per partition at planning time.
type State string

func (s State) String() string {
	return string(s)
}

// IsRebuilding reports whether deletions must be staged into the rebuild log
// instead of removing index entries directly, so a concurrent rebuild scan
// still observes them.
func (s State) IsRebuilding() bool {
	return s == StateRebuilding
}

// IsLocked reports whether structural index mutation is forbidden entirely.
func (s State) IsLocked() bool {
	return s == StateLocked
}

func ValidateState(in string) (state State, err error) {
	switch in {
	case string(StateNormal):
		state = StateNormal
	case string(StateRebuilding):
		state = StateRebuilding
	case string(StateLocked):
		state = StateLocked
	default:
		err = ErrInvalidState
	}

	return
}
