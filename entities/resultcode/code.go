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

package resultcode

import "errors"

const (
	Succeeded             Code = "SUCCEEDED"
	ErrInvalidSpaceVidLen Code = "E_INVALID_SPACEVIDLEN"
	ErrSpaceNotFound      Code = "E_SPACE_NOT_FOUND"
	ErrInvalidVID         Code = "E_INVALID_VID"
	ErrInvalidData        Code = "E_INVALID_DATA"
	ErrDataConflict       Code = "E_DATA_CONFLICT_ERROR"
	ErrStorage            Code = "E_STORAGE"
	ErrUnknown            Code = "E_UNKNOWN"
)

var ErrInvalidCode = errors.New("invalid result code")

// Code is the per-partition outcome of a mutation request. A request always
// completes with exactly one code per partition, never a single aggregate.
type Code string

func (c Code) String() string {
	return string(c)
}

// OK reports whether the partition's mutation was committed.
func (c Code) OK() bool {
	return c == Succeeded
}

func ValidateCode(in string) (code Code, err error) {
	switch in {
	case string(Succeeded):
		code = Succeeded
	case string(ErrInvalidSpaceVidLen):
		code = ErrInvalidSpaceVidLen
	case string(ErrSpaceNotFound):
		code = ErrSpaceNotFound
	case string(ErrInvalidVID):
		code = ErrInvalidVID
	case string(ErrInvalidData):
		code = ErrInvalidData
	case string(ErrDataConflict):
		code = ErrDataConflict
	case string(ErrStorage):
		code = ErrStorage
	case string(ErrUnknown):
		code = ErrUnknown
	default:
		err = ErrInvalidCode
	}

	return
}
