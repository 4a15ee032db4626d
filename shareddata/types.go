// File: shareddata/types.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The allowed-type gate and copy rules for shared containers. Only immutable
// values, decimals, byte slices and buffers may enter; the two mutable kinds
// are deep-copied in so no two contexts can reach each other's storage.

package shareddata

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/momentics/hioload-runtime/api"
	"github.com/momentics/hioload-runtime/buffer"
)

// checkType validates v against the allowed value set.
func checkType(v any) error {
	switch v.(type) {
	case string,
		bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		decimal.Decimal,
		[]byte,
		*buffer.Buffer:
		return nil
	default:
		return api.NewError(api.ErrCodeTypeRejected, api.ErrInvalidSharedType, "invalid type for shared data structure").
			WithContext("type", typeName(v))
	}
}

// checkKeyType validates k for use as a container key. Keys must be
// comparable, which excludes the two copy-on-insert kinds and decimals.
func checkKeyType(k any) error {
	switch k.(type) {
	case string,
		bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return nil
	default:
		return api.NewError(api.ErrCodeTypeRejected, api.ErrInvalidSharedType, "invalid key type for shared data structure").
			WithContext("type", typeName(k))
	}
}

// copyIfRequired deep-copies mutable values; immutable ones pass through.
func copyIfRequired(v any) any {
	switch t := v.(type) {
	case []byte:
		cp := make([]byte, len(t))
		copy(cp, t)
		return cp
	case *buffer.Buffer:
		return t.Copy()
	default:
		return v
	}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
