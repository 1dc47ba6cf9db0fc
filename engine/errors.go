// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	ErrEmptySource      = errors.New("source buffer is empty")
	ErrRenderTooLarge   = errors.New("render exceeds loop-count ceiling")
	ErrInvalidCrossfade = errors.New("crossfade cannot fit source")
	ErrBufferNotReady   = errors.New("no buffer loaded")
)
