// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package native

import "unsafe"

// cString returns name as a NUL-terminated byte slice.
func cString(name string) []byte {
	buffer := make([]byte, len(name)+1)
	copy(buffer, name)
	return buffer
}

// goString copies the NUL-terminated string at address into Go memory.
// A zero address yields "".
func goString(address uintptr) string {
	if address == 0 {
		return ""
	}
	start := *(*unsafe.Pointer)(unsafe.Pointer(&address))
	length := 0
	for *(*byte)(unsafe.Add(start, length)) != 0 {
		length++
	}
	return string(unsafe.Slice((*byte)(start), length))
}
