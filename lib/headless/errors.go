// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package headless

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/headless/lib/egl"
)

// Kind classifies a bring-up failure by the step that produced it.
type Kind uint8

const (
	// Unsupported: the client library is missing or lacks a required
	// extension or entry point.
	Unsupported Kind = iota + 1

	// EnumerationFailure: eglQueryDevicesEXT failed or found nothing.
	EnumerationFailure

	// ProbeFailure: a device query failed. The device is skipped.
	ProbeFailure

	// NoSuitableDevice: no probed device exposes a DRM node.
	NoSuitableDevice

	// NodeResolutionFailure: the DRM device file is not a character
	// device or has no sysfs DRM directory.
	NodeResolutionFailure

	// AcquisitionFailure: no requested node could be opened.
	AcquisitionFailure

	// DisplayCreationFailure: eglGetPlatformDisplayEXT returned
	// EGL_NO_DISPLAY for an open node.
	DisplayCreationFailure
)

func (k Kind) String() string {
	switch k {
	case Unsupported:
		return "unsupported"
	case EnumerationFailure:
		return "enumeration failure"
	case ProbeFailure:
		return "probe failure"
	case NoSuitableDevice:
		return "no suitable device"
	case NodeResolutionFailure:
		return "node resolution failure"
	case AcquisitionFailure:
		return "acquisition failure"
	case DisplayCreationFailure:
		return "display creation failure"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Error is a failure inside the bring-up path. It never crosses the
// public functions of this package; it reaches callers only as log
// attributes.
type Error struct {
	Kind Kind

	// Op describes what was being done ("querying device count").
	Op string

	// Code is eglGetError() right after the failing call, or zero when
	// the failure did not come from EGL.
	Code egl.ErrorCode

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	var builder strings.Builder
	builder.WriteString(e.Op)
	if e.Err != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Err.Error())
	}
	if e.Code != 0 {
		fmt.Fprintf(&builder, " (%s)", e.Code)
	}
	return builder.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same Kind, so the kind sentinels
// below work with errors.Is.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Kind == e.Kind
}

// Sentinels for errors.Is, one per Kind.
var (
	ErrUnsupported      = &Error{Kind: Unsupported, Op: "unsupported"}
	ErrEnumeration      = &Error{Kind: EnumerationFailure, Op: "enumeration failure"}
	ErrProbe            = &Error{Kind: ProbeFailure, Op: "probe failure"}
	ErrNoSuitableDevice = &Error{Kind: NoSuitableDevice, Op: "no suitable device"}
	ErrNodeResolution   = &Error{Kind: NodeResolutionFailure, Op: "node resolution failure"}
	ErrAcquisition      = &Error{Kind: AcquisitionFailure, Op: "acquisition failure"}
	ErrDisplayCreation  = &Error{Kind: DisplayCreationFailure, Op: "display creation failure"}
)
