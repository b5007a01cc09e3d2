package capture

import (
	"context"
	"errors"
)

var (
	// ErrDeviceUnavailable wraps every acquisition failure. The wrapped
	// cause distinguishes a missing secure context from a permission or
	// hardware problem, so the UI can show the right hint.
	ErrDeviceUnavailable = errors.New("camera/microphone unavailable")

	ErrInsecureContext  = errors.New("camera access requires a secure (HTTPS) context")
	ErrPermissionDenied = errors.New("camera/microphone permission denied")
	ErrNoDevice         = errors.New("no camera or microphone found")

	ErrNoSupportedType = errors.New("no supported recording media type")
)

// preferredTypes is the encoding preference list, tried in order. The
// first type the device supports wins; the platform default is never
// trusted to pick.
var preferredTypes = []string{
	"video/webm;codecs=vp9,opus",
	"video/webm;codecs=vp8,opus",
	"video/webm;codecs=h264,opus",
	"video/mp4;codecs=avc1,mp4a",
	"video/webm",
}

// Clip is a finished recording: the encoded bytes plus the negotiated
// media type they were encoded with.
type Clip struct {
	Data     []byte
	MIMEType string
}

// Device abstracts the platform's media capture capability so the
// recorder state machine can be exercised without real hardware.
type Device interface {
	// Acquire requests exclusive camera+microphone access. Failures are
	// one of ErrInsecureContext, ErrPermissionDenied or ErrNoDevice.
	Acquire(ctx context.Context) (Stream, error)

	// Supports reports whether the device can encode the given media type.
	Supports(mimeType string) bool
}

// Stream is a live, acquired device stream buffering encoded chunks.
type Stream interface {
	// Record starts buffering encoded media in the given type.
	Record(mimeType string) error

	// Finalize stops buffering and assembles the chunks into one clip.
	Finalize() (*Clip, error)

	// Release stops every track, freeing the camera and microphone. It
	// is safe to call more than once.
	Release()
}
