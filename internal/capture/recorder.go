package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type State int

const (
	StateIdle State = iota
	StateRecording
	StatePreviewing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StatePreviewing:
		return "previewing"
	default:
		return "unknown"
	}
}

var (
	ErrAlreadyRecording = errors.New("a recording is already in progress")
	ErrNotRecording     = errors.New("no recording in progress")
	ErrNoClip           = errors.New("no recorded clip to use")
)

// Recorder is the capture widget's state machine:
//
//	Idle -> Start -> Recording -> Stop -> Previewing -> Send/Discard -> Idle
//
// The one hard invariant: no code path leaves Recording with the device
// stream still held. Stop, errors and Close all release it.
type Recorder struct {
	mu     sync.Mutex
	state  State
	device Device
	sink   Sink
	stream Stream
	clip   *Clip
}

func NewRecorder(device Device, sink Sink) *Recorder {
	return &Recorder{device: device, sink: sink}
}

func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Start acquires the device and begins recording. Starting over from
// Previewing discards the held clip; starting while Recording is
// rejected without touching the device.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateRecording {
		return ErrAlreadyRecording
	}
	r.clip = nil

	stream, err := r.device.Acquire(ctx)
	if err != nil {
		r.state = StateIdle
		return fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}

	mimeType := ""
	for _, t := range preferredTypes {
		if r.device.Supports(t) {
			mimeType = t
			break
		}
	}
	if mimeType == "" {
		stream.Release()
		r.state = StateIdle
		return ErrNoSupportedType
	}

	if err := stream.Record(mimeType); err != nil {
		stream.Release()
		r.state = StateIdle
		return fmt.Errorf("start recording: %w", err)
	}

	r.stream = stream
	r.state = StateRecording
	return nil
}

// Stop finalizes the buffered chunks into a clip and releases the
// device. The device is released even when finalizing fails.
func (r *Recorder) Stop() (*Clip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording {
		return nil, ErrNotRecording
	}

	clip, err := r.stream.Finalize()
	r.stream.Release()
	r.stream = nil

	if err != nil {
		r.state = StateIdle
		return nil, fmt.Errorf("finalize recording: %w", err)
	}
	r.clip = clip
	r.state = StatePreviewing
	return clip, nil
}

// Clip returns the clip held in Previewing, or nil.
func (r *Recorder) Clip() *Clip {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clip
}

// Send hands the finished clip across the upload boundary and returns
// the video URL the caller can attach to a message. On upload failure
// the clip is kept so the send can be retried.
func (r *Recorder) Send(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StatePreviewing || r.clip == nil {
		return "", ErrNoClip
	}
	videoURL, err := r.sink.Send(ctx, *r.clip)
	if err != nil {
		return "", fmt.Errorf("upload clip: %w", err)
	}
	r.clip = nil
	r.state = StateIdle
	return videoURL, nil
}

// Discard drops the previewed clip without uploading it. Calling it
// outside Previewing is a no-op.
func (r *Recorder) Discard() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StatePreviewing {
		return
	}
	r.clip = nil
	r.state = StateIdle
}

// Close is component teardown: whatever state the recorder is in, the
// device is released and the clip dropped.
func (r *Recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stream != nil {
		r.stream.Release()
		r.stream = nil
	}
	r.clip = nil
	r.state = StateIdle
}
