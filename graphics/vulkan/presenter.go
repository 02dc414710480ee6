package vulkan

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/loov/hrtime"
	"github.com/sirupsen/logrus"
)

// ErrInvalidImageIndex is returned when the swapchain hands out an image
// index with no recorded command buffer.
var ErrInvalidImageIndex = errors.New("acquired swapchain image index has no command buffer")

// errSwapchainStale is returned by a frameSubmitter when the swapchain no
// longer matches the surface.
var errSwapchainStale = errors.New("swapchain is out of date")

// statsInterval is how many frames pass between frame time reports.
const statsInterval = 600

// PresenterState is where the presenter is in drawing a frame.
type PresenterState int

const (
	Idle PresenterState = iota
	Acquiring
	Submitting
	Presenting
	// Stale means the swapchain must be rebuilt before the next frame.
	Stale
)

func (s PresenterState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Acquiring:
		return "acquiring"
	case Submitting:
		return "submitting"
	case Presenting:
		return "presenting"
	case Stale:
		return "stale"
	}
	return "unknown"
}

// frameSubmitter performs the GPU side of each presenter transition. Slots
// are in [0, MaxFramesInFlight) and images in [0, ImageCount()).
type frameSubmitter interface {
	ImageCount() int
	// WaitFrame blocks until the last submission made from slot is done.
	WaitFrame(slot int) error
	// Acquire returns the next presentable image, signalling slot's
	// image available semaphore.
	Acquire(slot int) (int, error)
	ResetFrame(slot int) error
	Submit(slot, image int) error
	Present(image int) error
	// Rebuild recreates the swapchain and everything recorded against it.
	// It reports false when the window has no drawable area.
	Rebuild() (bool, error)
}

// Presenter draws frames by replaying the pre-recorded command buffers.
type Presenter struct {
	submitter frameSubmitter
	log       logrus.FieldLogger

	state PresenterState
	slot  int
	// imagesInFlight is the slot that last submitted each image, or -1.
	imagesInFlight []int

	frames    uint64
	lastFrame time.Duration
	total     time.Duration
}

func NewPresenter(submitter frameSubmitter, log logrus.FieldLogger) *Presenter {
	p := &Presenter{submitter: submitter, log: log}
	p.resetImages()
	return p
}

func (p *Presenter) resetImages() {
	p.imagesInFlight = make([]int, p.submitter.ImageCount())
	for i := range p.imagesInFlight {
		p.imagesInFlight[i] = -1
	}
}

// State returns the presenter's current state.
func (p *Presenter) State() PresenterState {
	return p.state
}

// Frames returns how many frames have been presented.
func (p *Presenter) Frames() uint64 {
	return p.frames
}

// Invalidate forces a swapchain rebuild before the next frame.
func (p *Presenter) Invalidate() {
	p.state = Stale
}

func (p *Presenter) rebuild() (bool, error) {
	ready, err := p.submitter.Rebuild()
	if err != nil {
		return false, errors.Wrap(err, "failed to rebuild swapchain")
	}
	if !ready {
		return false, nil
	}

	p.resetImages()
	p.state = Idle
	p.log.WithField("images", len(p.imagesInFlight)).Debug("Rebuilt swapchain")
	return true, nil
}

// DrawFrame acquires an image, submits its command buffer and presents it.
// An out of date swapchain leaves the presenter Stale and the frame is
// skipped.
func (p *Presenter) DrawFrame() error {
	if p.state == Stale {
		ready, err := p.rebuild()
		if err != nil || !ready {
			return err
		}
	}

	start := hrtime.Now()

	p.state = Acquiring
	if err := p.submitter.WaitFrame(p.slot); err != nil {
		return errors.Wrap(err, "waiting for frame")
	}

	image, err := p.submitter.Acquire(p.slot)
	if errors.Is(err, errSwapchainStale) {
		p.state = Stale
		return nil
	} else if err != nil {
		return errors.Wrap(err, "acquiring swapchain image")
	}

	if image < 0 || image >= len(p.imagesInFlight) {
		return errors.Wrapf(ErrInvalidImageIndex, "image %d of %d", image, len(p.imagesInFlight))
	}

	if owner := p.imagesInFlight[image]; owner >= 0 && owner != p.slot {
		if err := p.submitter.WaitFrame(owner); err != nil {
			return errors.Wrap(err, "waiting for image")
		}
	}
	p.imagesInFlight[image] = p.slot

	if err := p.submitter.ResetFrame(p.slot); err != nil {
		return errors.Wrap(err, "resetting frame")
	}

	p.state = Submitting
	if err := p.submitter.Submit(p.slot, image); err != nil {
		return errors.Wrap(err, "submitting frame")
	}

	p.state = Presenting
	err = p.submitter.Present(image)
	p.slot = (p.slot + 1) % MaxFramesInFlight
	if errors.Is(err, errSwapchainStale) {
		p.state = Stale
	} else if err != nil {
		return errors.Wrap(err, "presenting frame")
	} else {
		p.state = Idle
	}

	p.recordFrame(hrtime.Since(start))
	return nil
}

func (p *Presenter) recordFrame(elapsed time.Duration) {
	p.frames++
	p.lastFrame = elapsed
	p.total += elapsed

	if p.frames%statsInterval == 0 {
		p.log.WithFields(logrus.Fields{
			"frames": p.frames,
			"last":   p.lastFrame,
			"mean":   p.total / time.Duration(p.frames),
		}).Debug("Frame statistics")
	}
}
