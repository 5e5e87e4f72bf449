package audio

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
)

// deviceOutput plays each clip on a fresh malgo playback device that is
// released once the clip has been rendered.
type deviceOutput struct {
	mu       sync.Mutex
	malgoCtx *malgo.AllocatedContext
}

func newDeviceOutput() (*deviceOutput, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}
	return &deviceOutput{malgoCtx: ctx}, nil
}

func (o *deviceOutput) Play(clip *Clip, done func()) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.malgoCtx == nil {
		return fmt.Errorf("audio output closed")
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatS16
	deviceConfig.Playback.Channels = clip.Channels
	deviceConfig.SampleRate = clip.SampleRate
	deviceConfig.Alsa.NoMMap = 1

	finished := make(chan struct{})
	var once sync.Once
	pos := 0

	// Runs on the device thread; pos is only touched here.
	onSamples := func(pOutputSample, pInputSamples []byte, framecount uint32) {
		n := copy(pOutputSample, clip.Samples[pos:])
		pos += n
		for i := n; i < len(pOutputSample); i++ {
			pOutputSample[i] = 0
		}
		if pos >= len(clip.Samples) {
			once.Do(func() { close(finished) })
		}
	}

	device, err := malgo.InitDevice(o.malgoCtx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onSamples,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		return fmt.Errorf("failed to start device: %w", err)
	}

	go func() {
		<-finished
		device.Uninit()
		done()
	}()

	return nil
}

func (o *deviceOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.malgoCtx == nil {
		return nil
	}
	err := o.malgoCtx.Uninit()
	o.malgoCtx.Free()
	o.malgoCtx = nil
	return err
}
