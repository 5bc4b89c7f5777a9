package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
)

// Pipeline timing constants.
const (
	// IdleFPS is the processing rate while no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the processing rate during active tracking.
	ActiveFPS = 15
	// IdleTimeout is how long after the last motion the pipeline drops
	// back to idle.
	IdleTimeout = 2 * time.Second
)

// Start begins the capture and processing loops.
//
// Capture and processing are split: the capture goroutine reads frames at
// the camera's own cadence into a latest-value buffer, and the processing
// loop ticks independently, always consuming only the most recent frame.
// Older frames are dropped, never queued.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})

	a.wg.Add(2)
	go a.captureLoop(a.stopCh)
	go a.processLoop(a.stopCh)

	log.Println("Pipeline started")
	return nil
}

// Stop halts both loops and releases the camera and detector.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh == nil {
		a.mu.Unlock()
		return
	}
	close(a.stopCh)
	a.stopCh = nil
	a.mu.Unlock()

	a.wg.Wait()

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.buffer.Close()
	a.motion.Close()

	if a.detector != nil && !a.detectorInjected {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Pipeline stopped")
}

// captureLoop reads frames from the camera into the latest-value buffer.
// The camera read paces the loop; the buffer never blocks the producer.
func (a *App) captureLoop(stopCh <-chan struct{}) {
	defer a.wg.Done()

	for {
		select {
		case <-stopCh:
			return
		default:
		}

		frame, err := a.Camera().ReadFrame()
		if err != nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		a.buffer.Put(frame)
	}
}

// processLoop drives motion gating, detection and gesture dispatch.
//
// It idles at IdleFPS until motion is seen, then tracks at ActiveFPS until
// IdleTimeout passes without motion. Each tick consumes at most the single
// most recent frame.
func (a *App) processLoop(stopCh <-chan struct{}) {
	defer a.wg.Done()

	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame := a.buffer.Take()
			if frame == nil {
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()
				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode && time.Since(lastMotionTime) > IdleTimeout {
				activeMode = false
				a.Camera().SetFPS(IdleFPS)
				frameInterval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(frameInterval)
				// Let trigger latches release while idle.
				a.registry.Update(nil)
				log.Println("Switched to idle mode")
			}

			if !activeMode {
				frame.Close()
				continue
			}

			a.ProcessFrame(frame)
		}
	}
}

// ProcessFrame runs detection on one frame and dispatches the result,
// taking ownership of the frame. It always calls Registry.Update, with nil
// when no hand was found, so trigger edge state tracks hand absence
// correctly.
func (a *App) ProcessFrame(frame *gocv.Mat) {
	d := a.Detector()
	if d == nil {
		frame.Close()
		return
	}

	hands, err := d.Detect(frame)
	frame.Close()

	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		return
	}

	// Only the first (most confident) hand drives the bindings.
	var hand *detector.HandLandmarks
	if len(hands) > 0 {
		hand = &hands[0]
	}

	a.registry.Update(hand)
}
