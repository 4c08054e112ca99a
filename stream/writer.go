package stream

// frameWriter drains submitted frames into a VideoEncoder on its own
// goroutine. The channel is bounded so a slow encoder pushes back on Submit.
type frameWriter struct {
	encoder VideoEncoder
	frames  chan []byte
	done    chan struct{}

	// owned by run until done is closed
	written int
	err     error
}

func newFrameWriter(encoder VideoEncoder, queueSize int) *frameWriter {
	w := &frameWriter{
		encoder: encoder,
		frames:  make(chan []byte, queueSize),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *frameWriter) run() {
	defer close(w.done)
	for pix := range w.frames {
		// Keep draining after a failure so push never blocks forever.
		if w.err != nil {
			continue
		}
		if err := w.encoder.WriteFrame(pix); err != nil {
			w.err = err
			Logger().Error("writing frame to encoder failed", "frame", w.written, "err", err)
			continue
		}
		w.written++
	}
}

func (w *frameWriter) push(pix []byte) {
	w.frames <- pix
}

// close waits until every queued frame has been handed to the encoder.
func (w *frameWriter) close() (int, error) {
	close(w.frames)
	<-w.done
	return w.written, w.err
}
