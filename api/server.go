package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/matt-g-everett/framecast/stream"
)

// Api serves render progress and the directory the video is written to.
// It implements stream.ProgressReporter.
type Api struct {
	addr string
	dir  string
	srv  *http.Server

	mu       sync.Mutex
	progress stream.Progress
}

// NewApi creates an Api listening on addr and serving files from dir.
func NewApi(addr string, dir string) *Api {
	a := new(Api)
	a.addr = addr
	a.dir = dir
	a.srv = &http.Server{Addr: addr, Handler: a.Handler()}
	return a
}

// Report records the latest progress.
func (a *Api) Report(p stream.Progress) {
	a.mu.Lock()
	a.progress = p
	a.mu.Unlock()
}

// Progress returns the latest recorded progress.
func (a *Api) Progress() stream.Progress {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.progress
}

// Handler routes /progress to the JSON progress and everything else to
// the output directory.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/progress", a.handleProgress)
	mux.Handle("/", http.FileServer(http.Dir(a.dir)))
	return mux
}

func (a *Api) handleProgress(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.Progress()); err != nil {
		stream.Logger().Warn("writing progress response", "err", err)
	}
}

// Serve listens until Shutdown is called.
func (a *Api) Serve() error {
	stream.Logger().Info("listening", "addr", a.addr, "dir", a.dir)
	if err := a.srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server started by Serve.
func (a *Api) Shutdown(ctx context.Context) error {
	return a.srv.Shutdown(ctx)
}
