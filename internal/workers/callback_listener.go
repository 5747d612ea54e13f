package workers

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
)

// Callback is one redirect received from the server after Google sign-in.
// Exactly one of Token and Error is set.
type Callback struct {
	Token string
	Error string
}

// callbackPage escapes the message: the error value comes from the query.
var callbackPage = template.Must(template.New("callback").Parse(
	`<!doctype html><html><body><p>{{.}}</p><p>Можно вернуться в терминал.</p></body></html>`,
))

// CallbackListener is a loopback HTTP server that receives the
// "?token=" / "?error=" redirect and forwards it on a channel.
type CallbackListener struct {
	addr     string
	out      chan Callback
	listener net.Listener

	logger *logger.Logger
}

// NewCallbackListener binds addr immediately so that a port conflict is
// reported at startup rather than after the user has signed in.
func NewCallbackListener(addr string, logger *logger.Logger) (*CallbackListener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("callback listener: %w", err)
	}

	return &CallbackListener{
		addr:     ln.Addr().String(),
		out:      make(chan Callback, 4),
		listener: ln,
		logger:   logger,
	}, nil
}

// Addr returns the bound address.
func (c *CallbackListener) Addr() string {
	return c.addr
}

// Callbacks delivers received redirects. Redirects arriving while the
// buffer is full are dropped.
func (c *CallbackListener) Callbacks() <-chan Callback {
	return c.out
}

func (c *CallbackListener) Run(ctx context.Context) error {
	srv := &http.Server{
		Handler:           c.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(c.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("callback listener shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (c *CallbackListener) routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", c.handleCallback)
	return r
}

func (c *CallbackListener) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	cb := Callback{Token: query.Get("token"), Error: query.Get("error")}

	if cb.Token == "" && cb.Error == "" {
		http.Error(w, "missing token", http.StatusBadRequest)
		return
	}

	select {
	case c.out <- cb:
	default:
		c.logger.Warn().Msg("callback dropped: receiver is busy")
	}

	message := "Вход выполнен."
	if cb.Token == "" {
		message = "Вход не выполнен: " + cb.Error
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := callbackPage.Execute(w, message); err != nil {
		c.logger.Err(err).Msg("callback page was not written")
	}
}
