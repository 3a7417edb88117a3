package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/enliven-dev/enliven/internal/config"
	"github.com/enliven-dev/enliven/pkg/dom"
	"github.com/enliven-dev/enliven/pkg/live"
	"github.com/enliven-dev/enliven/pkg/render"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo server",
		Long: `Start an HTTP server hosting the demo document.

The server renders the document once per page load and then streams
change records to the browser over WebSocket at /live.

Examples:
  enliven serve
  enliven serve --port=8080
  enliven serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from enliven.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from enliven.json)")

	return cmd
}

func runServe(port int, host string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Port = port
	}
	if host != "" {
		cfg.Host = host
	}

	logger := newLogger(cfg.LogLevel())

	liveCfg := &live.Config{
		ReadTimeout:       config.Duration(cfg.Live.ReadTimeout, 60*time.Second),
		WriteTimeout:      config.Duration(cfg.Live.WriteTimeout, 10*time.Second),
		HeartbeatInterval: config.Duration(cfg.Live.HeartbeatInterval, 25*time.Second),
		MaxDispatchQueue:  cfg.Live.MaxDispatchQueue,
	}
	manager := live.NewManager(liveCfg, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/", serveIndex(logger))
	r.Handle("/live", manager.Handler(demoDocument))
	r.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	// Push the wall clock into every session once a second.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			now := time.Now().Format("15:04:05")
			manager.Each(func(s *live.Session) {
				s.Dispatch(func(d *dom.Document) {
					tags, err := d.XPath(`//span[@id="clock"]`)
					if err != nil || len(tags) == 0 {
						return
					}
					tags[0].SetText(now)
				})
			})
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		manager.CloseAll()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	printBanner()
	info("listening on http://%s", addr)
	fmt.Println()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// demoDocument builds the document each live session starts from.
func demoDocument() *dom.Document {
	d := dom.NewDocument(render.New())
	body := dom.Body(dom.WithID("body"))
	heading := dom.H1(dom.WithID("title"), dom.WithText("Enliven demo"))
	clock := dom.Span(dom.WithID("clock"), dom.WithText("--:--:--"))
	para := dom.P(dom.WithID("blurb"),
		dom.WithText("The time below updates from the server without a reload."))

	d.AppendChild(body)
	body.AppendChild(heading)
	body.AppendChild(para)
	body.AppendChild(clock)
	return d
}

// serveIndex renders a fresh copy of the demo document and wraps it with
// the client script that applies streamed changes.
func serveIndex(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d := demoDocument()
		markup, err := d.Render()
		if err != nil {
			logger.Error("render failed", "error", err)
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, indexPage, markup)
	}
}

const indexPage = `<!DOCTYPE html>
%s
<script>
(function () {
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  var ws = new WebSocket(proto + "//" + location.host + "/live");

  function nodeFor(ch) { return document.getElementById(ch.id); }

  function insertMarkup(parent, markup, beforeId) {
    var tpl = document.createElement("template");
    tpl.innerHTML = markup;
    var ref = beforeId ? document.getElementById(beforeId) : null;
    parent.insertBefore(tpl.content, ref);
  }

  function apply(ch) {
    var el = nodeFor(ch);
    switch (ch.type) {
      case "update":
        if (!el) return;
        if (ch.name === "text") el.textContent = ch.value;
        else if (ch.value === "") el.removeAttribute(ch.name);
        else el.setAttribute(ch.name, ch.value);
        break;
      case "added":
        // The record carries the child's own id; it lands where the
        // anchor says, under the anchor's parent (or body when there
        // is no anchor yet).
        var anchor = ch.before ? document.getElementById(ch.before) : null;
        var parent = anchor ? anchor.parentNode : document.body;
        insertMarkup(parent, ch.value, ch.before);
        break;
      case "moved":
        if (!el) return;
        var dest = ch.before ? document.getElementById(ch.before) : null;
        el.parentNode.insertBefore(el, dest);
        break;
      case "removed":
        if (el) el.remove();
        break;
    }
  }

  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.t === "changes") {
      (msg.changes || []).forEach(apply);
      ws.send(JSON.stringify({ t: "ack", ack: msg.seq }));
    } else if (msg.t === "sync") {
      ws.send(JSON.stringify({ t: "ack", ack: msg.seq }));
    } else if (msg.t === "ping") {
      ws.send(JSON.stringify({ t: "pong" }));
    }
  };
})();
</script>
`
