package main

import (
	"bytes"
	"context"
	"database/sql"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/susji/lilscatter/scatter"
)

var index_template = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>lilscatter</title>
    <style>
      body { margin: 0; font-family: sans-serif; }
      .axis-text { cursor: pointer; font-size: 16px; }
      .active, .change { font-weight: bold; fill: black; }
      .inactive, .unchange { fill: #aaa; }
      .inactive:hover { fill: black; }
      .circle { cursor: pointer; }
      .tooltip {
        position: absolute; pointer-events: none; padding: 6px;
        background: rgba(0, 0, 0, 0.75); color: white;
        border-radius: 4px; font-size: 12px;
        transform: translate(-50%, calc(-100% - 18px));
      }
      .chart-error { color: #b00; padding: 1em; }
    </style>
  </head>
  <body>
    <div class="chart" data-src="{{.DataRoute}}" data-transition="{{.Transition}}">
      <div class="tooltip" style="opacity: 0"></div>
    </div>
    <script src="/wasm_exec.js"></script>
    <script>
      const go = new Go();
      WebAssembly.instantiateStreaming(fetch("/chart.wasm"), go.importObject)
        .then((result) => go.run(result.instance))
        .catch((err) => {
          const p = document.createElement("p");
          p.className = "chart-error";
          p.textContent = "Unable to start chart: " + err;
          document.querySelector(".chart").appendChild(p);
        });
    </script>
  </body>
</html>
`))

type index_params struct {
	DataRoute  string
	Transition string
}

func serve_index_gen(sc *config_serve) http.HandlerFunc {
	params := index_params{
		DataRoute:  DATA_ROUTE,
		Transition: sc.transition.String(),
	}
	return func(w http.ResponseWriter, req *http.Request) {
		b := bytes.Buffer{}
		if err := index_template.Execute(&b, params); err != nil {
			log.Error().Err(err).Msg("serve_index: template failed")
			http.Error(w, "page generation failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(b.Bytes())
	}
}

func serve_data_gen(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		records, err := db_records_get(req.Context(), db)
		if err != nil {
			log.Error().Err(err).Msg("serve_data: cannot read record cache")
			http.Error(w, "records unavailable", http.StatusInternalServerError)
			return
		}
		b := bytes.Buffer{}
		if err := scatter.WriteRecords(&b, records); err != nil {
			log.Error().Err(err).Msg("serve_data: CSV encoding failed")
			http.Error(w, "records unavailable", http.StatusInternalServerError)
			return
		}
		db_bytes := b.Bytes()
		w.Header().Set("Content-Type", DATA_MIMETYPE)
		w.Header().Set("Content-Length", strconv.Itoa(len(db_bytes)))
		w.WriteHeader(http.StatusOK)
		w.Write(db_bytes)
	}
}

func serve_file_gen(path, mimetype string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		f, err := os.Open(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("serve_file: cannot open")
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		st, err := f.Stat()
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("serve_file: cannot stat")
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", mimetype)
		http.ServeContent(w, req, st.Name(), st.ModTime(), f)
	}
}

func serve_healthz(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

type response_wrapper struct {
	http.ResponseWriter
	status int
}

func (rw *response_wrapper) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func logging_middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &response_wrapper{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapper, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Int("status", wrapper.status).
			Dur("duration", time.Since(start)).
			Msg("HTTP request processed")
	})
}

func recovery_middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Str("path", r.URL.Path).
					Msg("HTTP handler panic recovered")
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func serve_router(sc *config_serve, db *sql.DB) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", serve_index_gen(sc)).Methods(http.MethodGet)
	r.HandleFunc(DATA_ROUTE, serve_data_gen(db)).Methods(http.MethodGet)
	r.HandleFunc("/chart.wasm", serve_file_gen(sc.path_wasm, WASM_MIMETYPE)).Methods(http.MethodGet)
	r.HandleFunc("/wasm_exec.js", serve_file_gen(sc.path_wasm_exec, JS_MIMETYPE)).Methods(http.MethodGet)
	r.HandleFunc("/healthz", serve_healthz).Methods(http.MethodGet)
	r.Use(logging_middleware)
	r.Use(recovery_middleware)

	if len(sc.cors_origins) == 0 {
		return r
	}
	log.Info().Strs("origins", sc.cors_origins).Msg("enabling CORS")
	c := cors.New(cors.Options{
		AllowedOrigins: sc.cors_origins,
		AllowedMethods: []string{http.MethodGet},
	})
	return c.Handler(r)
}

func serve(path_config string) {
	config, err := config_load_file(path_config)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load configuration")
	}
	sc, err := config.parse_serve()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot proceed with serve")
	}

	if err := protect_serve(sc); err != nil {
		log.Fatal().Err(err).Msg("cannot protect serve")
	}

	ctx, cf := context.WithCancel(context.Background())
	defer cf()

	db, err := records_cache(ctx, sc.path_data)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot proceed with serve")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("error when closing database")
		}
	}()

	server := &http.Server{
		Addr:         sc.listen_addr,
		Handler:      serve_router(sc, db),
		ReadTimeout:  sc.read_timeout,
		WriteTimeout: sc.write_timeout,
	}

	go func() {
		log.Info().Str("address", sc.listen_addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("got signal -- shutting down")

	sctx, scf := context.WithTimeout(ctx, DEFAULT_SHUTDOWN_TIMEOUT)
	defer scf()
	if err := server.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
}
