// Package logging wraps log/slog for the news API.
//
// main builds the process logger once with New and installs it with
// slog.SetDefault. The HTTP logging middleware derives a per-request logger
// with ForRequest and stores it with WithLogger; handlers and middleware
// further down read it back with FromContext:
//
//	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
//	slog.SetDefault(logger)
//
//	func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    logger := logging.ForRequest(r.Context(), h.Logger)
//	    logger.Info("listing news")
//	}
package logging
