package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"retrotv/library"
)

// channelLibrary is the slice of the library the HTTP layer needs.
type channelLibrary interface {
	Names() []string
	Has(name string) bool
	Info() []library.ChannelInfo
	TotalVideos() int
}

type APIServer struct {
	config    *Config
	library   channelLibrary
	remote    remoteControl
	scheduler *AutoScheduler
	logger    *Logger
	auth      *AuthMiddleware
	server    *http.Server
}

func NewAPIServer(config *Config, lib channelLibrary, remote remoteControl, scheduler *AutoScheduler, logger *Logger) *APIServer {
	return &APIServer{
		config:    config,
		library:   lib,
		remote:    remote,
		scheduler: scheduler,
		logger:    logger,
		auth:      NewAuthMiddleware(config.AuthToken),
	}
}

func (s *APIServer) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.Handler(),
		ReadTimeout:       ServerReadTimeout,
		WriteTimeout:      ServerWriteTimeout,
		IdleTimeout:       ServerIdleTimeout,
		ReadHeaderTimeout: ServerReadHeaderTimeout,
		MaxHeaderBytes:    HTTPMaxHeaderBytes,
	}

	s.logger.Printf("HTTP server starting on port %d", s.config.Port)
	return s.server.ListenAndServe()
}

func (s *APIServer) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}

// Handler builds the route table: the open remote-control surface the page
// uses, and the token-protected admin API.
func (s *APIServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRemote)
	mux.HandleFunc("/health", s.handleHealth)

	// Remote-control endpoints (open on the LAN, like the TV itself)
	mux.HandleFunc("/switch_channel", s.handleSwitchChannel)
	mux.HandleFunc("/next_video", s.handleNextVideo)
	mux.HandleFunc("/set_auto_mode", s.handleSetAutoMode)
	mux.HandleFunc("/set_shuffle_timer", s.handleSetShuffleTimer)

	// Admin endpoints (with auth)
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/api/status", s.handleStatus)
	apiMux.HandleFunc("/api/channels", s.handleChannels)
	apiMux.HandleFunc("/api/config", s.handleGetConfig)
	apiMux.HandleFunc("/api/session", s.handleSession)

	mux.Handle("/api/", s.auth.Check(apiMux))

	return mux
}

func (s *APIServer) handleRemote(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := remotePageData{
		Channels:     s.library.Names(),
		ShuffleTimer: s.scheduler.Interval(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := remoteTemplate.Execute(w, data); err != nil {
		s.logger.Printf("Failed to render remote page: %v", err)
	}
}

func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

func (s *APIServer) handleSwitchChannel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Channel string `json:"channel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Channel == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "No channel provided",
		})
		return
	}

	if !s.library.Has(req.Channel) {
		s.logger.Printf("Requested unknown channel %q", req.Channel)
	}

	if err := s.remote.SwitchChannel(req.Channel, true); err != nil {
		s.logger.Printf("Switch to channel %q failed: %v", req.Channel, err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "success",
		"channel": req.Channel,
	})
}

func (s *APIServer) handleNextVideo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.remote.NextVideo(true); err != nil {
		s.logger.Printf("Next video failed: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "success",
		"action": "next_video",
	})
}

func (s *APIServer) handleSetAutoMode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req.Mode = ""
	}

	if err := s.scheduler.SetMode(req.Mode); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "Invalid mode",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"mode": req.Mode,
	})
}

func (s *APIServer) handleSetShuffleTimer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// The page sends the timer as a numeric string, unvalidated.
	var req struct {
		Timer string `json:"timer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req.Timer = ""
	}

	seconds, err := strconv.Atoi(strings.TrimSpace(req.Timer))
	if err != nil || s.scheduler.SetInterval(seconds) != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "Invalid timer",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{
		"timer": seconds,
	})
}

func (s *APIServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"mode":       s.scheduler.Mode(),
		"interval_s": s.scheduler.Interval(),
		"channel":    s.remote.CurrentChannel(),
		"channels":   len(s.library.Names()),
		"videos":     s.library.TotalVideos(),
		"uptime":     fmt.Sprintf("%d seconds", int(time.Since(startTime).Seconds())),
	})
}

func (s *APIServer) handleChannels(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"channels": s.library.Info(),
	})
}

func (s *APIServer) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"port":                s.config.Port,
		"base_paths":          s.config.BasePaths,
		"transition_video":    s.config.TransitionVideo,
		"transition_length_s": s.config.TransitionLengthS,
		"auto_interval_s":     s.scheduler.Interval(),
		"hwdec":               s.config.HWDec,
	})
}

func (s *APIServer) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token, err := s.auth.GenerateSessionToken()
	if err != nil {
		s.logger.Printf("Failed to issue session token: %v", err)
		http.Error(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"token": token,
	})
}

var startTime = time.Now()
