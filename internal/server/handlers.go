package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/notesmith/notesmith/internal/cache"
	apperrors "github.com/notesmith/notesmith/internal/errors"
	"github.com/notesmith/notesmith/internal/notation"
	"github.com/notesmith/notesmith/internal/synth"
	"github.com/notesmith/notesmith/internal/wavio"
)

const maxNotationSize = 64 * 1024 // plenty for any hand-written track

// handleIndex serves the notation form
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := s.templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		s.logger.Error("render template", "err", err)
	}
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleRender synthesizes the posted notation and responds with a WAV
// payload. Identical requests are served from the render cache.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxNotationSize)

	text := r.FormValue("notation")
	if text == "" {
		s.renderError(w, http.StatusBadRequest, "notation is required")
		return
	}

	wave, env, err := configFromForm(r)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err.Error())
		return
	}
	normalize := r.FormValue("normalize") == "on"

	key := cache.Key(
		text,
		wave.Shape.String(),
		strconv.Itoa(wave.SampleRate),
		strconv.FormatFloat(wave.UnitDuration, 'g', -1, 64),
		fmt.Sprintf("%v/%v/%v", env.Enabled, env.Shares, env.Levels),
		strconv.FormatBool(normalize),
	)
	if data, ok := s.renders.Get(key); ok {
		s.serveWAV(w, data)
		return
	}

	track, err := notation.Parse(text)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderer, err := synth.NewRenderer(wave, env)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err.Error())
		return
	}
	samples, err := renderer.Render(track)
	if err != nil {
		s.renderError(w, statusFor(err), err.Error())
		return
	}
	if normalize {
		samples = synth.Normalize(samples)
	}

	data, err := wavio.EncodeBytes(samples, wave.SampleRate)
	if err != nil {
		s.logger.Error("encode wav", "err", err)
		s.renderError(w, http.StatusInternalServerError, "failed to encode audio")
		return
	}

	s.renders.Put(key, data)
	s.serveWAV(w, data)
}

// configFromForm builds render configs from form values, starting from the
// process defaults.
func configFromForm(r *http.Request) (synth.WaveConfig, synth.EnvelopeConfig, error) {
	wave := synth.DefaultWaveConfig()
	env := synth.DefaultEnvelopeConfig()

	if tag := r.FormValue("shape"); tag != "" {
		shape, err := synth.ParseShape(tag)
		if err != nil {
			return wave, env, err
		}
		wave.Shape = shape
	}
	if v := r.FormValue("bpm"); v != "" {
		bpm, err := strconv.Atoi(v)
		if err != nil {
			return wave, env, fmt.Errorf("invalid bpm %q", v)
		}
		if err := wave.SetBPM(bpm); err != nil {
			return wave, env, err
		}
	}
	if r.FormValue("adsr") == "off" {
		env.Enabled = false
	}
	return wave, env, nil
}

// serveWAV writes an inline WAV response.
func (s *Server) serveWAV(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Disposition", `inline; filename="track.wav"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// renderError writes a JSON error response
func (s *Server) renderError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// statusFor maps domain errors to HTTP status codes: every malformed
// input is the caller's fault, anything else is ours.
func statusFor(err error) int {
	var parseErr *apperrors.ParseError
	var pitchErr *apperrors.PitchError
	var shapeErr *apperrors.ShapeError
	var cfgErr *apperrors.ConfigError
	switch {
	case errors.As(err, &parseErr),
		errors.As(err, &pitchErr),
		errors.As(err, &shapeErr),
		errors.As(err, &cfgErr),
		errors.Is(err, apperrors.ErrEmptyTrack),
		errors.Is(err, apperrors.ErrEmptyChord):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
