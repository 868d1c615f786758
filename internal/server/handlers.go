package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jmylchreest/oltre/internal/colour"
	"github.com/jmylchreest/oltre/internal/tokens"
	"github.com/jmylchreest/oltre/internal/typography"
	"github.com/jmylchreest/oltre/internal/version"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// param returns the first non-empty form value among names. Query and POST
// form values are both searched.
func param(r *http.Request, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(r.FormValue(name)); v != "" {
			return v
		}
	}
	return ""
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_, _, rev := s.Current()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  version.Short(),
		"revision": rev,
		"clients":  s.hub.Count(),
	})
}

// PaletteResponse is the body of /api/palette.
type PaletteResponse struct {
	Base    string   `json:"base"`
	Harmony string   `json:"harmony"`
	Palette []string `json:"palette"`
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	base := param(r, "base", "base_color")
	if base == "" {
		writeError(w, http.StatusBadRequest, errors.New("base colour is required"))
		return
	}
	harmony := param(r, "harmony", "harmony_type")
	if harmony == "" {
		harmony = string(colour.HarmonyComplementary)
	}

	var opts []colour.HarmonyOption
	if v := param(r, "offset"); v != "" {
		offset, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid offset %q", v))
			return
		}
		opts = append(opts, colour.WithLightnessOffset(offset))
	}

	hexes, err := colour.GeneratePaletteHex(base, harmony, opts...)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, PaletteResponse{Base: base, Harmony: harmony, Palette: hexes})
}

// ContrastResponse is the body of /api/contrast.
type ContrastResponse struct {
	Color1 string `json:"color1"`
	Color2 string `json:"color2"`
	colour.ContrastReport
	Grade string `json:"grade"`
}

func (s *Server) handleContrast(w http.ResponseWriter, r *http.Request) {
	c1, err := colour.ParseHex(param(r, "color1", "fg"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("color1: %w", err))
		return
	}
	c2, err := colour.ParseHex(param(r, "color2", "bg"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("color2: %w", err))
		return
	}

	report := colour.CheckContrast(c1, c2)
	writeJSON(w, http.StatusOK, ContrastResponse{
		Color1:         c1.Hex(),
		Color2:         c2.Hex(),
		ContrastReport: report,
		Grade:          report.Grade(),
	})
}

// ScaleStep is one entry of /api/scale.
type ScaleStep struct {
	typography.FluidSize
	CSS string `json:"css"`
}

// ScaleResponse is the body of /api/scale.
type ScaleResponse struct {
	Base  float64     `json:"base"`
	Ratio float64     `json:"ratio"`
	Steps []ScaleStep `json:"steps"`
}

func (s *Server) handleScale(w http.ResponseWriter, r *http.Request) {
	set, _, _ := s.Current()
	ratio, base := set.Scale.Ratio, set.Scale.Base

	if v := param(r, "ratio"); v != "" {
		parsed, err := typography.ParseRatio(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		ratio = parsed
	}
	if v := param(r, "base"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid base %q", v))
			return
		}
		base = parsed
	}

	scale, err := typography.BuildScale(base, ratio)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := ScaleResponse{Base: scale.Base, Ratio: scale.Ratio}
	for _, size := range scale.Sizes() {
		resp.Steps = append(resp.Steps, ScaleStep{FluidSize: size, CSS: size.CSS()})
	}
	writeJSON(w, http.StatusOK, resp)
}

// TokensResponse is the body of /api/tokens.
type TokensResponse struct {
	Revision   string             `json:"revision"`
	Palette    colour.PaletteJSON `json:"palette"`
	Light      []tokens.Alias     `json:"light"`
	Dark       []tokens.Alias     `json:"dark,omitempty"`
	Typography string             `json:"typography"`
	FontsURL   string             `json:"fonts_url,omitempty"`
}

func (s *Server) handleTokens(w http.ResponseWriter, _ *http.Request) {
	set, _, rev := s.Current()
	resp := TokensResponse{
		Revision:   rev,
		Palette:    set.Palette.JSON(),
		Light:      set.Semantic(tokens.ModeLight),
		Typography: set.Typography.Key,
		FontsURL:   set.FontsURL(),
	}
	if set.DarkMode {
		resp.Dark = set.Semantic(tokens.ModeDark)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAudit(w http.ResponseWriter, _ *http.Request) {
	set, _, _ := s.Current()
	entries := set.Audit()
	writeJSON(w, http.StatusOK, map[string]any{
		"entries":  entries,
		"failures": len(tokens.Failures(entries)),
	})
}

func (s *Server) handleCSS(w http.ResponseWriter, _ *http.Request) {
	_, sheet, rev := s.Current()
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("ETag", `"`+rev+`"`)
	_, _ = w.Write(sheet)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	s.live.Lock()
	id := s.hub.Add(conn)
	_, sheet, rev := s.Current()
	err = s.hub.Send(id, LiveMessage{Type: "css", Client: id, Revision: rev, CSS: string(sheet)})
	s.live.Unlock()

	defer func() {
		s.hub.Remove(id)
		_ = conn.Close()
	}()
	if err != nil {
		return
	}

	// Clients only listen; reading drives pings and detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// sameHost accepts WebSocket handshakes without an Origin header or from the
// host being served.
func sameHost(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}
