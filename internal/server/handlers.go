package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/AsagiriBeta/PackMerger/internal/archive"
	"github.com/AsagiriBeta/PackMerger/internal/engine"
	"github.com/AsagiriBeta/PackMerger/internal/pack"
)

// iconFileName is where a session's custom icon is staged.
const iconFileName = "icon.bin"

// uploadedPack describes one extracted pack in an upload response.
type uploadedPack struct {
	Name        string `json:"name"`
	PackFormat  int    `json:"pack_format"`
	HasFormat   bool   `json:"has_format"`
	Description string `json:"description"`
	HasIcon     bool   `json:"has_icon"`
}

// uploadResponse is the body of a successful upload.
type uploadResponse struct {
	SessionID string         `json:"session_id"`
	Packs     []uploadedPack `json:"packs"`
	Warnings  []string       `json:"warnings,omitempty"`
}

// mergeRequest is the body of a merge call.
type mergeRequest struct {
	SessionID   string   `json:"session_id"`
	PackOrder   []string `json:"pack_order"`
	OutputName  string   `json:"output_name"`
	Description string   `json:"description"`
	PackFormat  *int     `json:"pack_format"`
	Exclude     []string `json:"exclude"`
	CreateZip   bool     `json:"create_zip"`
	Preview     bool     `json:"preview"`
}

// mergeResponse is the body of a successful merge.
type mergeResponse struct {
	Success     bool                `json:"success"`
	OutputID    string              `json:"output_id,omitempty"`
	Summary     engine.Summary      `json:"summary"`
	Changes     []engine.PathChange `json:"changes,omitempty"`
	DownloadURL string              `json:"download_url,omitempty"`
	Digest      string              `json:"digest,omitempty"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("failed to parse upload: %w", err))
		return
	}
	files := r.MultipartForm.File["packs"]
	if len(files) == 0 {
		s.writeError(w, http.StatusBadRequest, errors.New("no pack archives uploaded"))
		return
	}

	sessionID, err := s.sessions.Create()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := uploadResponse{SessionID: sessionID}
	seen := map[string]bool{}
	for _, fh := range files {
		data, err := readMultipartFile(fh)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read %s: %w", fh.Filename, err))
			return
		}
		tree, err := archive.ExtractPack(data)
		if err != nil {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: %v", fh.Filename, err))
			continue
		}

		name := packName(fh.Filename, seen)
		dir := filepath.Join(s.sessions.PacksDir(sessionID), name)
		if err := pack.WriteTree(s.fs, dir, tree); err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}

		info := pack.InfoFromTree(tree)
		resp.Packs = append(resp.Packs, uploadedPack{
			Name:        name,
			PackFormat:  info.PackFormat,
			HasFormat:   info.HasFormat,
			Description: info.Description,
			HasIcon:     info.HasIcon,
		})
	}

	if len(resp.Packs) == 0 {
		_ = s.sessions.Remove(sessionID)
		s.writeError(w, http.StatusBadRequest, errors.New("no valid resource packs in upload"))
		return
	}

	// Optional custom icon, staged for the later merge call.
	if iconFiles := r.MultipartForm.File["icon"]; len(iconFiles) > 0 {
		data, err := readMultipartFile(iconFiles[0])
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("failed to read icon: %w", err))
			return
		}
		if err := s.fs.AtomicWrite(filepath.Join(s.sessions.Dir(sessionID), iconFileName), data, 0644); err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	s.logger.Info("upload complete", "session", sessionID, "packs", len(resp.Packs))
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("failed to decode request: %w", err))
		return
	}

	exists, err := s.sessions.Exists(req.SessionID)
	if err != nil || !exists {
		s.writeError(w, http.StatusNotFound, errors.New("session not found or expired"))
		return
	}

	packs, err := s.loadSessionPacks(req.SessionID, req.PackOrder)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	mergeReq := &engine.MergeRequest{
		Packs:    packs,
		Excludes: req.Exclude,
		Overrides: pack.ManifestOverrides{
			PackFormat:  req.PackFormat,
			Description: req.Description,
		},
		Preview: req.Preview,
	}
	if data, err := s.fs.ReadFile(filepath.Join(s.sessions.Dir(req.SessionID), iconFileName)); err == nil {
		mergeReq.Icon = data
	}

	result, err := s.engine.Merge(r.Context(), mergeReq)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("merge failed: %w", err))
		return
	}

	resp := mergeResponse{Success: true, Summary: result.Summary, Changes: result.Changes}
	if req.Preview {
		s.writeJSON(w, http.StatusOK, resp)
		return
	}

	if req.CreateZip {
		outputName := req.OutputName
		if outputName == "" {
			outputName = "merged_pack"
		}
		if err := s.fs.ValidateIdentifier(outputName); err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid output name: %w", err))
			return
		}
		outputID := req.SessionID + "_" + outputName

		zipData, err := archive.ZipBytes(result.Tree)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		zipPath := filepath.Join(s.cfg.Paths.Outputs, outputID+".zip")
		if err := s.fs.AtomicWrite(zipPath, zipData, 0644); err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}

		resp.OutputID = outputID
		resp.DownloadURL = "/api/download/" + outputID
		resp.Digest = s.hasher.HashBytes(zipData)
	}

	s.logger.Info("merge complete",
		"session", req.SessionID,
		"packs", result.Summary.PacksMerged,
		"paths", result.Summary.TotalPaths,
		"warnings", len(result.Summary.Warnings))
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.fs.ValidateIdentifier(id); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	zipPath := filepath.Join(s.cfg.Paths.Outputs, id+".zip")
	exists, err := s.fs.Exists(zipPath)
	if err != nil || !exists {
		s.writeError(w, http.StatusNotFound, errors.New("output not found"))
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".zip"))
	http.ServeFile(w, r, zipPath)
}

// loadSessionPacks loads the session's packs in the requested priority
// order. Named packs come first in the given order; any detected packs
// not named are appended in their default (sorted) order.
func (s *Server) loadSessionPacks(sessionID string, order []string) ([]*pack.Pack, error) {
	dirs, err := pack.Detect(s.fs, s.sessions.PacksDir(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to detect session packs: %w", err)
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("session holds no valid packs: %w", engine.ErrInvalidPack)
	}

	byName := make(map[string]string, len(dirs))
	for _, dir := range dirs {
		byName[filepath.Base(dir)] = dir
	}

	var ordered []string
	used := make(map[string]bool)
	for _, name := range order {
		if dir, ok := byName[name]; ok && !used[name] {
			ordered = append(ordered, dir)
			used[name] = true
		}
	}
	for _, dir := range dirs {
		if !used[filepath.Base(dir)] {
			ordered = append(ordered, dir)
		}
	}

	packs := make([]*pack.Pack, 0, len(ordered))
	for _, dir := range ordered {
		p, err := pack.Load(s.fs, dir)
		if err != nil {
			return nil, fmt.Errorf("failed to load pack %s: %w", filepath.Base(dir), err)
		}
		packs = append(packs, p)
	}
	return packs, nil
}

// packName derives a unique, path-safe pack name from an uploaded
// archive's file name.
func packName(filename string, seen map[string]bool) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.', r == ' ':
			return r
		default:
			return '_'
		}
	}, base)
	base = strings.TrimSpace(base)
	if base == "" || base == "." || base == ".." {
		base = "pack"
	}

	name := base
	for n := 2; seen[name]; n++ {
		name = fmt.Sprintf("%s-%d", base, n)
	}
	seen[name] = true
	return name
}

// readMultipartFile opens and fully reads an uploaded file.
func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return io.ReadAll(f)
}

// writeJSON writes v as an indented JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}

// writeError writes an error response and logs it.
func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("request failed", "status", status, "err", err)
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
