package editor

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/pjmuller/photobook/internal/album"
	"github.com/pjmuller/photobook/internal/crop"
	"github.com/pjmuller/photobook/internal/layout"
	"github.com/pjmuller/photobook/internal/resize"
)

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.cfg)
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	type tplJSON struct {
		ID       string `json:"id"`
		RowMajor bool   `json:"rowMajor"`
		Counts   []int  `json:"counts"`
	}
	var out []tplJSON
	for _, t := range layout.Templates() {
		out = append(out, tplJSON{ID: t.ID, RowMajor: t.RowMajor, Counts: t.Counts})
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleAlbum(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondJSON(w, http.StatusOK, s.album)
}

func (s *Server) handlePhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := s.loader.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list photos")
		respondError(w, http.StatusInternalServerError, "failed to list photos")
		return
	}
	respondJSON(w, http.StatusOK, photos)
}

func (s *Server) handleAddPage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Layout string `json:"layout"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := layout.NewPage(body.Layout, s.cfg)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	// Insert before the back cover
	pages := s.album.Pages
	if n := len(pages); n >= 2 {
		pages = append(pages[:n-1], page, pages[n-1])
	} else {
		pages = append(pages, page)
	}
	s.album.Pages = pages
	if !s.save(w) {
		return
	}
	respondJSON(w, http.StatusCreated, page)
}

// pageFromRequest resolves the page id path parameter. Callers hold the
// mutex.
func (s *Server) pageFromRequest(w http.ResponseWriter, r *http.Request) *album.Page {
	page := s.album.PageByID(chi.URLParam(r, "pageID"))
	if page == nil {
		respondError(w, http.StatusNotFound, "page not found")
		return nil
	}
	return page
}

// cellFromRequest resolves group and cell path parameters.
func cellFromRequest(w http.ResponseWriter, r *http.Request, page *album.Page) (album.Group, int, bool) {
	gi, err1 := strconv.Atoi(chi.URLParam(r, "group"))
	ci, err2 := strconv.Atoi(chi.URLParam(r, "cell"))
	if err1 != nil || err2 != nil || gi < 0 || gi >= page.GroupCount() {
		respondError(w, http.StatusBadRequest, "invalid cell address")
		return album.Group{}, 0, false
	}
	g := page.Group(gi)
	if ci < 0 || ci >= g.CellCount() {
		respondError(w, http.StatusBadRequest, "invalid cell address")
		return album.Group{}, 0, false
	}
	return g, ci, true
}

func (s *Server) handleChangeLayout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Layout string `json:"layout"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.pageFromRequest(w, r)
	if page == nil {
		return
	}
	evicted, err := layout.ChangeLayout(page, body.Layout, s.loader.Func(), s.cfg)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.save(w) {
		return
	}
	if evicted == nil {
		evicted = []layout.Photo{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"page":    page,
		"evicted": evicted,
	})
}

func (s *Server) handleResizeStart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PageLevel bool `json:"pageLevel"`
		Group     int  `json:"group"`
		Boundary  int  `json:"boundary"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.pageFromRequest(w, r)
	if page == nil {
		return
	}
	target := resize.Target{PageLevel: body.PageLevel, Group: body.Group}
	if err := s.engine.Start(page, target, body.Boundary); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResizeMove(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Delta int `json:"delta"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.pageFromRequest(w, r)
	if page == nil {
		return
	}
	if !s.engine.Dragging() {
		respondError(w, http.StatusConflict, "no drag in progress")
		return
	}
	s.engine.Move(body.Delta)
	respondJSON(w, http.StatusOK, page)
}

func (s *Server) handleResizeEnd(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.pageFromRequest(w, r)
	if page == nil {
		return
	}
	s.engine.End()
	if !s.save(w) {
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (s *Server) handleResizeCancel(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.pageFromRequest(w, r)
	if page == nil {
		return
	}
	s.engine.Cancel()
	if !s.save(w) {
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (s *Server) handleAssignPhoto(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Path string `json:"path"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Path == "" {
		respondError(w, http.StatusBadRequest, "path is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.pageFromRequest(w, r)
	if page == nil {
		return
	}
	g, ci, ok := cellFromRequest(w, r, page)
	if !ok {
		return
	}

	cell := g.Cell(ci)
	cell.SetPhoto(body.Path, album.FocalPoint{X: 0.5, Y: 0.5}, 1.0)
	if dims, ok := s.loader.Dimensions(body.Path); ok {
		w2, h2 := g.CellDims(ci)
		crop.Apply(cell, dims, w2, h2, s.limits())
	}
	if !s.save(w) {
		return
	}
	respondJSON(w, http.StatusOK, cell)
}

func (s *Server) handleRemovePhoto(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.pageFromRequest(w, r)
	if page == nil {
		return
	}
	g, ci, ok := cellFromRequest(w, r, page)
	if !ok {
		return
	}
	g.Cell(ci).ClearPhoto()
	if !s.save(w) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) limits() crop.Limits {
	return crop.Limits{Min: s.cfg.MinZoom, Max: s.cfg.MaxZoom}
}

// occupiedCell resolves a cell that must hold a measurable photo for the
// pan/zoom operations.
func (s *Server) occupiedCell(w http.ResponseWriter, r *http.Request) (*album.Cell, album.ImageDimensions, int, int, bool) {
	page := s.pageFromRequest(w, r)
	if page == nil {
		return nil, album.ImageDimensions{}, 0, 0, false
	}
	g, ci, ok := cellFromRequest(w, r, page)
	if !ok {
		return nil, album.ImageDimensions{}, 0, 0, false
	}
	cell := g.Cell(ci)
	if !cell.HasPhoto() {
		respondError(w, http.StatusBadRequest, "cell has no photo")
		return nil, album.ImageDimensions{}, 0, 0, false
	}
	dims, ok := s.loader.Dimensions(cell.Path)
	if !ok {
		respondError(w, http.StatusConflict, "image dimensions unavailable")
		return nil, album.ImageDimensions{}, 0, 0, false
	}
	cw, ch := g.CellDims(ci)
	return cell, dims, cw, ch, true
}

func (s *Server) handlePan(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DX float64 `json:"dx"`
		DY float64 `json:"dy"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cell, dims, cw, ch, ok := s.occupiedCell(w, r)
	if !ok {
		return
	}

	d := crop.IntentToDisplay(dims, cw, ch, *cell.FocalPoint, cell.Zoom, s.limits())
	d = crop.Pan(d, dims, cw, ch, body.DX, body.DY)
	fp, zoom := crop.DisplayToIntent(dims, cw, ch, d, s.limits())
	cell.FocalPoint = &fp
	cell.Zoom = zoom
	crop.Apply(cell, dims, cw, ch, s.limits())

	if !s.save(w) {
		return
	}
	respondJSON(w, http.StatusOK, cell)
}

func (s *Server) handleZoom(w http.ResponseWriter, r *http.Request) {
	var body struct {
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
		Scale float64 `json:"scale"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cell, dims, cw, ch, ok := s.occupiedCell(w, r)
	if !ok {
		return
	}

	d := crop.IntentToDisplay(dims, cw, ch, *cell.FocalPoint, cell.Zoom, s.limits())
	d = crop.ZoomAt(d, dims, cw, ch, body.X, body.Y, body.Scale, s.limits())
	fp, zoom := crop.DisplayToIntent(dims, cw, ch, d, s.limits())
	cell.FocalPoint = &fp
	cell.Zoom = zoom
	crop.Apply(cell, dims, cw, ch, s.limits())

	if !s.save(w) {
		return
	}
	respondJSON(w, http.StatusOK, cell)
}
