package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/ironsheep/image-autocrop/internal/imaging"
	"github.com/ironsheep/image-autocrop/internal/selection"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_autocrop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Info("tool failed", zap.String("tool", params.Name), zap.Error(err))
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Content Detection
	case "image_content_bounds":
		return s.handleImageContentBounds(args)
	case "image_autocrop":
		return s.handleImageAutocrop(args)
	case "image_autocrop_preview":
		return s.handleImageAutocropPreview(args)
	case "image_background":
		return s.handleImageBackground(args)

	// Region Operations
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_select_export":
		return s.handleImageSelectExport(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response. An empty data is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	mcpErr := &MCPError{Code: code, Message: message}
	if data != "" {
		mcpErr.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   mcpErr,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// cropArgs are the detector parameters shared by the content tools. Nil or
// empty fields fall back to the server configuration.
type cropArgs struct {
	Padding    *int   `json:"padding,omitempty"`
	Tolerance  *int   `json:"tolerance,omitempty"`
	Background string `json:"background,omitempty"`
}

func (s *Server) options(a cropArgs) (imaging.Options, error) {
	opts, err := s.cfg.Crop.Options()
	if err != nil {
		return imaging.Options{}, err
	}
	if a.Padding != nil {
		opts.Padding = *a.Padding
	}
	if a.Tolerance != nil {
		opts.Tolerance = *a.Tolerance
	}
	if a.Background != "" {
		bg, err := imaging.ParseHexColor(a.Background)
		if err != nil {
			return imaging.Options{}, fmt.Errorf("background: %w", err)
		}
		opts.Background = bg
	}
	if err := opts.Validate(); err != nil {
		return imaging.Options{}, err
	}
	return opts, nil
}

func requirePath(path string) error {
	if path == "" {
		return errors.New("path is required")
	}
	return nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Content Detection Handlers ===

type imageContentArgs struct {
	Path string `json:"path"`
	cropArgs
}

// ContentBoundsResult reports detected content bounds without cropping.
type ContentBoundsResult struct {
	Box          imaging.BoundingBox `json:"box"`
	ContentFound bool                `json:"content_found"`
	Mode         string              `json:"mode"`
	Width        int                 `json:"width"`
	Height       int                 `json:"height"`
	CropWidth    int                 `json:"crop_width"`
	CropHeight   int                 `json:"crop_height"`
}

func (s *Server) handleImageContentBounds(args json.RawMessage) (interface{}, error) {
	var a imageContentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	opts, err := s.options(a.cropArgs)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	box, err := imaging.ContentBounds(img, opts)
	if err != nil && !errors.Is(err, imaging.ErrNoContent) {
		return nil, err
	}

	b := img.Bounds()
	return &ContentBoundsResult{
		Box:          box,
		ContentFound: err == nil,
		Mode:         imaging.ModeOf(img).String(),
		Width:        b.Dx(),
		Height:       b.Dy(),
		CropWidth:    box.Width(),
		CropHeight:   box.Height(),
	}, nil
}

type imageAutocropArgs struct {
	Path           string `json:"path"`
	Output         string `json:"output,omitempty"`
	WriteUncropped *bool  `json:"write_uncropped,omitempty"`
	cropArgs
}

func (s *Server) handleImageAutocrop(args json.RawMessage) (interface{}, error) {
	var a imageAutocropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	opts, err := s.options(a.cropArgs)
	if err != nil {
		return nil, err
	}

	req := imaging.CropRequest{
		Input:          a.Path,
		Output:         a.Output,
		Suffix:         s.cfg.Output.Suffix,
		WriteUncropped: s.cfg.Output.WriteUncropped,
		Options:        opts,
	}
	if a.WriteUncropped != nil {
		req.WriteUncropped = *a.WriteUncropped
	}

	res, err := imaging.CropFile(s.cache, req)
	if err != nil {
		return nil, err
	}
	if res.Written {
		// A later load of the output path must see the new file.
		s.cache.Evict(res.Output)
	}

	s.logger.Debug("autocrop",
		zap.String("input", res.Input),
		zap.String("output", res.Output),
		zap.Stringer("box", res.Box),
		zap.Bool("content_found", res.ContentFound))
	return res, nil
}

type imageAutocropPreviewArgs struct {
	Path  string `json:"path"`
	Color string `json:"color,omitempty"`
	cropArgs
}

func (s *Server) handleImageAutocropPreview(args json.RawMessage) (interface{}, error) {
	var a imageAutocropPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = imaging.DefaultOverlayColor
	}
	opts, err := s.options(a.cropArgs)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	box, err := imaging.ContentBounds(img, opts)
	if err != nil && !errors.Is(err, imaging.ErrNoContent) {
		return nil, err
	}
	return imaging.DrawBounds(img, box, a.Color)
}

// BackgroundResult reports the inferred background and the corners it was
// voted from.
type BackgroundResult struct {
	Mode       string                 `json:"mode"`
	UsesAlpha  bool                   `json:"uses_alpha"`
	Background *imaging.ColorResult   `json:"background,omitempty"`
	Corners    []imaging.CornerSample `json:"corners"`
}

func (s *Server) handleImageBackground(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	mode := imaging.ModeOf(img)
	corners := imaging.CornerColors(img)
	result := &BackgroundResult{
		Mode:      mode.String(),
		UsesAlpha: mode == imaging.ModeRGBA,
		Corners:   corners,
	}
	if len(corners) > 0 {
		bg := imaging.BackgroundColor(img)
		// Report the winning corner's full sample.
		for _, c := range corners {
			if c.Color == bg {
				result.Background, err = imaging.SampleColor(img, c.X, c.Y)
				if err != nil {
					return nil, err
				}
				break
			}
		}
	}
	return result, nil
}

// === Region Operation Handlers ===

type imageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.CropRegion(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

// Rect is an exclusive rectangle in image coordinates.
type Rect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type imageSelectExportArgs struct {
	Path       string `json:"path"`
	Rectangles []Rect `json:"rectangles"`
	OutputDir  string `json:"output_dir"`
}

// SelectExportResult lists the files written for a manual selection.
type SelectExportResult struct {
	Files      []string `json:"files"`
	Rectangles []Rect   `json:"rectangles"`
	Discarded  int      `json:"discarded"`
}

// handleImageSelectExport replays each rectangle as a press at (x1,y1) and
// a release at (x2,y2), then exports what the selector committed.
func (s *Server) handleImageSelectExport(args json.RawMessage) (interface{}, error) {
	var a imageSelectExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	if a.OutputDir == "" {
		return nil, errors.New("output_dir is required")
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	origin := img.Bounds().Min
	sel := selection.NewSelector(img.Bounds())
	discarded := 0
	for _, r := range a.Rectangles {
		sel.PointerDown(origin.Add(image.Pt(r.X1, r.Y1)))
		if _, ok := sel.PointerUp(origin.Add(image.Pt(r.X2, r.Y2))); !ok {
			discarded++
		}
	}

	rects := sel.Rectangles()
	files, err := selection.Export(img, rects, a.OutputDir)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		s.cache.Evict(f)
	}

	result := &SelectExportResult{Files: files, Rectangles: make([]Rect, 0, len(rects)), Discarded: discarded}
	for _, r := range rects {
		r = r.Sub(origin)
		result.Rectangles = append(result.Rectangles, Rect{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y})
	}
	return result, nil
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}
