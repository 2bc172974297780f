package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/ha1tch/deluxepaint/internal/canvas"
	"github.com/ha1tch/deluxepaint/internal/config"
	"github.com/ha1tch/deluxepaint/internal/logger"
	"github.com/ha1tch/deluxepaint/internal/project"
)

const (
	screenWidth  = 1280
	screenHeight = 800
	fontSize     = 8
	leftPanel    = 100
	rightPanel   = 200
	topBar       = 50
	layerRowH    = 60
	thumbSize    = 30
	statusFrames = 120
)

// GUI Control types
type Button struct {
	rect     rl.Rectangle
	text     string
	hover    bool
	selected bool
}

type Slider struct {
	rect     rl.Rectangle
	value    float32
	min      float32
	max      float32
	label    string
	dragging bool
}

// Application state
type App struct {
	ctx     context.Context
	cfg     *config.Config
	session *canvas.Session

	// View
	zoom      float32
	panX      float32
	panY      float32
	isPanning bool
	panStartX float32
	panStartY float32

	// UI
	toolButtons    []Button
	colorPalette   []color.RGBA
	opacitySlider  Slider
	layerButtons   []Button
	historyButtons []Button

	// Stroke in progress on the canvas
	isDrawing bool

	// Textures mirrored from the session
	compositeTexture rl.Texture2D
	thumbTextures    []rl.Texture2D
	uploaded         uint64
	hasTexture       bool

	status      string
	statusTimer int
}

var tools = []struct {
	tool canvas.Tool
	icon string
	name string
}{
	{canvas.ToolDraw, "D", "DRAW"},
	{canvas.ToolErase, "E", "ERASE"},
	{canvas.ToolFill, "F", "FILL"},
	{canvas.ToolEyedropper, "I", "PICKER"},
}

// Initialize application
func NewApp(ctx context.Context, cfg *config.Config) *App {
	app := &App{
		ctx:  ctx,
		cfg:  cfg,
		zoom: 1.0,
	}

	opts := append(cfg.SessionOptions(),
		canvas.WithLogger(logger.L(ctx)),
		canvas.WithColorPicked(func(c color.RGBA) {
			app.setStatus(fmt.Sprintf("Picked #%02x%02x%02x%02x", c.R, c.G, c.B, c.A))
		}),
	)
	app.session = canvas.NewSession(cfg.Canvas.Width, cfg.Canvas.Height, opts...)

	x := float32(10)
	y := float32(topBar)
	for i, t := range tools {
		app.toolButtons = append(app.toolButtons, Button{
			rect: rl.Rectangle{X: x + float32(i%2)*40, Y: y + float32(i/2)*40, Width: 36, Height: 36},
			text: t.icon,
		})
	}

	app.historyButtons = []Button{
		{rect: rl.Rectangle{X: 10, Y: 150, Width: 36, Height: 20}, text: "UNDO"},
		{rect: rl.Rectangle{X: 50, Y: 150, Width: 36, Height: 20}, text: "REDO"},
		{rect: rl.Rectangle{X: 10, Y: 175, Width: 76, Height: 20}, text: "CLEAR"},
	}

	// Initialize color palette
	app.colorPalette = []color.RGBA{
		{0, 0, 0, 255}, {255, 255, 255, 255}, {230, 41, 55, 255}, {0, 228, 48, 255}, {0, 121, 241, 255},
		{253, 249, 0, 255}, {255, 161, 0, 255}, {200, 122, 255, 255}, {255, 109, 194, 255}, {127, 106, 79, 255},
		{130, 130, 130, 255}, {80, 80, 80, 255}, {200, 200, 200, 255}, {102, 191, 255, 255}, {255, 0, 255, 255},
		{255, 0, 128, 255}, {128, 255, 0, 255}, {0, 128, 255, 255},
	}

	app.opacitySlider = Slider{
		rect:  rl.Rectangle{X: float32(screenWidth - rightPanel + 10), Y: 60, Width: rightPanel - 20, Height: 16},
		min:   0,
		max:   255,
		label: "OPACITY",
	}

	// Initialize layer buttons
	labels := []string{"NEW", "DEL", "MERGE", "UP", "DOWN"}
	for i, l := range labels {
		app.layerButtons = append(app.layerButtons, Button{
			rect: rl.Rectangle{X: float32(screenWidth - rightPanel + 10 + i*37), Y: float32(screenHeight - 40), Width: 34, Height: 30},
			text: l,
		})
	}

	app.syncSlider()
	return app
}

func (app *App) setStatus(msg string) {
	app.status = msg
	app.statusTimer = statusFrames
}

func (app *App) syncSlider() {
	if l, ok := app.session.Stack().Layer(app.session.ActiveLayer()); ok {
		app.opacitySlider.value = float32(l.Opacity)
	}
}

// Screen to canvas coordinates
func (app *App) ScreenToCanvas(screenX, screenY float32) (float32, float32) {
	return (screenX - leftPanel - app.panX) / app.zoom, (screenY - topBar - app.panY) / app.zoom
}

func (app *App) undo() {
	desc, err := app.session.Undo()
	app.setStatus(canvas.UndoStatus(desc, err))
	app.syncSlider()
}

func (app *App) redo() {
	desc, err := app.session.Redo()
	app.setStatus(canvas.RedoStatus(desc, err))
	app.syncSlider()
}

func (app *App) save() {
	dir := app.cfg.Paths.ProjectDir
	if err := app.session.SaveProject(dir); err != nil {
		app.setStatus("Save failed")
		return
	}
	app.setStatus("Saved " + dir)
}

func (app *App) open(dir string) {
	err := app.session.LoadProject(dir)
	switch {
	case errors.Is(err, project.ErrCorruptProject):
		app.setStatus("Not a valid project: " + dir)
	case err != nil:
		app.setStatus("Load failed")
	default:
		app.setStatus("Opened " + dir)
		app.syncSlider()
	}
}

func (app *App) exportImage() {
	path := app.cfg.Paths.ExportPath
	if err := app.session.Export(path); err != nil {
		app.setStatus("Export failed")
		return
	}
	app.setStatus("Exported " + path)
}

// importDropped turns files dropped on the window into layers, or opens a
// dropped project directory.
func (app *App) importDropped() {
	files := rl.LoadDroppedFiles()
	defer rl.UnloadDroppedFiles()

	l := logger.L(app.ctx)
	for _, f := range files {
		if _, err := project.Inspect(f); err == nil {
			app.open(f)
			continue
		}
		buf, err := project.ReadImage(f)
		if err != nil {
			l.Warn("import", zap.String("path", f), zap.Error(err))
			app.setStatus("Cannot import " + filepath.Base(f))
			continue
		}
		app.session.ImportImage(buf.RGBA())
		app.setStatus("Imported " + filepath.Base(f))
		app.syncSlider()
	}
}

func (app *App) handleShortcuts() {
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	if !ctrl {
		if rl.IsKeyPressed(rl.KeyX) {
			app.session.ToggleEraseMode()
		}
		return
	}
	switch {
	case rl.IsKeyPressed(rl.KeyZ):
		app.undo()
	case rl.IsKeyPressed(rl.KeyY):
		app.redo()
	case rl.IsKeyPressed(rl.KeyS):
		app.save()
	case rl.IsKeyPressed(rl.KeyO):
		app.open(app.cfg.Paths.ProjectDir)
	case rl.IsKeyPressed(rl.KeyE):
		app.exportImage()
	}
}

// layerRect returns the panel row of layer i; the top layer is listed first.
func (app *App) layerRect(i int) rl.Rectangle {
	n := app.session.LayerCount()
	return rl.Rectangle{
		X:      screenWidth - rightPanel + 10,
		Y:      100 + float32(n-1-i)*layerRowH,
		Width:  rightPanel - 20,
		Height: 50,
	}
}

// Update application
func (app *App) Update() {
	mousePos := rl.GetMousePosition()
	clicked := rl.IsMouseButtonPressed(rl.MouseLeftButton)

	if app.statusTimer > 0 {
		app.statusTimer--
	}
	if rl.IsFileDropped() {
		app.importDropped()
	}
	app.handleShortcuts()

	// Handle space+drag panning
	if rl.IsKeyDown(rl.KeySpace) && clicked {
		app.isPanning = true
		app.panStartX = mousePos.X - app.panX
		app.panStartY = mousePos.Y - app.panY
	}
	if app.isPanning && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		app.panX = mousePos.X - app.panStartX
		app.panY = mousePos.Y - app.panStartY
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) || !rl.IsKeyDown(rl.KeySpace) {
		app.isPanning = false
	}
	if app.isPanning {
		return
	}

	overCanvas := mousePos.X > leftPanel && mousePos.X < screenWidth-rightPanel && mousePos.Y > topBar

	// Handle zoom with mouse wheel
	wheel := rl.GetMouseWheelMove()
	if wheel != 0 && overCanvas {
		oldZoom := app.zoom
		app.zoom = clamp(app.zoom*(1.0+wheel*0.1), 0.25, 8.0)
		if app.zoom != oldZoom {
			zoomFactor := app.zoom / oldZoom
			app.panX = mousePos.X - leftPanel - (mousePos.X-leftPanel-app.panX)*zoomFactor
			app.panY = mousePos.Y - topBar - (mousePos.Y-topBar-app.panY)*zoomFactor
		}
	}

	// Handle tool buttons
	for i := range app.toolButtons {
		btn := &app.toolButtons[i]
		btn.hover = rl.CheckCollisionPointRec(mousePos, btn.rect)
		btn.selected = tools[i].tool == app.session.Tool()
		if btn.hover && clicked {
			app.session.SetTool(tools[i].tool)
		}
	}

	for i := range app.historyButtons {
		btn := &app.historyButtons[i]
		btn.hover = rl.CheckCollisionPointRec(mousePos, btn.rect)
		if !btn.hover || !clicked {
			continue
		}
		switch i {
		case 0:
			app.undo()
		case 1:
			app.redo()
		case 2:
			app.session.Clear()
			app.syncSlider()
			app.setStatus("Canvas cleared")
		}
	}

	// Handle color palette
	paletteY := float32(230)
	for i, c := range app.colorPalette {
		rect := rl.Rectangle{X: float32(10 + (i%3)*25), Y: paletteY + float32(i/3)*25, Width: 20, Height: 20}
		if clicked && rl.CheckCollisionPointRec(mousePos, rect) {
			app.session.SetColor(c, true)
			if app.session.Tool() != canvas.ToolFill {
				app.session.SetTool(canvas.ToolDraw)
			}
		}
	}

	// Opacity is committed once, when the slider is released.
	s := &app.opacitySlider
	if clicked && rl.CheckCollisionPointRec(mousePos, s.rect) {
		s.dragging = true
	}
	if s.dragging {
		relX := mousePos.X - s.rect.X
		s.value = clamp(s.min+(relX/s.rect.Width)*(s.max-s.min), s.min, s.max)
		if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
			s.dragging = false
			app.session.SetOpacity(app.session.ActiveLayer(), int(s.value+0.5))
		}
	}

	// Handle layer buttons
	active := app.session.ActiveLayer()
	for i := range app.layerButtons {
		btn := &app.layerButtons[i]
		btn.hover = rl.CheckCollisionPointRec(mousePos, btn.rect)
		if !btn.hover || !clicked {
			continue
		}
		switch i {
		case 0:
			app.session.AddLayer()
		case 1:
			if !app.session.DeleteLayer(active) {
				app.setStatus("Cannot delete the last layer")
			}
		case 2:
			if !app.session.MergeLayerInto(active-1, active) {
				app.setStatus("Nothing to merge into")
			}
		case 3:
			app.session.MoveLayer(active, active+1)
		case 4:
			app.session.MoveLayer(active, active-1)
		}
		app.syncSlider()
	}

	// Handle layer selection in right panel
	for i := app.session.LayerCount() - 1; i >= 0; i-- {
		row := app.layerRect(i)
		if !clicked || !rl.CheckCollisionPointRec(mousePos, row) {
			continue
		}
		visRect := rl.Rectangle{X: row.X + 5, Y: row.Y + 5, Width: 20, Height: 20}
		if rl.CheckCollisionPointRec(mousePos, visRect) {
			l, _ := app.session.Stack().Layer(i)
			app.session.SetVisibility(i, !l.Visible)
		} else {
			app.session.SetActiveLayer(i)
			app.syncSlider()
		}
	}

	// Handle drawing on canvas
	cx, cy := app.ScreenToCanvas(mousePos.X, mousePos.Y)
	if overCanvas && clicked {
		app.session.PointerDown(cx, cy)
		app.isDrawing = app.session.Drawing()
	}
	if app.isDrawing && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		app.session.PointerMove(cx, cy)
	}
	if app.isDrawing && rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		app.session.PointerUp(cx, cy)
		app.isDrawing = false
	}

	// Handle panning with middle mouse button
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		app.panX += delta.X
		app.panY += delta.Y
	}
}

// upload mirrors the session composite and layer thumbnails into GPU
// textures whenever the session reports a change.
func (app *App) upload() {
	rev := app.session.Revision()
	if app.hasTexture && rev == app.uploaded {
		return
	}
	comp := app.session.Composite()
	if app.hasTexture &&
		int(app.compositeTexture.Width) == comp.Width() &&
		int(app.compositeTexture.Height) == comp.Height() {
		rl.UpdateTexture(app.compositeTexture, comp.Pixels())
	} else {
		if app.hasTexture {
			rl.UnloadTexture(app.compositeTexture)
		}
		img := rl.NewImageFromImage(comp.RGBA())
		app.compositeTexture = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		app.hasTexture = true
	}

	for _, t := range app.thumbTextures {
		rl.UnloadTexture(t)
	}
	app.thumbTextures = app.thumbTextures[:0]
	for i := 0; i < app.session.LayerCount(); i++ {
		thumb, _ := app.session.Thumbnail(i, thumbSize, thumbSize)
		img := rl.NewImageFromImage(thumb.RGBA())
		app.thumbTextures = append(app.thumbTextures, rl.LoadTextureFromImage(img))
		rl.UnloadImage(img)
	}
	app.uploaded = rev
}

func drawButton(btn Button) {
	c := rl.Color{70, 70, 70, 255}
	if btn.selected {
		c = rl.Color{100, 100, 150, 255}
	} else if btn.hover {
		c = rl.Color{80, 80, 80, 255}
	}
	rl.DrawRectangleRec(btn.rect, c)
	rl.DrawRectangleLinesEx(btn.rect, 1, rl.Color{90, 90, 90, 255})

	textW := rl.MeasureText(btn.text, fontSize)
	textX := int32(btn.rect.X + btn.rect.Width/2 - float32(textW)/2)
	textY := int32(btn.rect.Y + btn.rect.Height/2 - 4)
	rl.DrawText(btn.text, textX, textY, fontSize, rl.White)
}

func drawChecker(x, y, size int32) {
	rl.DrawRectangle(x, y, size, size, rl.Color{100, 100, 100, 255})
	rl.DrawRectangle(x+size/2, y, size/2, size/2, rl.Color{150, 150, 150, 255})
	rl.DrawRectangle(x, y+size/2, size/2, size/2, rl.Color{150, 150, 150, 255})
}

// Draw application
func (app *App) Draw() {
	app.upload()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{40, 40, 40, 255})

	mousePos := rl.GetMousePosition()
	w, h := app.session.Width(), app.session.Height()

	// Draw canvas viewport
	rl.BeginScissorMode(leftPanel, topBar, screenWidth-leftPanel-rightPanel, screenHeight-topBar)

	tileSize := max(int32(16*app.zoom), 2)
	offsetX := int32(app.panX) % (tileSize * 2)
	offsetY := int32(app.panY) % (tileSize * 2)
	for y := int32(-2); y < screenHeight/tileSize+2; y++ {
		for x := int32(-2); x < screenWidth/tileSize+2; x++ {
			if (x+y)%2 == 0 {
				rl.DrawRectangle(leftPanel+x*tileSize+offsetX, topBar+y*tileSize+offsetY,
					tileSize, tileSize, rl.Color{150, 150, 150, 255})
			}
		}
	}

	// Session pixels are premultiplied.
	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(w), Height: float32(h)}
	dstRect := rl.Rectangle{
		X:      leftPanel + app.panX,
		Y:      topBar + app.panY,
		Width:  float32(w) * app.zoom,
		Height: float32(h) * app.zoom,
	}
	rl.BeginBlendMode(rl.BlendAlphaPremultiply)
	rl.DrawTexturePro(app.compositeTexture, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
	rl.EndBlendMode()
	rl.DrawRectangleLinesEx(dstRect, 2, rl.Color{100, 100, 100, 255})

	overCanvas := mousePos.X > leftPanel && mousePos.X < screenWidth-rightPanel && mousePos.Y > topBar
	if overCanvas && !app.isPanning {
		switch app.session.Tool() {
		case canvas.ToolDraw:
			rl.DrawCircleLines(int32(mousePos.X), int32(mousePos.Y), app.cfg.Brush.Width*app.zoom/2, rl.White)
		case canvas.ToolErase:
			rl.DrawCircleLines(int32(mousePos.X), int32(mousePos.Y), app.cfg.Brush.EraserWidth*app.zoom/2, rl.White)
		case canvas.ToolFill, canvas.ToolEyedropper:
			rl.DrawRectangleLines(int32(mousePos.X-5), int32(mousePos.Y-5), 10, 10, rl.White)
		}
	}
	if app.isPanning {
		rl.DrawText("HAND", int32(mousePos.X+10), int32(mousePos.Y-10), fontSize, rl.Yellow)
	}
	if rl.IsKeyDown(rl.KeySpace) && !app.isPanning {
		rl.DrawText("CLICK AND DRAG TO PAN", int32(mousePos.X+10), int32(mousePos.Y+10), fontSize, rl.Yellow)
	}
	rl.EndScissorMode()

	// Draw left toolbar
	rl.DrawRectangle(0, 0, leftPanel, screenHeight, rl.Color{50, 50, 50, 255})
	rl.DrawText("DELUXE PAINT", 10, 10, fontSize, rl.White)
	rl.DrawText("TOOLS", 10, 35, fontSize, rl.LightGray)
	for i, btn := range app.toolButtons {
		drawButton(btn)
		if btn.hover {
			rl.DrawText(tools[i].name, int32(mousePos.X+10), int32(mousePos.Y), fontSize, rl.Yellow)
		}
	}
	for i, btn := range app.historyButtons {
		if (i == 0 && !app.session.CanUndo()) || (i == 1 && !app.session.CanRedo()) {
			btn.hover = false
			rl.DrawRectangleRec(btn.rect, rl.Color{55, 55, 55, 255})
			rl.DrawText(btn.text, int32(btn.rect.X+4), int32(btn.rect.Y+6), fontSize, rl.Gray)
			continue
		}
		drawButton(btn)
	}

	rl.DrawText("COLORS", 10, 215, fontSize, rl.LightGray)
	paletteY := float32(230)
	cur := app.session.Color()
	for i, c := range app.colorPalette {
		rect := rl.Rectangle{X: float32(10 + (i%3)*25), Y: paletteY + float32(i/3)*25, Width: 20, Height: 20}
		rl.DrawRectangleRec(rect, rl.Color(c))
		if cur == c {
			rl.DrawRectangleLinesEx(rect, 2, rl.White)
		} else {
			rl.DrawRectangleLinesEx(rect, 1, rl.Color{70, 70, 70, 255})
		}
	}
	drawChecker(10, 420, 40)
	rl.BeginBlendMode(rl.BlendAlphaPremultiply)
	rl.DrawRectangle(10, 420, 40, 40, rl.Color(cur))
	rl.EndBlendMode()
	rl.DrawRectangleLines(10, 420, 40, 40, rl.White)

	// Draw right panel (layers)
	rl.DrawRectangle(screenWidth-rightPanel, 0, rightPanel, screenHeight, rl.Color{50, 50, 50, 255})
	rl.DrawText("LAYERS", screenWidth-rightPanel+10, 10, fontSize, rl.White)

	s := app.opacitySlider
	rl.DrawText(fmt.Sprintf("%s %.0f", s.label, s.value), int32(s.rect.X), int32(s.rect.Y-12), fontSize, rl.LightGray)
	rl.DrawRectangleRec(s.rect, rl.Color{60, 60, 60, 255})
	sliderPos := s.rect.X + (s.value-s.min)/(s.max-s.min)*s.rect.Width
	rl.DrawRectangle(int32(sliderPos-2), int32(s.rect.Y), 4, int32(s.rect.Height), rl.White)

	active := app.session.ActiveLayer()
	for i, l := range app.session.Stack().Layers() {
		row := app.layerRect(i)
		bg := rl.Color{60, 60, 60, 255}
		if i == active {
			bg = rl.Color{80, 80, 120, 255}
		}
		rl.DrawRectangleRec(row, bg)

		visX, visY := int32(row.X+5), int32(row.Y+5)
		rl.DrawRectangle(visX, visY, 20, 20, rl.Color{40, 40, 40, 255})
		rl.DrawRectangleLines(visX, visY, 20, 20, rl.White)
		if l.Visible {
			rl.DrawText("V", visX+6, visY+6, fontSize, rl.White)
		}
		rl.DrawText(fmt.Sprintf("LAYER %d", i), int32(row.X+35), int32(row.Y+8), fontSize, rl.White)
		rl.DrawText(fmt.Sprintf("%d%%", int(l.Opacity)*100/255), int32(row.X+35), int32(row.Y+24), fontSize, rl.LightGray)

		px, py := int32(row.X+row.Width-40), int32(row.Y+10)
		drawChecker(px, py, thumbSize)
		if i < len(app.thumbTextures) {
			t := app.thumbTextures[i]
			rl.BeginBlendMode(rl.BlendAlphaPremultiply)
			rl.DrawTexture(t, px+(thumbSize-t.Width)/2, py+(thumbSize-t.Height)/2, rl.White)
			rl.EndBlendMode()
		}
		rl.DrawRectangleLines(px, py, thumbSize, thumbSize, rl.Color{70, 70, 70, 255})
	}
	for _, btn := range app.layerButtons {
		drawButton(btn)
	}

	// Draw top bar
	rl.DrawRectangle(leftPanel, 0, screenWidth-leftPanel-rightPanel, topBar, rl.Color{60, 60, 60, 255})
	info := fmt.Sprintf("ZOOM: %.0f%% | SIZE: %dX%d | TOOL: %s | LAYER: %d/%d",
		app.zoom*100, w, h, strings.ToUpper(app.session.Tool().String()), active+1, app.session.LayerCount())
	rl.DrawText(info, leftPanel+10, 12, fontSize, rl.White)
	if app.statusTimer > 0 {
		rl.DrawText(app.status, leftPanel+10, 30, fontSize, rl.Yellow)
	}

	rl.EndDrawing()
}

func (app *App) Close() {
	if app.hasTexture {
		rl.UnloadTexture(app.compositeTexture)
	}
	for _, t := range app.thumbTextures {
		rl.UnloadTexture(t)
	}
}

func clamp(value, min, max float32) float32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func main() {
	configFile := flag.String("config", config.DefaultFile, "settings file (TOML)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	l, err := logger.New(*verbose)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	zap.ReplaceGlobals(l)
	defer l.Sync() //nolint:errcheck

	cfg, err := config.Load(*configFile)
	if err != nil {
		l.Fatal("load config", zap.String("path", *configFile), zap.Error(err))
	}
	ctx := logger.NewContext(context.Background(), l)

	rl.InitWindow(screenWidth, screenHeight, "Deluxe Paint")
	rl.SetTargetFPS(60)

	app := NewApp(ctx, cfg)
	if flag.NArg() > 0 {
		app.open(flag.Arg(0))
	}
	l.Info("editor started",
		zap.Int("width", app.session.Width()),
		zap.Int("height", app.session.Height()))

	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()
	}

	app.Close()
	rl.CloseWindow()
}
