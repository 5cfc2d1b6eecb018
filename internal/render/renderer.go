package render

import (
	"errors"
	"image/color"
)

// ErrQuit is returned from Game.Update to end the loop without an error.
var ErrQuit = errors.New("quit")

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. This allows swapping rendering backends without changing
// the simulation or UI code.
type Renderer interface {
	// Vector operations (for drawing shapes)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius float32, strokeWidth float32, clr color.Color)
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	StrokeRect(dst Image, x, y, width, height float32, strokeWidth float32, clr color.Color)
	StrokeLine(dst Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color)
	FillPolygon(dst Image, points []Point, clr color.Color)

	// Text operations. (x, y) is the top-left corner of the first line.
	DrawText(dst Image, text string, x, y int, clr color.Color, scale float64)
	MeasureText(text string, scale float64) (width, height int)
}

// Point is a screen-space vertex.
type Point struct {
	X, Y float32
}

// Image represents a surface that can be drawn to. Shapes and text are drawn
// onto it through a Renderer.
type Image interface {
	Fill(clr color.Color)
}

// InputManager handles input from the user (keyboard, mouse, etc).
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	GetCursorPosition() (x, y int)
	IsMouseButtonPressed(button MouseButton) bool
	IsMouseButtonJustPressed(button MouseButton) bool
	IsMouseButtonJustReleased(button MouseButton) bool

	// AppendInputChars appends the characters typed this tick to runes.
	AppendInputChars(runes []rune) []rune
}

// Key represents a keyboard key.
type Key int

// Key constants for common keys
const (
	KeyR Key = iota // Reset
	KeyT            // Toggle rays
	KeyD            // Toggle adaptive depth
	KeyP            // Export plot
	KeyQ            // Quit
	KeyTab
	KeyEnter
	KeyBackspace
	KeyUp    // Object angle up one step
	KeyDown  // Object angle down one step
	KeyLeft  // Mirror angle down one step
	KeyRight // Mirror angle up one step
	KeyShift
	KeyEscape
)

// MouseButton represents a mouse button.
type MouseButton int

// Mouse button constants
const (
	MouseButtonLeft MouseButton = iota
)

// Game represents the interface that the engine will call.
// This is typically implemented by the main application struct.
type Game interface {
	// Update updates the application logic. It is called every tick (typically 60 times per second).
	// Returning ErrQuit ends the loop cleanly.
	Update() error

	// Draw draws the screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	// The logical screen size is used for rendering and input coordinates.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the engine that manages the main loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunGame runs the loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
