package lightbox

import "math"

/*
Layout describes the physical arrangement of an addressable LED surface:
its logical width and height, the mapping from an (x,y) coordinate to a
position on the strand, and the per-channel correction applied on output.
The mapping need not be dense. Coordinates with no pixel behind them
report ok=false, and several coordinates may map to the same strand
position.
*/
type Layout interface {
	Size() (w, h int)
	PixelCount() int
	PixelIndex(x, y int) (i int, ok bool)
	Gamma() *[256]uint8
	MasterBrightness() uint8
}

// GammaTable builds a 256-entry power-curve correction table. Typical
// strands look right around 2.2 to 2.5.
func GammaTable(g float64) [256]uint8 {
	var t [256]uint8
	for i := range t {
		t[i] = uint8(math.Pow(float64(i)/255.0, g)*255.0 + 0.5)
	}
	return t
}

// IdentityGamma returns a pass-through table for strands that correct in
// hardware.
func IdentityGamma() [256]uint8 {
	var t [256]uint8
	for i := range t {
		t[i] = uint8(i)
	}
	return t
}

type MatrixOpt func(m *Matrix)

// WithSerpentine folds the strand back and forth: odd rows run right to
// left.
func WithSerpentine() MatrixOpt {
	return func(m *Matrix) {
		m.serpentine = true
	}
}

// WithPixelMap supplies an explicit coordinate mapping, one row per
// layout row. Entries below zero are holes. The map overrides the
// serpentine setting.
func WithPixelMap(rows [][]int) MatrixOpt {
	return func(m *Matrix) {
		m.pixmap = rows
	}
}

// WithGammaTable sets the output correction table.
func WithGammaTable(t [256]uint8) MatrixOpt {
	return func(m *Matrix) {
		m.gamma = t
	}
}

// WithMasterBrightness caps the surface's default brightness.
func WithMasterBrightness(b uint8) MatrixOpt {
	return func(m *Matrix) {
		m.brightness = b
	}
}

// Matrix is a rectangular Layout wired as a single strand, row-major by
// default.
type Matrix struct {
	width, height int
	serpentine    bool
	pixmap        [][]int
	count         int
	gamma         [256]uint8
	brightness    uint8
}

func NewMatrix(width, height int, opts ...MatrixOpt) *Matrix {
	m := &Matrix{
		width:      width,
		height:     height,
		gamma:      IdentityGamma(),
		brightness: 255,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.count = width * height
	if m.pixmap != nil {
		// The strand is as long as the highest position it maps.
		m.count = 0
		for _, row := range m.pixmap {
			for _, i := range row {
				if i >= m.count {
					m.count = i + 1
				}
			}
		}
	}
	return m
}

func (m *Matrix) Size() (w, h int) {
	return m.width, m.height
}

func (m *Matrix) PixelCount() int {
	return m.count
}

// PixelIndex maps a coordinate to its strand position. Out-of-bounds
// coordinates and mapped holes report ok=false.
func (m *Matrix) PixelIndex(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0, false
	}
	if m.pixmap != nil {
		if y >= len(m.pixmap) || x >= len(m.pixmap[y]) {
			return 0, false
		}
		i := m.pixmap[y][x]
		if i < 0 {
			return 0, false
		}
		return i, true
	}
	if m.serpentine && y%2 == 1 {
		return y*m.width + (m.width - 1 - x), true
	}
	return y*m.width + x, true
}

func (m *Matrix) Gamma() *[256]uint8 {
	return &m.gamma
}

func (m *Matrix) MasterBrightness() uint8 {
	return m.brightness
}
