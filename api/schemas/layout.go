package schemas

import "time"

// -- Layout Snapshot Schemas --

// Extent is a width/height pair.
type Extent struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Point is a pixel or grid position.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// GridRect is a solved grid rectangle; right and bottom are exclusive.
type GridRect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// PixelRect is a rectangle in viewport pixels.
type PixelRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Declaration is the declared placement of a dashlet. Sizes are rendered as
// "grow", "max" or a decimal number.
type Declaration struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	W      string `json:"w"`
	H      string `json:"h"`
	Anchor string `json:"anchor"`
}

// DashletGeometry is the solved state of one dashlet.
type DashletGeometry struct {
	ID          int         `json:"id"`
	Title       string      `json:"title,omitempty"`
	Declaration Declaration `json:"declaration"`
	Visible     bool        `json:"visible"`
	Frozen      bool        `json:"frozen,omitempty"`
	Grid        GridRect    `json:"grid"`
	Pixels      PixelRect   `json:"pixels"`
}

// LayoutSnapshot is the exported result of one solve.
type LayoutSnapshot struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Origin    Point             `json:"origin"`
	Screen    Extent            `json:"screen"`
	Cell      Extent            `json:"cell"`
	Raster    Extent            `json:"raster"`
	Editing   bool              `json:"editing"`
	Dashlets  []DashletGeometry `json:"dashlets"`
}
