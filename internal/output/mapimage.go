package output

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/ocean-uhh/cruiseplan/internal/scheduler"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	mapWidth  = 1024
	mapHeight = 768

	// Rendered at double resolution and downscaled for cleaner lines.
	renderScale = 2
)

var (
	oceanColor     = color.RGBA{R: 210, G: 228, B: 240, A: 255}
	graticuleColor = color.RGBA{R: 180, G: 198, B: 212, A: 255}
	trackColor     = color.RGBA{R: 60, G: 60, B: 70, A: 255}
	stationColor   = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	mooringColor   = color.RGBA{R: 30, G: 60, B: 200, A: 255}
	areaColor      = color.RGBA{R: 30, G: 150, B: 60, A: 255}
	labelColor     = color.RGBA{R: 40, G: 40, B: 40, A: 255}
)

type mapProjection struct {
	minLat, maxLat float64
	minLon, maxLon float64
	width, height  int
}

// newProjection fits the timeline's bounding box, padded by 10%, onto the
// canvas. Plain equirectangular: fine at cruise scale, wrong at global
// scale.
func newProjection(timeline []scheduler.ActivityRecord, width, height int) mapProjection {
	p := mapProjection{
		minLat: math.MaxFloat64, maxLat: -math.MaxFloat64,
		minLon: math.MaxFloat64, maxLon: -math.MaxFloat64,
		width: width, height: height,
	}

	for _, rec := range timeline {
		for _, pt := range [][2]float64{{rec.Lat, rec.Lon}, {rec.StartLat, rec.StartLon}} {
			p.minLat = math.Min(p.minLat, pt[0])
			p.maxLat = math.Max(p.maxLat, pt[0])
			p.minLon = math.Min(p.minLon, pt[1])
			p.maxLon = math.Max(p.maxLon, pt[1])
		}
	}

	padLat := (p.maxLat - p.minLat) * 0.1
	padLon := (p.maxLon - p.minLon) * 0.1
	if padLat == 0 {
		padLat = 1
	}
	if padLon == 0 {
		padLon = 1
	}
	p.minLat -= padLat
	p.maxLat += padLat
	p.minLon -= padLon
	p.maxLon += padLon

	return p
}

func (p *mapProjection) toPixel(lat, lon float64) (int, int) {
	x := (lon - p.minLon) / (p.maxLon - p.minLon) * float64(p.width)
	y := (p.maxLat - lat) / (p.maxLat - p.minLat) * float64(p.height)
	return int(x), int(y)
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.Color, thickness int) {
	steps := int(math.Max(math.Abs(float64(x1-x0)), math.Abs(float64(y1-y0))))
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(t*float64(x1-x0))
		y := y0 + int(t*float64(y1-y0))
		for dx := -thickness / 2; dx <= thickness/2; dx++ {
			for dy := -thickness / 2; dy <= thickness/2; dy++ {
				img.Set(x+dx, y+dy, c)
			}
		}
	}
}

func drawMarker(img *image.RGBA, x, y, radius int, c color.Color) {
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			if dx*dx+dy*dy <= radius*radius {
				img.Set(x+dx, y+dy, c)
			}
		}
	}
}

func drawLabel(img *image.RGBA, x, y int, text string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func markerFor(activity string) (color.RGBA, int) {
	switch activity {
	case scheduler.ActivityMooring:
		return mooringColor, 7
	case scheduler.ActivityArea:
		return areaColor, 7
	default:
		return stationColor, 6
	}
}

// WriteMapImage renders a cruise-track overview map as PNG, and as WebP
// when webpPath is non-empty.
func WriteMapImage(timeline []scheduler.ActivityRecord, pngPath, webpPath string) error {
	if len(timeline) == 0 {
		log.Warn().Msg("Timeline is empty, skipping map generation")
		return nil
	}

	w, h := mapWidth*renderScale, mapHeight*renderScale
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(oceanColor), image.Point{}, draw.Src)

	proj := newProjection(timeline, w, h)

	// Graticule at whole degrees, thinned out for wide boxes.
	stepDeg := 1.0
	for (proj.maxLon-proj.minLon)/stepDeg > 20 {
		stepDeg *= 2
	}
	for lon := math.Ceil(proj.minLon / stepDeg) * stepDeg; lon < proj.maxLon; lon += stepDeg {
		x, _ := proj.toPixel(proj.minLat, lon)
		drawLine(img, x, 0, x, h, graticuleColor, 1)
	}
	for lat := math.Ceil(proj.minLat / stepDeg) * stepDeg; lat < proj.maxLat; lat += stepDeg {
		_, y := proj.toPixel(lat, proj.minLon)
		drawLine(img, 0, y, w, y, graticuleColor, 1)
	}

	// Cruise track from each record's entry point to its position.
	var prevX, prevY int
	for i, rec := range timeline {
		x0, y0 := proj.toPixel(rec.StartLat, rec.StartLon)
		x1, y1 := proj.toPixel(rec.Lat, rec.Lon)
		if i > 0 {
			drawLine(img, prevX, prevY, x0, y0, trackColor, renderScale)
		}
		drawLine(img, x0, y0, x1, y1, trackColor, renderScale)
		prevX, prevY = x1, y1
	}

	// Operation markers on top of the track.
	for _, rec := range timeline {
		if rec.Activity == scheduler.ActivityTransit {
			continue
		}
		x, y := proj.toPixel(rec.Lat, rec.Lon)
		c, r := markerFor(rec.Activity)
		drawMarker(img, x, y, r*renderScale, c)
	}

	// Downscale to the output size.
	out := image.NewRGBA(image.Rect(0, 0, mapWidth, mapHeight))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Over, nil)

	// Labels go on after downscaling so the bitmap font stays readable.
	labelProj := newProjection(timeline, mapWidth, mapHeight)
	for _, rec := range timeline {
		if rec.Activity == scheduler.ActivityTransit {
			continue
		}
		x, y := labelProj.toPixel(rec.Lat, rec.Lon)
		_, r := markerFor(rec.Activity)
		drawLabel(out, x+r+3, y+3, rec.Label)
	}

	if err := os.MkdirAll(filepath.Dir(pngPath), 0755); err != nil {
		return err
	}
	f, err := os.Create(pngPath)
	if err != nil {
		return err
	}
	if err := png.Encode(f, out); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info().Str("path", pngPath).Msg("Map image written")

	if webpPath == "" {
		return nil
	}
	wf, err := os.Create(webpPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := wf.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", webpPath).Msg("Failed to close file")
		}
	}()
	if err := webp.Encode(wf, out, &webp.Options{Lossless: false, Quality: 85}); err != nil {
		return err
	}
	log.Info().Str("path", webpPath).Msg("Map image written")

	return nil
}
